package controllers

import (
	"errors"
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email           string       `json:"email" binding:"required,email"`
	Phone           string       `json:"phone" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Password        string       `json:"password" binding:"required,min=8"`
	BusinessName    string       `json:"businessName" binding:"required"`
	BusinessAddress string       `json:"businessAddress"`
	WorkingHours    models.JSONB `json:"workingHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

// Register creates a new business and its owner account
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email or phone already exists
	var existingUser models.User
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	business := models.Business{
		ID:           uuid.New(),
		Name:         input.BusinessName,
		Address:      input.BusinessAddress,
		Phone:        input.Phone,
		Email:        input.Email,
		WorkingHours: input.WorkingHours,
	}

	// Set default working hours if not provided
	if business.WorkingHours == nil {
		business.WorkingHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"tuesday":   map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"wednesday": map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"thursday":  map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"friday":    map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"saturday":  map[string]interface{}{"open": "09:00", "close": "17:00", "closed": false},
			"sunday":    map[string]interface{}{"open": "10:00", "close": "16:00", "closed": true},
		}
	}

	if err := config.DB.Create(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create business")
		return
	}

	newUser := models.User{
		Email:      input.Email,
		Phone:      input.Phone,
		Name:       input.Name,
		Password:   input.Password, // Will be hashed in BeforeCreate hook
		Role:       "owner",
		BusinessID: business.ID,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), business.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":           newUser.ID,
			"email":        newUser.Email,
			"phone":        newUser.Phone,
			"businessName": business.Name,
		},
	})
}

// Login authenticates by email or phone
func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? OR phone = ?", input.Identifier, input.Identifier).
		First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		utils.RespondWithError(c, http.StatusForbidden, "Account is deactivated")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", now)

	token, err := utils.GenerateToken(user.ID.String(), user.BusinessID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// Me returns the authenticated user
func Me(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.Preload("Business").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
		"business": gin.H{"id": user.Business.ID, "name": user.Business.Name},
	})
}
