package controllers

import (
	"errors"
	"net/http"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddEmployeeInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateEmployeeInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

type ServiceOverrideInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Rate      float64   `json:"rate" binding:"required"`
}

type UpsertCommissionInput struct {
	RateType         string                 `json:"rateType" binding:"required,oneof=percentage flat_rate"`
	Rate             float64                `json:"rate" binding:"required,min=0"`
	IncludeAddons    *bool                  `json:"includeAddons"`
	ServiceOverrides []ServiceOverrideInput `json:"serviceOverrides"`
}

// GetEmployees lists the business's staff
func GetEmployees(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var employees []models.User
	if err := config.DB.Select("id, email, name, phone, role, is_active, last_login, created_at").
		Where("business_id = ?", businessUUID).Order("name ASC").Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// AddEmployee creates a groomer account
func AddEmployee(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	employee := models.User{
		Email:      input.Email,
		Phone:      input.Phone,
		Name:       input.Name,
		Password:   input.Password, // hashed in BeforeCreate
		Role:       "groomer",
		BusinessID: businessUUID,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    employee.ID,
		"email": employee.Email,
		"name":  employee.Name,
		"role":  employee.Role,
	})
}

// UpdateEmployee updates a staff member
func UpdateEmployee(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	employeeUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.User
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, employeeUUID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee updated"})
}

// DeleteEmployee soft-deletes a staff member
func DeleteEmployee(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	employeeUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, employeeUUID).
		Delete(&models.User{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// GetCommission returns a groomer's commission config
func GetCommission(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	groomerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var commission models.StaffCommission
	if err := config.DB.Preload("ServiceOverrides", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("business_id = ? AND groomer_id = ?", businessUUID, groomerUUID).
		First(&commission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No commission config for this groomer")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, commission)
}

// UpsertCommission creates or replaces a groomer's commission config. At
// most one config exists per groomer; overrides are replaced wholesale.
func UpsertCommission(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	groomerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpsertCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var groomer models.User
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, groomerUUID).
		First(&groomer).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Groomer not found")
		return
	}

	includeAddons := true
	if input.IncludeAddons != nil {
		includeAddons = *input.IncludeAddons
	}

	var commission models.StaffCommission
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("business_id = ? AND groomer_id = ?", businessUUID, groomerUUID).
			First(&commission).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			commission = models.StaffCommission{
				BusinessID: businessUUID,
				GroomerID:  groomerUUID,
			}
		} else if err != nil {
			return err
		} else {
			// replace the existing override set
			if err := tx.Where("commission_id = ?", commission.ID).
				Delete(&models.CommissionServiceOverride{}).Error; err != nil {
				return err
			}
		}

		commission.RateType = input.RateType
		commission.Rate = input.Rate
		commission.IncludeAddons = includeAddons

		if commission.ID == uuid.Nil {
			if err := tx.Create(&commission).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&commission).Error; err != nil {
				return err
			}
		}

		for i, override := range input.ServiceOverrides {
			row := models.CommissionServiceOverride{
				CommissionID: commission.ID,
				ServiceID:    override.ServiceID,
				Rate:         override.Rate,
				Position:     i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save commission config")
		return
	}

	config.DB.Preload("ServiceOverrides", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&commission, "id = ?", commission.ID)

	c.JSON(http.StatusOK, commission)
}
