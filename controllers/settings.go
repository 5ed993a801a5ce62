package controllers

import (
	"net/http"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateBusinessInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`

	LoyaltyPointsPerDollar *float64 `json:"loyaltyPointsPerDollar"`
}

type UpdateWorkingHoursInput struct {
	WorkingHours models.JSONB `json:"workingHours" binding:"required"`
}

type UpdateNotificationTypesInput struct {
	NotificationTypes models.JSONB `json:"notificationTypes" binding:"required"`
}

// GetSettings returns the business profile and settings
func GetSettings(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var business models.Business
	if err := config.DB.First(&business, "id = ?", businessUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                   business.Name,
		"address":                business.Address,
		"phone":                  business.Phone,
		"email":                  business.Email,
		"workingHours":           business.WorkingHours,
		"notificationTypes":      business.NotificationTypes,
		"loyaltyPointsPerDollar": business.LoyaltyPointsPerDollar,
	})
}

// UpdateBusinessProfile updates the business profile fields
func UpdateBusinessProfile(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var business models.Business
	if err := config.DB.First(&business, "id = ?", businessUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.Phone != nil {
		business.Phone = *input.Phone
	}
	if input.Email != nil {
		business.Email = *input.Email
	}
	if input.LoyaltyPointsPerDollar != nil {
		business.LoyaltyPointsPerDollar = *input.LoyaltyPointsPerDollar
	}

	if err := config.DB.Save(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business updated"})
}

// UpdateWorkingHours replaces the working hours map
func UpdateWorkingHours(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Business{}).Where("id = ?", businessUUID).
		Update("working_hours", input.WorkingHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

// UpdateNotificationTypes replaces the per-type notification toggles
func UpdateNotificationTypes(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateNotificationTypesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Business{}).Where("id = ?", businessUUID).
		Update("notification_types", input.NotificationTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
