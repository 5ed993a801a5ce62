// controllers/notification.go
package controllers

import (
	"errors"
	"net/http"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTemplateInput defines the expected JSON structure
type CreateTemplateInput struct {
	Type    string `json:"type" binding:"required"`
	Channel string `json:"channel" binding:"required,oneof=email sms"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// UpdateTemplateInput defines the expected JSON structure
type UpdateTemplateInput struct {
	Subject  *string `json:"subject"`
	Body     *string `json:"body"`
	IsActive *bool   `json:"isActive"`
}

type UpsertPreferenceInput struct {
	CustomerID       uuid.UUID `json:"customerId" binding:"required"`
	MarketingEnabled *bool     `json:"marketingEnabled"`
	EmailEnabled     *bool     `json:"emailEnabled"`
	SMSEnabled       *bool     `json:"smsEnabled"`
}

// NotificationController handles template, preference, log, and retry-queue
// administration, plus ad-hoc sends.
type NotificationController struct {
	notifier *services.NotificationService
}

func NewNotificationController(notifier *services.NotificationService) *NotificationController {
	return &NotificationController{notifier: notifier}
}

// CreateTemplate creates a message template for a (type, channel) pair
func (nc *NotificationController) CreateTemplate(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if a template already exists for this type and channel
	var existing models.NotificationTemplate
	if err := config.DB.Where("business_id = ? AND type = ? AND channel = ?",
		businessUUID, input.Type, input.Channel).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Template for this type and channel already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	template := models.NotificationTemplate{
		BusinessID: businessUUID,
		Type:       input.Type,
		Channel:    input.Channel,
		Subject:    input.Subject,
		Body:       input.Body,
		IsActive:   true,
	}

	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates retrieves all templates for the business
func (nc *NotificationController) GetTemplates(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var templates []models.NotificationTemplate
	if err := config.DB.Where("business_id = ?", businessUUID).
		Order("type ASC, channel ASC").Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate updates an existing template
func (nc *NotificationController) UpdateTemplate(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	templateUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.NotificationTemplate
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, templateUUID).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Subject != nil {
		template.Subject = *input.Subject
	}
	if input.Body != nil {
		template.Body = *input.Body
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate deletes a template
func (nc *NotificationController) DeleteTemplate(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	templateUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, templateUUID).
		Delete(&models.NotificationTemplate{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// UpsertPreference sets a customer's notification opt-in state
func (nc *NotificationController) UpsertPreference(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input UpsertPreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var pref models.NotificationPreference
	err := config.DB.Where("customer_id = ?", input.CustomerID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.NotificationPreference{
			BusinessID:       businessUUID,
			CustomerID:       input.CustomerID,
			MarketingEnabled: true,
			EmailEnabled:     true,
			SMSEnabled:       true,
		}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.MarketingEnabled != nil {
		pref.MarketingEnabled = *input.MarketingEnabled
	}
	if input.EmailEnabled != nil {
		pref.EmailEnabled = *input.EmailEnabled
	}
	if input.SMSEnabled != nil {
		pref.SMSEnabled = *input.SMSEnabled
	}

	if err := config.DB.Save(&pref).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save preference")
		return
	}

	c.JSON(http.StatusOK, pref)
}

// GetLogs lists the notification audit trail
func (nc *NotificationController) GetLogs(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("business_id = ?", businessUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var logs []models.NotificationLog
	if err := query.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// GetRetryQueue lists pending and stuck retry entries
func (nc *NotificationController) GetRetryQueue(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("business_id = ?", businessUUID)
	if c.Query("manual") == "true" {
		query = query.Where("needs_manual_intervention = true")
	}

	var entries []models.RetryQueueEntry
	if err := query.Order("next_retry_at ASC").Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve retry queue")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// SendTest dispatches an ad-hoc notification through the full pipeline
func (nc *NotificationController) SendTest(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input struct {
		Type       string            `json:"type" binding:"required"`
		Channel    string            `json:"channel" binding:"required,oneof=email sms"`
		Recipient  string            `json:"recipient" binding:"required"`
		CustomerID *uuid.UUID        `json:"customerId"`
		Data       map[string]string `json:"data"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := nc.notifier.Send(c.Request.Context(), services.NotificationMessage{
		BusinessID: businessUUID,
		Type:       input.Type,
		Channel:    input.Channel,
		Recipient:  input.Recipient,
		CustomerID: input.CustomerID,
		Data:       input.Data,
	})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}
