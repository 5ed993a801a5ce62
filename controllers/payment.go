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

type CreatePaymentInput struct {
	AppointmentID *uuid.UUID `json:"appointmentId"`
	CustomerID    *uuid.UUID `json:"customerId"`
	Amount        float64    `json:"amount" binding:"required,min=0"`
	TipAmount     float64    `json:"tipAmount" binding:"min=0"`
	Method        string     `json:"method" binding:"omitempty,oneof=cash card other"`
	Notes         string     `json:"notes"`
	PaidAt        *time.Time `json:"paidAt"`
}

// CreatePayment records a payment, optionally tied to an appointment. A
// payment whose appointment id cannot be matched is still stored; it simply
// contributes nothing to earnings aggregates.
func CreatePayment(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.AppointmentID != nil {
		var appointment models.Appointment
		if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, *input.AppointmentID).
			First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		if input.CustomerID == nil {
			input.CustomerID = &appointment.CustomerID
		}
	}

	payment := models.Payment{
		BusinessID:    businessUUID,
		AppointmentID: input.AppointmentID,
		CustomerID:    input.CustomerID,
		Amount:        input.Amount,
		TipAmount:     input.TipAmount,
		Method:        input.Method,
		Notes:         input.Notes,
		PaidAt:        time.Now(),
	}
	if input.PaidAt != nil {
		payment.PaidAt = *input.PaidAt
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists payments, optionally filtered by appointment
func GetPayments(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("business_id = ?", businessUUID)
	if appointmentID := c.Query("appointment_id"); appointmentID != "" {
		appointmentUUID, err := uuid.Parse(appointmentID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment_id format")
			return
		}
		query = query.Where("appointment_id = ?", appointmentUUID)
	}

	var payments []models.Payment
	if err := query.Order("paid_at DESC").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}
