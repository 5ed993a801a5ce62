package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentController carries the notification service used to announce
// booking lifecycle changes.
type AppointmentController struct {
	notifier *services.NotificationService
	loyalty  *services.LoyaltyService
}

func NewAppointmentController(notifier *services.NotificationService, loyalty *services.LoyaltyService) *AppointmentController {
	return &AppointmentController{notifier: notifier, loyalty: loyalty}
}

type CreateAppointmentInput struct {
	CustomerID  uuid.UUID   `json:"customerId" binding:"required"`
	PetID       uuid.UUID   `json:"petId" binding:"required"`
	ServiceID   uuid.UUID   `json:"serviceId" binding:"required"`
	GroomerID   *uuid.UUID  `json:"groomerId"`
	ScheduledAt time.Time   `json:"scheduledAt" binding:"required"`
	AddonIDs    []uuid.UUID `json:"addonIds"`
	Notes       string      `json:"notes"`
}

type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed checked_in in_progress completed cancelled no_show"`
}

type AssignGroomerInput struct {
	GroomerID uuid.UUID `json:"groomerId" binding:"required"`
}

// Create books a new appointment. Total price is the service price plus the
// selected add-ons.
func (ac *AppointmentController) Create(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("business_id = ? AND id = ? AND is_active = true", businessUUID, input.ServiceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var pet models.Pet
	if err := config.DB.Where("business_id = ? AND id = ? AND customer_id = ?", businessUUID, input.PetID, input.CustomerID).
		First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found for this customer")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var addons []models.Service
	if len(input.AddonIDs) > 0 {
		if err := config.DB.Where("business_id = ? AND id IN ? AND is_addon = true AND is_active = true",
			businessUUID, input.AddonIDs).Find(&addons).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if len(addons) != len(input.AddonIDs) {
			utils.RespondWithError(c, http.StatusBadRequest, "One or more add-ons not found")
			return
		}
	}

	addonTotal := 0.0
	appointmentAddons := make([]models.AppointmentAddon, 0, len(addons))
	for _, addon := range addons {
		addonTotal += addon.Price
		appointmentAddons = append(appointmentAddons, models.AppointmentAddon{
			ServiceID:   addon.ID,
			ServiceName: addon.Name,
			Price:       addon.Price,
		})
	}

	appointment := models.Appointment{
		BusinessID:      businessUUID,
		CreatedByUserID: userUUID,
		CustomerID:      input.CustomerID,
		PetID:           input.PetID,
		ServiceID:       input.ServiceID,
		GroomerID:       input.GroomerID,
		ScheduledAt:     input.ScheduledAt,
		Status:          models.StatusPending,
		BasePrice:       service.Price,
		AddonTotal:      addonTotal,
		TotalPrice:      service.Price + addonTotal,
		Notes:           input.Notes,
		Addons:          appointmentAddons,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// List returns appointments filtered by status, groomer, and date range
func (ac *AppointmentController) List(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("business_id = ?", businessUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if groomerID := c.Query("groomer_id"); groomerID != "" {
		groomerUUID, err := uuid.Parse(groomerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid groomer_id format")
			return
		}
		query = query.Where("groomer_id = ?", groomerUUID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("scheduled_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("scheduled_at <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Preload("Addons").Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// Get retrieves a single appointment
func (ac *AppointmentController) Get(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	appointmentUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Addons").Preload("Payments").
		Where("business_id = ? AND id = ?", businessUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// AssignGroomer sets the groomer for an appointment
func (ac *AppointmentController) AssignGroomer(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	appointmentUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input AssignGroomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var groomer models.User
	if err := config.DB.Where("business_id = ? AND id = ? AND is_active = true", businessUUID, input.GroomerID).
		First(&groomer).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Groomer not found")
		return
	}

	result := config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND id = ?", businessUUID, appointmentUUID).
		Update("groomer_id", input.GroomerID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign groomer")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Groomer assigned"})
}

// UpdateStatus moves an appointment through its lifecycle and notifies the
// customer of the change. Notification failures never fail the transition.
func (ac *AppointmentController) UpdateStatus(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	appointmentUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !models.CanTransition(appointment.Status, input.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot transition from "+appointment.Status+" to "+input.Status)
		return
	}

	appointment.Status = input.Status
	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	if input.Status == models.StatusCompleted {
		if err := ac.loyalty.AwardForAppointment(appointment); err != nil {
			log.Printf("Failed to award loyalty points for appointment %s: %v", appointment.ID, err)
		}
	}

	ac.notifyStatusChange(c, appointment)

	c.JSON(http.StatusOK, appointment)
}

// notifyStatusChange dispatches the transactional notification matching the
// appointment's new status.
func (ac *AppointmentController) notifyStatusChange(c *gin.Context, appointment models.Appointment) {
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", appointment.CustomerID).Error; err != nil {
		log.Printf("Cannot notify for appointment %s: customer lookup failed: %v", appointment.ID, err)
		return
	}

	var pet models.Pet
	config.DB.First(&pet, "id = ?", appointment.PetID)
	var service models.Service
	config.DB.First(&service, "id = ?", appointment.ServiceID)

	notifType := models.TypeStatusUpdate
	switch appointment.Status {
	case models.StatusConfirmed:
		notifType = models.TypeBookingConfirmation
	case models.StatusCancelled:
		notifType = models.TypeBookingCancellation
	}

	channel := models.ChannelSMS
	recipient := customer.Phone
	if recipient == "" {
		channel = models.ChannelEmail
		recipient = customer.Email
	}
	if recipient == "" {
		log.Printf("Cannot notify for appointment %s: customer has no phone or email", appointment.ID)
		return
	}

	customerID := customer.ID
	result := ac.notifier.Send(c.Request.Context(), services.NotificationMessage{
		BusinessID: appointment.BusinessID,
		Type:       notifType,
		Channel:    channel,
		Recipient:  recipient,
		CustomerID: &customerID,
		Data: map[string]string{
			"customerName": customer.Name,
			"petName":      pet.Name,
			"serviceName":  service.Name,
			"date":         appointment.ScheduledAt.Format("January 2, 2006"),
			"time":         appointment.ScheduledAt.Format("3:04 PM"),
			"status":       appointment.Status,
		},
	})
	if !result.Success {
		log.Printf("Notification for appointment %s not sent: %s", appointment.ID, result.Error)
	}
}
