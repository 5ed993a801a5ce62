package controllers

import (
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TodayAppointments   int64   `json:"todayAppointments"`
	WeekRevenue         float64 `json:"weekRevenue"`
	TotalCustomers      int64   `json:"totalCustomers"`
	PendingAppointments int64   `json:"pendingAppointments"`
	PendingRetries      int64   `json:"pendingRetries"`
	StuckRetries        int64   `json:"stuckRetries"`
}

// GetDashboardOverview returns today's load and week revenue at a glance
func GetDashboardOverview(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	startOfDay := utils.BeginningOfDay(now)
	startOfWeek := utils.StartOfWeek(now)

	var overview DashboardOverview

	config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			businessUUID, startOfDay, startOfDay.AddDate(0, 0, 1)).
		Count(&overview.TodayAppointments)

	config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND status = ? AND scheduled_at >= ?",
			businessUUID, models.StatusCompleted, startOfWeek).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&overview.WeekRevenue)

	config.DB.Model(&models.Customer{}).
		Where("business_id = ? AND deleted_at IS NULL", businessUUID).
		Count(&overview.TotalCustomers)

	config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND status = ?", businessUUID, models.StatusPending).
		Count(&overview.PendingAppointments)

	config.DB.Model(&models.RetryQueueEntry{}).
		Where("business_id = ? AND needs_manual_intervention = false", businessUUID).
		Count(&overview.PendingRetries)

	config.DB.Model(&models.RetryQueueEntry{}).
		Where("business_id = ? AND needs_manual_intervention = true", businessUUID).
		Count(&overview.StuckRetries)

	c.JSON(http.StatusOK, overview)
}
