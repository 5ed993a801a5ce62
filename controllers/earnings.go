// controllers/earnings.go
package controllers

import (
	"net/http"
	"time"

	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EarningsController serves the staff earnings report
type EarningsController struct {
	service *services.EarningsService
}

func NewEarningsController(service *services.EarningsService) *EarningsController {
	return &EarningsController{service: service}
}

// GetEarningsReport builds the earnings report for a date range.
// Query params: start_date, end_date (YYYY-MM-DD, required), groomer_id
// (optional filter), group_by (day|week|month, default day).
func (ec *EarningsController) GetEarningsReport(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	startParam := c.Query("start_date")
	endParam := c.Query("end_date")
	if !utils.ValidateDateParam(startParam) || !utils.ValidateDateParam(endParam) {
		utils.RespondWithError(c, http.StatusBadRequest, "start_date and end_date are required as YYYY-MM-DD")
		return
	}

	start, err := time.ParseInLocation("2006-01-02", startParam, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start_date")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", endParam, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end_date")
		return
	}
	// include the whole end day
	end = end.Add(24*time.Hour - time.Nanosecond)

	var groomerID *uuid.UUID
	if groomerParam := c.Query("groomer_id"); groomerParam != "" {
		groomerUUID, err := uuid.Parse(groomerParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid groomer_id format")
			return
		}
		groomerID = &groomerUUID
	}

	groupBy := c.DefaultQuery("group_by", services.GroupByDay)
	switch groupBy {
	case services.GroupByDay, services.GroupByWeek, services.GroupByMonth:
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "group_by must be day, week, or month")
		return
	}

	report, err := ec.service.Report(businessUUID, start, end, groomerID, groupBy)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build earnings report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
