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
)

type RedeemPointsInput struct {
	CustomerID  uuid.UUID `json:"customerId" binding:"required"`
	Points      int       `json:"points" binding:"required,min=1"`
	Description string    `json:"description"`
}

// LoyaltyController exposes point balances and redemption
type LoyaltyController struct {
	loyalty *services.LoyaltyService
}

func NewLoyaltyController(loyalty *services.LoyaltyService) *LoyaltyController {
	return &LoyaltyController{loyalty: loyalty}
}

// GetBalance returns a customer's current point balance
func (lc *LoyaltyController) GetBalance(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	customerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, customerUUID).
		First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customerId": customer.ID,
		"points":     customer.LoyaltyPoints,
	})
}

// GetHistory lists a customer's loyalty transactions
func (lc *LoyaltyController) GetHistory(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	customerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var transactions []models.LoyaltyTransaction
	if err := config.DB.Where("business_id = ? AND customer_id = ?", businessUUID, customerUUID).
		Order("created_at DESC").Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// Redeem deducts points and returns the discount value
func (lc *LoyaltyController) Redeem(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input RedeemPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	value, err := lc.loyalty.Redeem(businessUUID, input.CustomerID, input.Points, input.Description)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientPoints) {
			utils.RespondWithError(c, http.StatusConflict, "Insufficient loyalty points")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to redeem points")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pointsRedeemed": input.Points,
		"discountValue":  value,
	})
}
