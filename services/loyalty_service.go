// services/loyalty_service.go
package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"groompro-backend/models"
)

var ErrInsufficientPoints = errors.New("insufficient loyalty points")

// LoyaltyService maintains per-customer point balances. Points accrue when
// an appointment completes and can be redeemed against future visits.
type LoyaltyService struct {
	db *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

// AwardForAppointment credits points for a completed appointment and rolls
// the customer's visit statistics forward.
func (s *LoyaltyService) AwardForAppointment(appointment models.Appointment) error {
	var business models.Business
	if err := s.db.First(&business, "id = ?", appointment.BusinessID).Error; err != nil {
		return err
	}

	points := int(math.Floor(appointment.TotalPrice * business.LoyaltyPointsPerDollar))

	return s.db.Transaction(func(tx *gorm.DB) error {
		if points > 0 {
			txn := models.LoyaltyTransaction{
				BusinessID:    appointment.BusinessID,
				CustomerID:    appointment.CustomerID,
				AppointmentID: &appointment.ID,
				Kind:          models.LoyaltyEarn,
				Points:        points,
				Description:   "Completed appointment",
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&models.Customer{}).Where("id = ?", appointment.CustomerID).
			Updates(map[string]interface{}{
				"loyalty_points": gorm.Expr("loyalty_points + ?", points),
				"total_visits":   gorm.Expr("total_visits + 1"),
				"total_spent":    gorm.Expr("total_spent + ?", appointment.TotalPrice),
				"last_visit":     now,
			}).Error
	})
}

// Redeem deducts points from a customer's balance and returns the discount
// value in currency units, derived from the business's earn rate.
func (s *LoyaltyService) Redeem(businessID, customerID uuid.UUID, points int, description string) (float64, error) {
	var business models.Business
	if err := s.db.First(&business, "id = ?", businessID).Error; err != nil {
		return 0, err
	}

	var customer models.Customer
	if err := s.db.Where("business_id = ? AND id = ?", businessID, customerID).
		First(&customer).Error; err != nil {
		return 0, err
	}

	if customer.LoyaltyPoints < points {
		return 0, ErrInsufficientPoints
	}

	value := 0.0
	if business.LoyaltyPointsPerDollar > 0 {
		value = float64(points) / business.LoyaltyPointsPerDollar
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txn := models.LoyaltyTransaction{
			BusinessID:  businessID,
			CustomerID:  customerID,
			Kind:        models.LoyaltyRedeem,
			Points:      points,
			Description: description,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).Where("id = ?", customerID).
			Update("loyalty_points", gorm.Expr("loyalty_points - ?", points)).Error
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}
