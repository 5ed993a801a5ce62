package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loyalty transaction kinds
const (
	LoyaltyEarn   = "earn"
	LoyaltyRedeem = "redeem"
)

type LoyaltyTransaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	Kind          string     `gorm:"type:varchar(10);not null"` // earn, redeem
	Points        int        `gorm:"not null"`
	Description   string

	gorm.Model
}

func (l *LoyaltyTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
