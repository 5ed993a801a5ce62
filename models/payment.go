package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Nullable: a payment whose appointment cannot be matched contributes
	// nothing to earnings aggregates.
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`

	Amount    float64 `gorm:"type:decimal(10,2);not null"`
	TipAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Method    string  `gorm:"type:varchar(20)"` // cash, card, other
	Notes     string

	PaidAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	gorm.Model
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}
