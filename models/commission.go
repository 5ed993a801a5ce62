package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commission rate types
const (
	RatePercentage = "percentage"
	RateFlat       = "flat_rate"
)

// StaffCommission holds the commission configuration for one groomer. At
// most one active config exists per groomer.
type StaffCommission struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`
	GroomerID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	RateType      string  `gorm:"type:varchar(20);not null"` // percentage, flat_rate
	Rate          float64 `gorm:"type:decimal(10,2);not null"`
	IncludeAddons bool    `gorm:"default:true"`

	ServiceOverrides []CommissionServiceOverride `gorm:"foreignKey:CommissionID"`

	gorm.Model
}

// CommissionServiceOverride replaces the default rate for a specific
// service. Position preserves the configured order; the first match wins.
type CommissionServiceOverride struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CommissionID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID    uuid.UUID `gorm:"type:uuid;not null"`
	Rate         float64   `gorm:"type:decimal(10,2);not null"`
	Position     int       `gorm:"default:0"`
}

func (s *StaffCommission) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}

func (o *CommissionServiceOverride) BeforeCreate(tx *gorm.DB) (err error) {
	o.ID = uuid.New()
	return
}
