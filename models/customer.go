package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	BusinessID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name          string `gorm:"not null"`
	Phone         string `gorm:"not null;uniqueIndex:idx_business_phone,priority:2"`
	Email         string
	Notes         string
	TotalVisits   int     `gorm:"default:0"`
	TotalSpent    float64 `gorm:"type:decimal(10,2);default:0.0"`
	LoyaltyPoints int     `gorm:"default:0"`
	LastVisit     *time.Time
	IsActive      bool `gorm:"default:true"`

	Pets         []Pet         `gorm:"foreignKey:CustomerID"`
	Appointments []Appointment `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}
