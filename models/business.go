package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type Business struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string
	Email   string

	WorkingHours JSONB `gorm:"type:jsonb;default:'{}'"`

	// Per-type notification kill switches. A type absent from the map is
	// enabled; an explicit false disables dispatch for every recipient.
	NotificationTypes JSONB `gorm:"type:jsonb;default:'{}'"`

	LoyaltyPointsPerDollar float64 `gorm:"type:decimal(10,2);default:1.0"`

	Users        []User        `gorm:"foreignKey:BusinessID"`
	Customers    []Customer    `gorm:"foreignKey:BusinessID"`
	Services     []Service     `gorm:"foreignKey:BusinessID"`
	Appointments []Appointment `gorm:"foreignKey:BusinessID"`
}

// NotificationTypeEnabled reports whether dispatch is enabled for a
// notification type. Types never toggled default to enabled.
func (b *Business) NotificationTypeEnabled(notifType string) bool {
	if b.NotificationTypes == nil {
		return true
	}
	v, ok := b.NotificationTypes[notifType]
	if !ok {
		return true
	}
	enabled, ok := v.(bool)
	if !ok {
		return true
	}
	return enabled
}

// Custom JSONB type for working hours and settings maps
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
