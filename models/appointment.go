package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	PetID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	GroomerID  *uuid.UUID `gorm:"type:uuid;index"` // nullable until assigned

	ScheduledAt time.Time `gorm:"index;not null"`
	Status      string    `gorm:"type:varchar(20);default:'pending';index"`

	BasePrice  float64 `gorm:"type:decimal(10,2);not null"`
	AddonTotal float64 `gorm:"type:decimal(10,2);default:0.0"`
	TotalPrice float64 `gorm:"type:decimal(10,2);not null"`

	Notes string

	Addons   []AppointmentAddon `gorm:"foreignKey:AppointmentID"`
	Payments []Payment          `gorm:"foreignKey:AppointmentID"`

	gorm.Model
}

type AppointmentAddon struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceName   string    `gorm:"not null"`
	Price         float64   `gorm:"type:decimal(10,2);not null"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	a.ID = uuid.New()
	return
}

func (a *AppointmentAddon) BeforeCreate(tx *gorm.DB) (err error) {
	a.ID = uuid.New()
	return
}

// allowed status transitions; appointments are never deleted, state moves
// forward through these edges only
var statusTransitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
