package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name      string `gorm:"not null"`
	Species   string `gorm:"default:'dog'"`
	Breed     string
	Size      string `gorm:"type:varchar(20)"` // small, medium, large, xlarge
	Birthday  *time.Time
	Notes     string
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}
