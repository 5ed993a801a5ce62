package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryPhoto references an uploaded grooming photo. Upload and image
// processing happen in external storage; only the URL is recorded here.
type GalleryPhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`

	PetID         *uuid.UUID `gorm:"type:uuid;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`

	URL      string `gorm:"not null"`
	Caption  string
	IsPublic bool `gorm:"default:false"`

	gorm.Model
}

func (g *GalleryPhoto) BeforeCreate(tx *gorm.DB) (err error) {
	g.ID = uuid.New()
	return
}
