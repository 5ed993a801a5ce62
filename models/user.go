package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"groompro-backend/utils"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role       string    `gorm:"type:varchar(20);not null"` // 'owner' or 'groomer'
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`

	Business Business `gorm:"foreignKey:BusinessID"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
