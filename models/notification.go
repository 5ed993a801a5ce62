package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notification log statuses
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Transactional notification types. These are always delivered regardless
// of the recipient's marketing preferences.
const (
	TypeBookingConfirmation = "booking_confirmation"
	TypeBookingCancellation = "booking_cancellation"
	TypeStatusUpdate        = "status_update"
	TypeReportReady         = "report_ready"
	TypeWaitlistAvailable   = "waitlist_available"
)

// NotificationTemplate stores the message body (and subject, for email) for
// a (type, channel) pair.
type NotificationTemplate struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`
	Type       string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_tmpl_type_channel,priority:2"`
	Channel    string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_tmpl_type_channel,priority:3"`
	Subject    string
	Body       string `gorm:"type:text;not null"`
	IsActive   bool   `gorm:"default:true"`
	gorm.Model
}

// NotificationPreference records a customer's opt-in state. A missing row
// means everything is allowed.
type NotificationPreference struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	MarketingEnabled bool `gorm:"default:true"`
	EmailEnabled     bool `gorm:"default:true"`
	SMSEnabled       bool `gorm:"default:true"`

	gorm.Model
}

// NotificationLog is the audit trail for every dispatch attempt. A row is
// created in pending state before the provider is called and updated once
// with the outcome. Rows are never deleted.
type NotificationLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	Type         string `gorm:"type:varchar(40);not null"`
	Channel      string `gorm:"type:varchar(10);not null"`
	Recipient    string `gorm:"not null"`
	Message      string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20);default:'pending'"` // pending, sent, failed
	ErrorMessage string `gorm:"type:text"`
	ProviderID   string
	SentAt       *time.Time

	gorm.Model
}

func (t *NotificationTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	return
}

func (p *NotificationPreference) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}

func (l *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
