package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Retry error classes
const (
	ErrorTransient     = "transient"
	ErrorPermanent     = "permanent"
	ErrorConfiguration = "configuration"
)

// RetryQueueEntry schedules one failed notification for redelivery. An
// external poller drains entries where next_retry_at <= now; there is no
// in-process timer, so pending retries survive restarts. Entries that
// exhaust max_retries stay in the table flagged for manual intervention.
type RetryQueueEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Serialized NotificationMessage to replay.
	Payload JSONB `gorm:"type:jsonb;not null"`

	Attempts    int    `gorm:"default:0"`
	MaxRetries  int    `gorm:"default:3"`
	ErrorType   string `gorm:"type:varchar(20)"`
	LastError   string `gorm:"type:text"`
	NextRetryAt time.Time `gorm:"index"`

	NeedsManualIntervention bool `gorm:"default:false;index"`

	gorm.Model
}

func (r *RetryQueueEntry) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
