// services/retry.go
package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"groompro-backend/models"
)

// BackoffConfig controls retry spacing for failed notifications.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	MaxRetries   int
}

// DefaultBackoff retries after 1m, 2m, 4m, capped at one hour, for at most
// three attempts.
var DefaultBackoff = BackoffConfig{
	InitialDelay: time.Minute,
	Multiplier:   2,
	MaxDelay:     time.Hour,
	MaxRetries:   3,
}

// Delay returns the wait before the next attempt, given the number of
// attempts already made (>= 1): min(initial × multiplier^(n−1), max).
func (c BackoffConfig) Delay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := time.Duration(float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempts-1)))
	if d > c.MaxDelay || d < 0 {
		return c.MaxDelay
	}
	return d
}

// RetryStore persists and drains the retry queue.
type RetryStore interface {
	FetchDue(now time.Time, limit int) ([]models.RetryQueueEntry, error)
	Reschedule(id uuid.UUID, attempts int, nextRetryAt time.Time, lastError string) error
	FlagManual(id uuid.UUID, attempts int, lastError string) error
	Delete(id uuid.UUID) error
}

// GormRetryStore implements both RetryScheduler (enqueue side) and
// RetryStore (drain side) on the retry_queue_entries table.
type GormRetryStore struct {
	db      *gorm.DB
	backoff BackoffConfig
}

func NewGormRetryStore(db *gorm.DB, backoff BackoffConfig) *GormRetryStore {
	return &GormRetryStore{db: db, backoff: backoff}
}

// Schedule enqueues a message after its first failed delivery attempt.
func (s *GormRetryStore) Schedule(msg NotificationMessage, lastError string) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	var payload models.JSONB
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	entry := models.RetryQueueEntry{
		BusinessID:  msg.BusinessID,
		Payload:     payload,
		Attempts:    1,
		MaxRetries:  s.backoff.MaxRetries,
		ErrorType:   models.ErrorTransient,
		LastError:   lastError,
		NextRetryAt: time.Now().Add(s.backoff.Delay(1)),
	}
	return s.db.Create(&entry).Error
}

func (s *GormRetryStore) FetchDue(now time.Time, limit int) ([]models.RetryQueueEntry, error) {
	var entries []models.RetryQueueEntry
	err := s.db.Where("next_retry_at <= ? AND needs_manual_intervention = false", now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (s *GormRetryStore) Reschedule(id uuid.UUID, attempts int, nextRetryAt time.Time, lastError string) error {
	return s.db.Model(&models.RetryQueueEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":      attempts,
		"next_retry_at": nextRetryAt,
		"last_error":    lastError,
	}).Error
}

func (s *GormRetryStore) FlagManual(id uuid.UUID, attempts int, lastError string) error {
	return s.db.Model(&models.RetryQueueEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":                  attempts,
		"last_error":                lastError,
		"needs_manual_intervention": true,
	}).Error
}

func (s *GormRetryStore) Delete(id uuid.UUID) error {
	return s.db.Delete(&models.RetryQueueEntry{}, "id = ?", id).Error
}

// Deliverer replays a queued message. Satisfied by NotificationService.
type Deliverer interface {
	Deliver(ctx context.Context, msg NotificationMessage) (SendResult, string)
}

// RetryWorker drains due retry-queue entries. Scheduling state lives in the
// database, so pending retries survive restarts; the worker only polls.
type RetryWorker struct {
	store     RetryStore
	deliverer Deliverer
	backoff   BackoffConfig
	batchSize int
}

func NewRetryWorker(store RetryStore, deliverer Deliverer, backoff BackoffConfig) *RetryWorker {
	return &RetryWorker{
		store:     store,
		deliverer: deliverer,
		backoff:   backoff,
		batchSize: 50,
	}
}

// StartScheduler polls the queue once a minute.
func (w *RetryWorker) StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("* * * * *", func() {
		w.Drain(context.Background())
	})

	c.Start()
	log.Println("Notification retry scheduler started")
	return c
}

// Drain redelivers every due entry once. Success removes the entry; a
// transient failure reschedules with exponential backoff until max attempts,
// after which the entry is flagged for manual intervention rather than
// dropped. Non-transient failures are flagged immediately.
func (w *RetryWorker) Drain(ctx context.Context) {
	entries, err := w.store.FetchDue(time.Now(), w.batchSize)
	if err != nil {
		log.Printf("Failed to fetch due retry entries: %v", err)
		return
	}

	for _, entry := range entries {
		msg, err := decodeMessage(entry.Payload)
		if err != nil {
			log.Printf("Retry entry %s has an unreadable payload: %v", entry.ID, err)
			if flagErr := w.store.FlagManual(entry.ID, entry.Attempts, "unreadable payload: "+err.Error()); flagErr != nil {
				log.Printf("Failed to flag retry entry %s: %v", entry.ID, flagErr)
			}
			continue
		}

		result, errClass := w.deliverer.Deliver(ctx, msg)
		attempts := entry.Attempts + 1

		if result.Success {
			if err := w.store.Delete(entry.ID); err != nil {
				log.Printf("Failed to remove retry entry %s: %v", entry.ID, err)
			}
			continue
		}

		if errClass != models.ErrorTransient || attempts >= entry.MaxRetries {
			if err := w.store.FlagManual(entry.ID, attempts, result.Error); err != nil {
				log.Printf("Failed to flag retry entry %s: %v", entry.ID, err)
			}
			continue
		}

		next := time.Now().Add(w.backoff.Delay(attempts))
		if err := w.store.Reschedule(entry.ID, attempts, next, result.Error); err != nil {
			log.Printf("Failed to reschedule retry entry %s: %v", entry.ID, err)
		}
	}
}

func decodeMessage(payload models.JSONB) (NotificationMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return NotificationMessage{}, err
	}
	var msg NotificationMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return NotificationMessage{}, err
	}
	return msg, nil
}
