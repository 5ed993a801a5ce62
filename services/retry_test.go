package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"groompro-backend/models"
)

func TestBackoffDelayGrowth(t *testing.T) {
	assert.Equal(t, time.Minute, DefaultBackoff.Delay(1))
	assert.Equal(t, 2*time.Minute, DefaultBackoff.Delay(2))
	assert.Equal(t, 4*time.Minute, DefaultBackoff.Delay(3))
}

func TestBackoffDelayCapped(t *testing.T) {
	cfg := BackoffConfig{
		InitialDelay: time.Minute,
		Multiplier:   10,
		MaxDelay:     time.Hour,
		MaxRetries:   10,
	}

	assert.Equal(t, time.Minute, cfg.Delay(1))
	assert.Equal(t, 10*time.Minute, cfg.Delay(2))
	assert.Equal(t, time.Hour, cfg.Delay(3))
	assert.Equal(t, time.Hour, cfg.Delay(50))
}

func TestBackoffDelayClampsBadInput(t *testing.T) {
	assert.Equal(t, time.Minute, DefaultBackoff.Delay(0))
	assert.Equal(t, time.Minute, DefaultBackoff.Delay(-3))
}

type mockRetryStore struct{ mock.Mock }

func (m *mockRetryStore) FetchDue(now time.Time, limit int) ([]models.RetryQueueEntry, error) {
	args := m.Called(now, limit)
	entries, _ := args.Get(0).([]models.RetryQueueEntry)
	return entries, args.Error(1)
}

func (m *mockRetryStore) Reschedule(id uuid.UUID, attempts int, nextRetryAt time.Time, lastError string) error {
	return m.Called(id, attempts, nextRetryAt, lastError).Error(0)
}

func (m *mockRetryStore) FlagManual(id uuid.UUID, attempts int, lastError string) error {
	return m.Called(id, attempts, lastError).Error(0)
}

func (m *mockRetryStore) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

type mockDeliverer struct{ mock.Mock }

func (m *mockDeliverer) Deliver(ctx context.Context, msg NotificationMessage) (SendResult, string) {
	args := m.Called(ctx, msg)
	return args.Get(0).(SendResult), args.String(1)
}

func queuedEntry(t *testing.T, attempts, maxRetries int) models.RetryQueueEntry {
	t.Helper()
	msg := NotificationMessage{
		BusinessID: uuid.New(),
		Type:       models.TypeBookingConfirmation,
		Channel:    models.ChannelEmail,
		Recipient:  "owner@example.com",
	}
	payload := models.JSONB{
		"business_id": msg.BusinessID.String(),
		"type":        msg.Type,
		"channel":     msg.Channel,
		"recipient":   msg.Recipient,
	}
	return models.RetryQueueEntry{
		ID:         uuid.New(),
		BusinessID: msg.BusinessID,
		Payload:    payload,
		Attempts:   attempts,
		MaxRetries: maxRetries,
		ErrorType:  models.ErrorTransient,
	}
}

func TestDrainDeletesOnSuccess(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	entry := queuedEntry(t, 1, 3)
	store.On("FetchDue", mock.Anything, mock.Anything).Return([]models.RetryQueueEntry{entry}, nil)
	deliverer.On("Deliver", mock.Anything, mock.Anything).Return(SendResult{Success: true, MessageID: "ok"}, "")
	store.On("Delete", entry.ID).Return(nil)

	worker.Drain(context.Background())

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "FlagManual", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrainReschedulesTransientFailure(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	entry := queuedEntry(t, 1, 3)
	store.On("FetchDue", mock.Anything, mock.Anything).Return([]models.RetryQueueEntry{entry}, nil)
	deliverer.On("Deliver", mock.Anything, mock.Anything).
		Return(SendResult{Success: false, Error: "timeout"}, models.ErrorTransient)

	before := time.Now()
	store.On("Reschedule", entry.ID, 2, mock.MatchedBy(func(next time.Time) bool {
		// second attempt waits initialDelay x multiplier
		return !next.Before(before.Add(2*time.Minute)) && next.Before(before.Add(3*time.Minute))
	}), "timeout").Return(nil)

	worker.Drain(context.Background())

	store.AssertExpectations(t)
}

func TestDrainFlagsManualAfterMaxRetries(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	entry := queuedEntry(t, 2, 3)
	store.On("FetchDue", mock.Anything, mock.Anything).Return([]models.RetryQueueEntry{entry}, nil)
	deliverer.On("Deliver", mock.Anything, mock.Anything).
		Return(SendResult{Success: false, Error: "timeout"}, models.ErrorTransient)
	store.On("FlagManual", entry.ID, 3, "timeout").Return(nil)

	worker.Drain(context.Background())

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDrainFlagsManualOnNonTransientFailure(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	// first replay, but the failure class changed to permanent
	entry := queuedEntry(t, 1, 3)
	store.On("FetchDue", mock.Anything, mock.Anything).Return([]models.RetryQueueEntry{entry}, nil)
	deliverer.On("Deliver", mock.Anything, mock.Anything).
		Return(SendResult{Success: false, Error: "invalid recipient"}, models.ErrorPermanent)
	store.On("FlagManual", entry.ID, 2, "invalid recipient").Return(nil)

	worker.Drain(context.Background())

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDrainFlagsUnreadablePayload(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	entry := models.RetryQueueEntry{
		ID:       uuid.New(),
		Payload:  models.JSONB{"business_id": "not-a-uuid"},
		Attempts: 1,
	}
	store.On("FetchDue", mock.Anything, mock.Anything).Return([]models.RetryQueueEntry{entry}, nil)
	store.On("FlagManual", entry.ID, 1, mock.MatchedBy(func(lastError string) bool {
		return lastError != ""
	})).Return(nil)

	worker.Drain(context.Background())

	store.AssertExpectations(t)
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestDrainDecodedMessageRoundTrips(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	entry := queuedEntry(t, 1, 3)
	store.On("FetchDue", mock.Anything, mock.Anything).Return([]models.RetryQueueEntry{entry}, nil)
	deliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(msg NotificationMessage) bool {
		return msg.BusinessID == entry.BusinessID &&
			msg.Type == models.TypeBookingConfirmation &&
			msg.Channel == models.ChannelEmail &&
			msg.Recipient == "owner@example.com"
	})).Return(SendResult{Success: true}, "")
	store.On("Delete", entry.ID).Return(nil)

	worker.Drain(context.Background())

	deliverer.AssertExpectations(t)
}

func TestDrainStopsWhenFetchFails(t *testing.T) {
	store := &mockRetryStore{}
	deliverer := &mockDeliverer{}
	worker := NewRetryWorker(store, deliverer, DefaultBackoff)

	store.On("FetchDue", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	worker.Drain(context.Background())

	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestGormRetryStoreImplementsScheduler(t *testing.T) {
	var _ RetryScheduler = (*GormRetryStore)(nil)
	var _ RetryStore = (*GormRetryStore)(nil)
	require.True(t, true)
}
