package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusConfirmed, StatusNoShow},
		{StatusCheckedIn, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	blocked := [][2]string{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusNoShow, StatusConfirmed},
	}
	for _, tc := range blocked {
		assert.False(t, CanTransition(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	assert.False(t, CanTransition("unknown", StatusConfirmed))
}

func TestNotificationTypeEnabledDefaultsTrue(t *testing.T) {
	b := Business{}
	assert.True(t, b.NotificationTypeEnabled(TypeBookingConfirmation))

	b.NotificationTypes = JSONB{
		TypeBookingConfirmation: false,
		TypeStatusUpdate:        true,
	}
	assert.False(t, b.NotificationTypeEnabled(TypeBookingConfirmation))
	assert.True(t, b.NotificationTypeEnabled(TypeStatusUpdate))
	assert.True(t, b.NotificationTypeEnabled(TypeReportReady))
}
