package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 15, 30, 45, 999, time.Local)
	got := BeginningOfDay(ts)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), got)
}

func TestStartOfWeek(t *testing.T) {
	// weeks start on Sunday
	tuesday := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local), StartOfWeek(tuesday))

	sunday := time.Date(2026, 3, 8, 23, 59, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local), StartOfWeek(sunday))

	saturday := time.Date(2026, 3, 14, 1, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local), StartOfWeek(saturday))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 3, 8, 22, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local)

	assert.Equal(t, 2, DaysBetween(start, end))
}

func TestValidateDateParam(t *testing.T) {
	assert.True(t, ValidateDateParam("2026-03-10"))
	assert.False(t, ValidateDateParam("2026-3-10"))
	assert.False(t, ValidateDateParam("10-03-2026"))
	assert.False(t, ValidateDateParam(""))
}
