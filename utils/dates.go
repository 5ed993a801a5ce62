// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// StartOfWeek returns the Sunday that starts t's week, at midnight in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	t = BeginningOfDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}
