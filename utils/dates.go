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

// ParseDate parses an ISO calendar date ("2006-01-02") into a UTC midnight
// timestamp, the canonical form for appointment and schedule dates.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return BeginningOfDay(a).Equal(BeginningOfDay(b))
}
