// utils/timeutil.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts an "HH:MM" string (24h) into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hours*60 + minutes, nil
}

// MustClock is ParseClock for values already validated upstream.
func MustClock(value string) int {
	minutes, err := ParseClock(value)
	if err != nil {
		panic(err)
	}
	return minutes
}

// IsValidClock reports whether value is a well-formed "HH:MM" string.
func IsValidClock(value string) bool {
	_, err := ParseClock(value)
	return err == nil
}

// ClockBefore reports whether a is strictly earlier than b ("HH:MM").
func ClockBefore(a, b string) bool {
	return MustClock(a) < MustClock(b)
}

// RangesOverlap applies the half-open interval test to two "HH:MM" windows:
// [aStart, aEnd) and [bStart, bEnd) overlap iff aStart < bEnd && aEnd > bStart.
// Back-to-back windows do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return MustClock(aStart) < MustClock(bEnd) && MustClock(aEnd) > MustClock(bStart)
}

// WithinRange reports whether the "HH:MM" instant t falls in [start, end).
func WithinRange(t, start, end string) bool {
	m := MustClock(t)
	return m >= MustClock(start) && m < MustClock(end)
}

// DurationMinutes returns end - start in minutes for "HH:MM" values.
func DurationMinutes(start, end string) int {
	return MustClock(end) - MustClock(start)
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockOf extracts the "HH:MM" component of a timestamp.
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}
