package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9", 0, true},
		{"09-00", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		minutes, err := ParseClock(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.minutes, minutes, "value %q", tt.value)
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "10:00", "11:00", "10:00", "11:00", true},
		{"partial overlap", "10:00", "10:30", "10:15", "10:45", true},
		{"contained", "09:00", "17:00", "12:00", "13:00", true},
		{"back-to-back is legal", "10:00", "10:30", "10:30", "11:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
		{"touching at start", "10:30", "11:00", "10:00", "10:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// overlap is symmetric
			assert.Equal(t, tt.want, RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestWithinRange(t *testing.T) {
	assert.True(t, WithinRange("09:00", "09:00", "17:00"), "start is inclusive")
	assert.False(t, WithinRange("17:00", "09:00", "17:00"), "end is exclusive")
	assert.True(t, WithinRange("12:30", "09:00", "17:00"))
	assert.False(t, WithinRange("08:59", "09:00", "17:00"))
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 480, DurationMinutes("09:00", "17:00"))
	assert.Equal(t, 30, DurationMinutes("10:00", "10:30"))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestClockOf(t *testing.T) {
	at := time.Date(2026, 2, 1, 14, 45, 12, 0, time.UTC)
	assert.Equal(t, "14:45", ClockOf(at))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
