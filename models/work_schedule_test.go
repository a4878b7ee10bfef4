package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustSchedule(t *testing.T, start, end string, breakStart, breakEnd *string) *WorkSchedule {
	t.Helper()
	schedule, err := NewWorkSchedule(uuid.New(), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		start, end, breakStart, breakEnd, "")
	require.NoError(t, err)
	return schedule
}

func TestNewWorkScheduleValidation(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name                 string
		start, end           string
		breakStart, breakEnd *string
		wantErr              bool
	}{
		{"valid without break", "09:00", "17:00", nil, nil, false},
		{"valid with break", "09:00", "17:00", strPtr("12:00"), strPtr("13:00"), false},
		{"end equals start", "09:00", "09:00", nil, nil, true},
		{"end before start", "17:00", "09:00", nil, nil, true},
		{"malformed time", "9am", "17:00", nil, nil, true},
		{"break end before break start", "09:00", "17:00", strPtr("13:00"), strPtr("12:00"), true},
		{"break equals zero length", "09:00", "17:00", strPtr("12:00"), strPtr("12:00"), true},
		{"break starts before shift", "09:00", "17:00", strPtr("08:00"), strPtr("09:30"), true},
		{"break ends after shift", "09:00", "17:00", strPtr("16:30"), strPtr("17:30"), true},
		{"break boundary on shift edges", "09:00", "17:00", strPtr("09:00"), strPtr("17:00"), false},
		{"break start without end", "09:00", "17:00", strPtr("12:00"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := NewWorkSchedule(staffID, date, tt.start, tt.end, tt.breakStart, tt.breakEnd, "")
			if tt.wantErr {
				var invalidRange *InvalidTimeRangeError
				require.Error(t, err)
				assert.ErrorAs(t, err, &invalidRange)
				return
			}
			require.NoError(t, err)
			assert.True(t, schedule.IsAvailable, "new schedules start available")
			assert.Equal(t, staffID, schedule.StaffID)
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	schedule := mustSchedule(t, "09:00", "17:00", strPtr("12:00"), strPtr("13:00"))

	at := func(hour, min int) time.Time {
		return time.Date(2026, 2, 1, hour, min, 0, 0, time.UTC)
	}

	assert.True(t, schedule.CheckAvailability(at(10, 0)))
	assert.True(t, schedule.CheckAvailability(at(9, 0)), "shift start is inclusive")
	assert.False(t, schedule.CheckAvailability(at(17, 0)), "shift end is exclusive")
	assert.False(t, schedule.CheckAvailability(at(8, 59)))
	assert.False(t, schedule.CheckAvailability(at(12, 30)), "inside break")
	assert.True(t, schedule.CheckAvailability(at(13, 0)), "break end is exclusive")

	wrongDay := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	assert.False(t, schedule.CheckAvailability(wrongDay))

	schedule.MarkUnavailable()
	assert.False(t, schedule.CheckAvailability(at(10, 0)))
	schedule.MarkAvailable()
	assert.True(t, schedule.CheckAvailability(at(10, 0)))
}

func TestFitsWithinSchedule(t *testing.T) {
	schedule := mustSchedule(t, "09:00", "17:00", nil, nil)

	assert.True(t, schedule.FitsWithinSchedule("09:00", "17:00"))
	assert.True(t, schedule.FitsWithinSchedule("10:00", "10:30"))
	assert.False(t, schedule.FitsWithinSchedule("08:30", "10:00"))
	assert.False(t, schedule.FitsWithinSchedule("16:30", "17:30"))

	schedule.MarkUnavailable()
	assert.False(t, schedule.FitsWithinSchedule("10:00", "10:30"))
}

func TestBreakOverlaps(t *testing.T) {
	schedule := mustSchedule(t, "09:00", "17:00", strPtr("12:00"), strPtr("13:00"))

	assert.True(t, schedule.BreakOverlaps("12:15", "12:45"), "window inside break")
	assert.True(t, schedule.BreakOverlaps("11:30", "12:30"))
	assert.False(t, schedule.BreakOverlaps("11:00", "12:00"), "ends where break starts")
	assert.False(t, schedule.BreakOverlaps("13:00", "14:00"), "starts where break ends")

	noBreak := mustSchedule(t, "09:00", "17:00", nil, nil)
	assert.False(t, noBreak.BreakOverlaps("12:15", "12:45"))
}

func TestHasConflictWith(t *testing.T) {
	schedule := mustSchedule(t, "09:00", "17:00", nil, nil)

	assert.True(t, schedule.HasConflictWith("16:00", "18:00"))
	assert.False(t, schedule.HasConflictWith("17:00", "18:00"), "half-open: adjacent is no conflict")
	assert.False(t, schedule.HasConflictWith("07:00", "09:00"))
}

func TestWorkingHours(t *testing.T) {
	withBreak := mustSchedule(t, "09:00", "17:00", strPtr("12:00"), strPtr("13:00"))
	assert.InDelta(t, 7.0, withBreak.WorkingHours(), 0.001)

	noBreak := mustSchedule(t, "09:00", "17:30", nil, nil)
	assert.InDelta(t, 8.5, noBreak.WorkingHours(), 0.001)
}

func TestUpdateTimesRevalidates(t *testing.T) {
	schedule := mustSchedule(t, "09:00", "17:00", strPtr("12:00"), strPtr("13:00"))

	require.NoError(t, schedule.UpdateTimes("08:00", "16:00"))
	assert.Equal(t, "08:00", schedule.StartTime)

	err := schedule.UpdateTimes("16:00", "08:00")
	var invalidRange *InvalidTimeRangeError
	assert.ErrorAs(t, err, &invalidRange)
	assert.Equal(t, "08:00", schedule.StartTime, "failed update leaves schedule untouched")

	// shrinking the shift past the break is rejected
	err = schedule.UpdateTimes("08:00", "12:30")
	assert.ErrorAs(t, err, &invalidRange)
}

func TestUpdateBreakRevalidates(t *testing.T) {
	schedule := mustSchedule(t, "09:00", "17:00", nil, nil)

	require.NoError(t, schedule.UpdateBreak(strPtr("12:00"), strPtr("13:00")))
	require.NotNil(t, schedule.BreakStart)

	var invalidRange *InvalidTimeRangeError
	err := schedule.UpdateBreak(strPtr("18:00"), strPtr("19:00"))
	assert.ErrorAs(t, err, &invalidRange)
	assert.Equal(t, "12:00", *schedule.BreakStart, "failed update leaves break untouched")

	require.NoError(t, schedule.UpdateBreak(nil, nil))
	assert.Nil(t, schedule.BreakStart)
	assert.Nil(t, schedule.BreakEnd)
}
