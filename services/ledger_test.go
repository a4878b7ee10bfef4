package services

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"valid", "10:00", "10:30", false},
		{"whole day", "00:00", "23:59", false},
		{"end equals start", "10:00", "10:00", true},
		{"end before start", "10:30", "10:00", true},
		{"malformed start", "10am", "11:00", true},
		{"malformed end", "10:00", "11", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end)
			if tt.wantErr {
				var invalidRange *models.InvalidTimeRangeError
				require.Error(t, err)
				assert.ErrorAs(t, err, &invalidRange)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEstimateCost(t *testing.T) {
	lines := []models.AppointmentService{
		{Quantity: 1, UnitPrice: 50},
		{Quantity: 2, UnitPrice: 75},
	}
	assert.Equal(t, 200.0, EstimateCost(lines))
	assert.Equal(t, 0.0, EstimateCost(nil))
}

func TestTranslateConflict(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	uniqueViolation := &pgconn.PgError{Code: "23505"}
	err := translateConflict(uniqueViolation, staffID, date, "10:00", "10:30")
	var conflict *models.ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "2026-02-01", conflict.Date)
	assert.Equal(t, "10:00", conflict.ConflictStart)

	// other errors pass through untouched
	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateConflict(plain, staffID, date, "10:00", "10:30"))
	otherPg := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(otherPg), translateConflict(otherPg, staffID, date, "10:00", "10:30"))
}

func TestStaffDayLocksSameKeySameMutex(t *testing.T) {
	locks := newStaffDayLocks()
	staffID := uuid.New()
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	first := locks.forKey(staffID, date)
	// a different wall-clock time on the same date resolves to the same key
	second := locks.forKey(staffID, date.Add(9*time.Hour))
	assert.Same(t, first, second)

	other := locks.forKey(uuid.New(), date)
	assert.NotSame(t, first, other)
	nextDay := locks.forKey(staffID, date.AddDate(0, 0, 1))
	assert.NotSame(t, first, nextDay)
}

// Greedy admission through FindConflict must yield a pairwise non-overlapping
// ledger, and every rejected window must overlap something already accepted.
func TestGreedyAdmissionStaysConflictFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var accepted []models.Appointment
	for i := 0; i < 200; i++ {
		startMin := rng.Intn(24*60 - 15)
		endMin := startMin + 15 + rng.Intn(120)
		if endMin > 24*60-1 {
			endMin = 24*60 - 1
		}
		start := utils.FormatClock(startMin)
		end := utils.FormatClock(endMin)

		conflict := FindConflict(accepted, start, end)
		if conflict == nil {
			accepted = append(accepted, models.Appointment{StartTime: start, EndTime: end})
			continue
		}
		assert.True(t, utils.RangesOverlap(start, end, conflict.StartTime, conflict.EndTime),
			"rejected [%s, %s) must overlap the reported conflict [%s, %s)",
			start, end, conflict.StartTime, conflict.EndTime)
	}

	require.NotEmpty(t, accepted)
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			assert.False(t, utils.RangesOverlap(
				accepted[i].StartTime, accepted[i].EndTime,
				accepted[j].StartTime, accepted[j].EndTime),
				fmt.Sprintf("accepted windows %d and %d overlap", i, j))
		}
	}
}
