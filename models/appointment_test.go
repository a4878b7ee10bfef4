package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitionTable(t *testing.T) {
	all := []AppointmentStatus{
		StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled,
	}

	legal := map[AppointmentStatus]map[AppointmentStatus]bool{
		StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
		StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}

	// every (from, to) pair must match the table exactly
	for _, from := range all {
		for _, to := range all {
			want := legal[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestCancelAlreadyCancelledIsRejected(t *testing.T) {
	// cancelling twice is an error, not a no-op success
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.False(t, AppointmentStatus("rescheduled").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAppointmentOverlapsWindow(t *testing.T) {
	appointment := Appointment{StartTime: "10:00", EndTime: "10:30"}

	assert.True(t, appointment.OverlapsWindow("10:15", "10:45"))
	assert.True(t, appointment.OverlapsWindow("09:45", "10:15"))
	assert.True(t, appointment.OverlapsWindow("10:00", "10:30"))
	assert.False(t, appointment.OverlapsWindow("10:30", "11:00"), "back-to-back is legal")
	assert.False(t, appointment.OverlapsWindow("09:30", "10:00"))
}

func TestServiceLineTotal(t *testing.T) {
	line := AppointmentService{Quantity: 2, UnitPrice: 75}
	assert.Equal(t, 150.0, line.LineTotal())
}
