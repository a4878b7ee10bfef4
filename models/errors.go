// models/errors.go
package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoServicesSpecified is returned when a booking carries zero service lines.
var ErrNoServicesSpecified = errors.New("appointment requires at least one service")

// NotFoundError reports a missing referenced entity, naming which one.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

// InvalidTimeRangeError reports end-not-after-start or a break window that
// escapes the working window.
type InvalidTimeRangeError struct {
	Reason string
	Start  string
	End    string
}

func (e *InvalidTimeRangeError) Error() string {
	return fmt.Sprintf("invalid time range %s-%s: %s", e.Start, e.End, e.Reason)
}

// ScheduleConflictError reports an overlapping booking and names the
// conflicting window so callers can suggest alternatives.
type ScheduleConflictError struct {
	StaffID       uuid.UUID
	Date          string
	ConflictStart string
	ConflictEnd   string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("staff %s already booked on %s from %s to %s",
		e.StaffID, e.Date, e.ConflictStart, e.ConflictEnd)
}

// StaffUnavailableError reports a booking window the staff member cannot work:
// no schedule for that date, outside working hours, or inside the break.
type StaffUnavailableError struct {
	StaffID uuid.UUID
	Date    string
	Reason  string
}

func (e *StaffUnavailableError) Error() string {
	return fmt.Sprintf("staff %s not available on %s: %s", e.StaffID, e.Date, e.Reason)
}

// InvalidStatusTransitionError reports an illegal lifecycle event, naming the
// current status and the attempted target.
type InvalidStatusTransitionError struct {
	Current   AppointmentStatus
	Attempted AppointmentStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.Current, e.Attempted)
}

// InvalidOperationForStatusError reports an operation not permitted in the
// appointment's current status, e.g. deleting a non-pending appointment.
type InvalidOperationForStatusError struct {
	Operation string
	Status    AppointmentStatus
}

func (e *InvalidOperationForStatusError) Error() string {
	return fmt.Sprintf("cannot %s appointment in status %s", e.Operation, e.Status)
}
