// services/availability.go
package services

import (
	"time"

	"petclinic-backend/models"

	"github.com/google/uuid"
)

// AvailabilityResult answers "can staff X take this window?" with the reason
// when they cannot. Conflict carries the overlapping appointment, if that is
// what blocked the window.
type AvailabilityResult struct {
	Available bool                `json:"available"`
	Reason    string              `json:"reason,omitempty"`
	Conflict  *models.Appointment `json:"-"`
}

// AvailabilityChecker decides bookability from the work schedule and the
// ledger of existing appointments. Read-only; no side effects.
type AvailabilityChecker struct {
	schedules    ScheduleStore
	appointments AppointmentReader
}

func NewAvailabilityChecker(schedules ScheduleStore, appointments AppointmentReader) *AvailabilityChecker {
	return &AvailabilityChecker{schedules: schedules, appointments: appointments}
}

// CheckStaffAvailability requires a schedule covering [start, end) outside
// the break, and no non-cancelled appointment overlapping the window.
// No schedule for the date means no work that day.
func (c *AvailabilityChecker) CheckStaffAvailability(staffID uuid.UUID, date time.Time, start, end string) (*AvailabilityResult, error) {
	schedule, err := c.schedules.GetWorkSchedule(staffID, date)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return &AvailabilityResult{Reason: "no work schedule for this date"}, nil
	}
	if !schedule.IsAvailable {
		return &AvailabilityResult{Reason: "staff marked unavailable for this date"}, nil
	}
	if !schedule.FitsWithinSchedule(start, end) {
		return &AvailabilityResult{Reason: "requested window falls outside working hours"}, nil
	}
	if schedule.BreakOverlaps(start, end) {
		return &AvailabilityResult{Reason: "requested window overlaps the break"}, nil
	}

	existing, err := c.appointments.ListActiveForStaffDate(staffID, date)
	if err != nil {
		return nil, err
	}
	if conflict := FindConflict(existing, start, end); conflict != nil {
		return &AvailabilityResult{
			Reason:   "staff already booked in this window",
			Conflict: conflict,
		}, nil
	}

	return &AvailabilityResult{Available: true}, nil
}

// FindConflict returns the first appointment whose [startTime, endTime)
// overlaps [start, end) under the half-open rule, or nil. Cancelled rows must
// already be filtered out by the caller.
func FindConflict(existing []models.Appointment, start, end string) *models.Appointment {
	for i := range existing {
		if existing[i].OverlapsWindow(start, end) {
			return &existing[i]
		}
	}
	return nil
}
