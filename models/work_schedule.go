// models/work_schedule.go
package models

import (
	"time"

	"petclinic-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkSchedule is one staff member's working hours for one calendar date,
// with an optional break window. At most one row exists per (staff_id,
// work_date).
type WorkSchedule struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_work_date,priority:1" json:"staffId"`

	WorkDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_staff_work_date,priority:2" json:"workDate"`
	StartTime  string    `gorm:"type:varchar(5);not null" json:"startTime"` // "HH:MM"
	EndTime    string    `gorm:"type:varchar(5);not null" json:"endTime"`   // "HH:MM"
	BreakStart *string   `gorm:"type:varchar(5)" json:"breakStart,omitempty"`
	BreakEnd   *string   `gorm:"type:varchar(5)" json:"breakEnd,omitempty"`

	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Staff *Staff `gorm:"foreignKey:StaffID" json:"-"`
}

func (w *WorkSchedule) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// NewWorkSchedule builds a validated schedule with isAvailable set. The
// window must satisfy endTime > startTime; a break, when given, must satisfy
// breakEnd > breakStart and fall within the working window.
func NewWorkSchedule(staffID uuid.UUID, workDate time.Time, startTime, endTime string, breakStart, breakEnd *string, notes string) (*WorkSchedule, error) {
	if err := validateWindow(startTime, endTime, breakStart, breakEnd); err != nil {
		return nil, err
	}
	return &WorkSchedule{
		StaffID:     staffID,
		WorkDate:    utils.BeginningOfDay(workDate),
		StartTime:   startTime,
		EndTime:     endTime,
		BreakStart:  breakStart,
		BreakEnd:    breakEnd,
		IsAvailable: true,
		Notes:       notes,
	}, nil
}

func validateWindow(startTime, endTime string, breakStart, breakEnd *string) error {
	for _, v := range []string{startTime, endTime} {
		if !utils.IsValidClock(v) {
			return &InvalidTimeRangeError{Reason: "times must be HH:MM", Start: startTime, End: endTime}
		}
	}
	if !utils.ClockBefore(startTime, endTime) {
		return &InvalidTimeRangeError{Reason: "end must be after start", Start: startTime, End: endTime}
	}
	if (breakStart == nil) != (breakEnd == nil) {
		return &InvalidTimeRangeError{Reason: "break start and end must be set together", Start: startTime, End: endTime}
	}
	if breakStart != nil {
		if !utils.IsValidClock(*breakStart) || !utils.IsValidClock(*breakEnd) {
			return &InvalidTimeRangeError{Reason: "break times must be HH:MM", Start: *breakStart, End: *breakEnd}
		}
		if !utils.ClockBefore(*breakStart, *breakEnd) {
			return &InvalidTimeRangeError{Reason: "break end must be after break start", Start: *breakStart, End: *breakEnd}
		}
		if utils.MustClock(*breakStart) < utils.MustClock(startTime) ||
			utils.MustClock(*breakEnd) > utils.MustClock(endTime) {
			return &InvalidTimeRangeError{Reason: "break must fall within working hours", Start: *breakStart, End: *breakEnd}
		}
	}
	return nil
}

// CheckAvailability reports whether the staff member is working at the given
// instant: the date must match, the time-of-day must fall in [start, end)
// and outside [breakStart, breakEnd) when a break is set.
func (w *WorkSchedule) CheckAvailability(at time.Time) bool {
	if !w.IsAvailable {
		return false
	}
	if !utils.SameDay(at, w.WorkDate) {
		return false
	}
	clock := utils.ClockOf(at)
	if !utils.WithinRange(clock, w.StartTime, w.EndTime) {
		return false
	}
	if w.BreakStart != nil && w.BreakEnd != nil && utils.WithinRange(clock, *w.BreakStart, *w.BreakEnd) {
		return false
	}
	return true
}

// FitsWithinSchedule reports whether [windowStart, windowEnd] lies inside the
// working window. Break overlap is the caller's concern.
func (w *WorkSchedule) FitsWithinSchedule(windowStart, windowEnd string) bool {
	if !w.IsAvailable {
		return false
	}
	return utils.MustClock(windowStart) >= utils.MustClock(w.StartTime) &&
		utils.MustClock(windowEnd) <= utils.MustClock(w.EndTime)
}

// BreakOverlaps reports whether [rangeStart, rangeEnd) intersects the break.
func (w *WorkSchedule) BreakOverlaps(rangeStart, rangeEnd string) bool {
	if w.BreakStart == nil || w.BreakEnd == nil {
		return false
	}
	return utils.RangesOverlap(rangeStart, rangeEnd, *w.BreakStart, *w.BreakEnd)
}

// HasConflictWith applies the half-open overlap test between the working
// window and [rangeStart, rangeEnd).
func (w *WorkSchedule) HasConflictWith(rangeStart, rangeEnd string) bool {
	return utils.RangesOverlap(w.StartTime, w.EndTime, rangeStart, rangeEnd)
}

// WorkingHours is the scheduled duration in hours, break deducted.
func (w *WorkSchedule) WorkingHours() float64 {
	minutes := utils.DurationMinutes(w.StartTime, w.EndTime)
	if w.BreakStart != nil && w.BreakEnd != nil {
		minutes -= utils.DurationMinutes(*w.BreakStart, *w.BreakEnd)
	}
	return float64(minutes) / 60.0
}

// UpdateTimes replaces the working window, re-validating against the
// existing break.
func (w *WorkSchedule) UpdateTimes(startTime, endTime string) error {
	if err := validateWindow(startTime, endTime, w.BreakStart, w.BreakEnd); err != nil {
		return err
	}
	w.StartTime = startTime
	w.EndTime = endTime
	return nil
}

// UpdateBreak replaces the break window; nil/nil clears it.
func (w *WorkSchedule) UpdateBreak(breakStart, breakEnd *string) error {
	if err := validateWindow(w.StartTime, w.EndTime, breakStart, breakEnd); err != nil {
		return err
	}
	w.BreakStart = breakStart
	w.BreakEnd = breakEnd
	return nil
}

// MarkAvailable flags the day bookable again.
func (w *WorkSchedule) MarkAvailable() { w.IsAvailable = true }

// MarkUnavailable takes the day off the books without deleting the row.
func (w *WorkSchedule) MarkUnavailable() { w.IsAvailable = false }
