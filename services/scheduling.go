// services/scheduling.go
package services

import (
	"time"

	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal identifies the caller of a scheduling operation. OwnerID is set
// only for pet-owner accounts.
type Principal struct {
	UserID  uuid.UUID
	Role    string
	OwnerID *uuid.UUID
}

// BookingRequest is the plain-data input to BookAppointment.
type BookingRequest struct {
	PetID         uuid.UUID
	StaffID       uuid.UUID
	Date          time.Time
	StartTime     string
	EndTime       string
	Notes         string
	EstimatedCost *float64
	Services      []ServiceLineInput
}

// Slot is one fixed-size subdivision of a working day, for availability
// grids. Distinct from actual appointment windows.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// SchedulingService composes entity validation, the availability checker,
// the ledger and the lifecycle state machine. It is the only component
// talking to the external lookups.
type SchedulingService struct {
	directory Directory
	store     *GormStore
	checker   *AvailabilityChecker
	ledger    *Ledger
	lifecycle *Lifecycle
}

// NewSchedulingService wires the full engine: gorm-backed stores, the
// availability checker, the ledger, and a lifecycle whose completion
// transitions are observed by the invoice generator.
func NewSchedulingService(db *gorm.DB, notifier Notifier) *SchedulingService {
	store := NewGormStore(db)
	return &SchedulingService{
		directory: store,
		store:     store,
		checker:   NewAvailabilityChecker(store, store),
		ledger:    NewLedger(db),
		lifecycle: NewLifecycle(db, notifier, NewInvoiceGenerator(db)),
	}
}

// BookAppointment validates referenced entities and time ordering, checks
// availability, and creates the PENDING appointment through the ledger.
// Pet-owner callers may only book their own pets; a foreign pet surfaces as
// NotFound, never Forbidden, so other owners' pets stay invisible.
func (s *SchedulingService) BookAppointment(request BookingRequest, caller Principal) (*models.Appointment, error) {
	// Time ordering fails before any availability check runs.
	if err := ValidateWindow(request.StartTime, request.EndTime); err != nil {
		return nil, err
	}
	if len(request.Services) == 0 {
		return nil, models.ErrNoServicesSpecified
	}

	staff, err := s.directory.GetStaffByID(request.StaffID)
	if err != nil {
		return nil, err
	}
	if !staff.IsActive {
		return nil, &models.StaffUnavailableError{
			StaffID: staff.ID,
			Date:    request.Date.Format("2006-01-02"),
			Reason:  "staff member is inactive",
		}
	}

	pet, err := s.directory.GetPetByID(request.PetID)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleOwner {
		if caller.OwnerID == nil || pet.OwnerID != *caller.OwnerID {
			return nil, models.NewNotFound("pet", request.PetID)
		}
	}

	for _, line := range request.Services {
		if _, err := s.directory.GetServiceByID(line.ServiceID); err != nil {
			return nil, err
		}
	}

	result, err := s.checker.CheckStaffAvailability(request.StaffID, request.Date, request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		if result.Conflict != nil {
			return nil, &models.ScheduleConflictError{
				StaffID:       request.StaffID,
				Date:          utils.BeginningOfDay(request.Date).Format("2006-01-02"),
				ConflictStart: result.Conflict.StartTime,
				ConflictEnd:   result.Conflict.EndTime,
			}
		}
		return nil, &models.StaffUnavailableError{
			StaffID: request.StaffID,
			Date:    utils.BeginningOfDay(request.Date).Format("2006-01-02"),
			Reason:  result.Reason,
		}
	}

	return s.ledger.CreateAppointment(CreateAppointmentInput{
		PetID:         request.PetID,
		StaffID:       request.StaffID,
		Date:          request.Date,
		StartTime:     request.StartTime,
		EndTime:       request.EndTime,
		Notes:         request.Notes,
		EstimatedCost: request.EstimatedCost,
		Services:      request.Services,
	})
}

// UpdateAppointment delegates to the ledger.
func (s *SchedulingService) UpdateAppointment(id uuid.UUID, input UpdateAppointmentInput) (*models.Appointment, error) {
	return s.ledger.UpdateAppointment(id, input)
}

// DeleteAppointment delegates to the ledger (PENDING only).
func (s *SchedulingService) DeleteAppointment(id uuid.UUID) error {
	return s.ledger.DeleteAppointment(id)
}

// Confirm drives PENDING -> CONFIRMED.
func (s *SchedulingService) Confirm(id uuid.UUID) (*models.Appointment, error) {
	return s.lifecycle.Confirm(id)
}

// Start drives CONFIRMED -> IN_PROGRESS.
func (s *SchedulingService) Start(id uuid.UUID) (*models.Appointment, error) {
	return s.lifecycle.Start(id)
}

// Complete drives IN_PROGRESS -> COMPLETED.
func (s *SchedulingService) Complete(id uuid.UUID, actualCost *float64) (*models.Appointment, error) {
	return s.lifecycle.Complete(id, actualCost)
}

// Cancel drives any non-terminal status -> CANCELLED.
func (s *SchedulingService) Cancel(id uuid.UUID, reason string) (*models.Appointment, error) {
	return s.lifecycle.Cancel(id, reason)
}

// CheckAvailability exposes the authoritative booking-time check.
func (s *SchedulingService) CheckAvailability(staffID uuid.UUID, date time.Time, start, end string) (*AvailabilityResult, error) {
	if err := ValidateWindow(start, end); err != nil {
		return nil, err
	}
	return s.checker.CheckStaffAvailability(staffID, date, start, end)
}

// GetAvailableSlots partitions the staff's working day into fixed-size slots
// and marks each one free or booked against the non-cancelled appointments
// for that date. A UI convenience: the booking-time checker stays
// authoritative. No schedule means no slots.
func (s *SchedulingService) GetAvailableSlots(staffID uuid.UUID, date time.Time, slotMinutes int) ([]Slot, error) {
	if slotMinutes <= 0 {
		slotMinutes = 30
	}
	schedule, err := s.store.GetWorkSchedule(staffID, date)
	if err != nil {
		return nil, err
	}
	if schedule == nil || !schedule.IsAvailable {
		return []Slot{}, nil
	}
	appointments, err := s.store.ListActiveForStaffDate(staffID, date)
	if err != nil {
		return nil, err
	}
	return PartitionSlots(schedule, appointments, slotMinutes), nil
}

// PartitionSlots cuts [startTime, endTime) into slotMinutes-sized pieces and
// marks each piece booked when any appointment overlaps it. A trailing
// remainder shorter than the slot size is dropped.
func PartitionSlots(schedule *models.WorkSchedule, appointments []models.Appointment, slotMinutes int) []Slot {
	start := utils.MustClock(schedule.StartTime)
	end := utils.MustClock(schedule.EndTime)

	slots := make([]Slot, 0, (end-start)/slotMinutes)
	for cursor := start; cursor+slotMinutes <= end; cursor += slotMinutes {
		slotStart := utils.FormatClock(cursor)
		slotEnd := utils.FormatClock(cursor + slotMinutes)
		slots = append(slots, Slot{
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: FindConflict(appointments, slotStart, slotEnd) == nil,
		})
	}
	return slots
}
