// services/ledger.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ServiceLineInput is one requested service on a booking.
type ServiceLineInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
	Notes     string    `json:"notes"`
}

// CreateAppointmentInput carries everything the ledger needs to persist a
// booking. EstimatedCost, when set, overrides the aggregated line total.
type CreateAppointmentInput struct {
	PetID         uuid.UUID
	StaffID       uuid.UUID
	Date          time.Time
	StartTime     string
	EndTime       string
	Notes         string
	EstimatedCost *float64
	Services      []ServiceLineInput
}

// UpdateAppointmentInput patches an existing appointment. Conflict detection
// reruns only when staff, date or either time actually changes.
type UpdateAppointmentInput struct {
	StaffID   *uuid.UUID
	Date      *time.Time
	StartTime *string
	EndTime   *string
	Notes     *string
}

// Ledger owns appointment records and their service lines: conflict
// detection and cost aggregation happen here, under one atomicity boundary.
type Ledger struct {
	db    *gorm.DB
	locks *staffDayLocks
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, locks: newStaffDayLocks()}
}

// staffDayLocks serializes check-then-act booking sequences per staff/date
// key, so two concurrent requests for the same window cannot both pass the
// conflict check. The partial unique index on (staff_id, appointment_date,
// start_time) backs this up across processes.
type staffDayLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newStaffDayLocks() *staffDayLocks {
	return &staffDayLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *staffDayLocks) forKey(staffID uuid.UUID, date time.Time) *sync.Mutex {
	key := fmt.Sprintf("%s|%s", staffID, utils.BeginningOfDay(date).Format("2006-01-02"))
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.locks[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.locks[key] = m
	return m
}

// ValidateWindow checks the "HH:MM" shape and ordering of a booking window.
func ValidateWindow(start, end string) error {
	if !utils.IsValidClock(start) || !utils.IsValidClock(end) {
		return &models.InvalidTimeRangeError{Reason: "times must be HH:MM", Start: start, End: end}
	}
	if !utils.ClockBefore(start, end) {
		return &models.InvalidTimeRangeError{Reason: "end must be after start", Start: start, End: end}
	}
	return nil
}

// EstimateCost sums quantity times captured unit price across service lines.
func EstimateCost(lines []models.AppointmentService) float64 {
	var total float64
	for i := range lines {
		total += lines[i].LineTotal()
	}
	return total
}

// CreateAppointment validates the window and service lines, captures each
// line's unit price from the current catalog, runs the overlap conflict
// check, and persists the appointment plus its lines atomically as PENDING.
func (l *Ledger) CreateAppointment(input CreateAppointmentInput) (*models.Appointment, error) {
	if err := ValidateWindow(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if len(input.Services) == 0 {
		return nil, models.ErrNoServicesSpecified
	}

	date := utils.BeginningOfDay(input.Date)

	// Serialize the check-then-act sequence per staff/date.
	mu := l.locks.forKey(input.StaffID, date)
	mu.Lock()
	defer mu.Unlock()

	var appointment *models.Appointment
	err := l.db.Transaction(func(tx *gorm.DB) error {
		lines, err := buildServiceLines(tx, input.Services)
		if err != nil {
			return err
		}

		estimated := EstimateCost(lines)
		if input.EstimatedCost != nil {
			estimated = *input.EstimatedCost
		}

		var existing []models.Appointment
		if err := tx.
			Where("staff_id = ? AND appointment_date = ? AND status <> ?",
				input.StaffID, date, models.StatusCancelled).
			Find(&existing).Error; err != nil {
			return err
		}
		if conflict := FindConflict(existing, input.StartTime, input.EndTime); conflict != nil {
			return &models.ScheduleConflictError{
				StaffID:       input.StaffID,
				Date:          date.Format("2006-01-02"),
				ConflictStart: conflict.StartTime,
				ConflictEnd:   conflict.EndTime,
			}
		}

		appointment = &models.Appointment{
			PetID:           input.PetID,
			StaffID:         input.StaffID,
			AppointmentDate: date,
			StartTime:       input.StartTime,
			EndTime:         input.EndTime,
			Status:          models.StatusPending,
			Notes:           input.Notes,
			EstimatedCost:   estimated,
			Services:        lines,
		}
		return tx.Create(appointment).Error
	})
	if err != nil {
		return nil, translateConflict(err, input.StaffID, date, input.StartTime, input.EndTime)
	}
	return appointment, nil
}

// buildServiceLines resolves each requested service and captures its current
// base price as the line's unit price.
func buildServiceLines(tx *gorm.DB, inputs []ServiceLineInput) ([]models.AppointmentService, error) {
	lines := make([]models.AppointmentService, 0, len(inputs))
	for _, in := range inputs {
		var service models.Service
		if err := tx.First(&service, "id = ?", in.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFound("service", in.ServiceID)
			}
			return nil, err
		}
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}
		lines = append(lines, models.AppointmentService{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			Quantity:    quantity,
			UnitPrice:   service.BasePrice,
			Notes:       in.Notes,
		})
	}
	return lines, nil
}

// translateConflict maps a unique-violation on the appointment slot index
// (a losing concurrent writer) to ScheduleConflictError.
func translateConflict(err error, staffID uuid.UUID, date time.Time, start, end string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &models.ScheduleConflictError{
			StaffID:       staffID,
			Date:          date.Format("2006-01-02"),
			ConflictStart: start,
			ConflictEnd:   end,
		}
	}
	return err
}

// UpdateAppointment patches an appointment. Time ordering is re-validated
// when either time changes; the conflict check reruns only when the staff,
// date or window actually changed, so no-op edits are never rejected.
func (l *Ledger) UpdateAppointment(id uuid.UUID, input UpdateAppointmentInput) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := l.db.Preload("Services").First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFound("appointment", id)
		}
		return nil, err
	}

	staffID := appointment.StaffID
	if input.StaffID != nil {
		staffID = *input.StaffID
	}
	date := appointment.AppointmentDate
	if input.Date != nil {
		date = utils.BeginningOfDay(*input.Date)
	}
	start := appointment.StartTime
	if input.StartTime != nil {
		start = *input.StartTime
	}
	end := appointment.EndTime
	if input.EndTime != nil {
		end = *input.EndTime
	}

	if input.StartTime != nil || input.EndTime != nil {
		if err := ValidateWindow(start, end); err != nil {
			return nil, err
		}
	}

	slotChanged := staffID != appointment.StaffID ||
		!date.Equal(appointment.AppointmentDate) ||
		start != appointment.StartTime ||
		end != appointment.EndTime

	apply := func(tx *gorm.DB) error {
		if slotChanged {
			var existing []models.Appointment
			if err := tx.
				Where("staff_id = ? AND appointment_date = ? AND status <> ? AND id <> ?",
					staffID, date, models.StatusCancelled, appointment.ID).
				Find(&existing).Error; err != nil {
				return err
			}
			if conflict := FindConflict(existing, start, end); conflict != nil {
				return &models.ScheduleConflictError{
					StaffID:       staffID,
					Date:          date.Format("2006-01-02"),
					ConflictStart: conflict.StartTime,
					ConflictEnd:   conflict.EndTime,
				}
			}
		}
		appointment.StaffID = staffID
		appointment.AppointmentDate = date
		appointment.StartTime = start
		appointment.EndTime = end
		if input.Notes != nil {
			appointment.Notes = *input.Notes
		}
		return tx.Save(&appointment).Error
	}

	var err error
	if slotChanged {
		mu := l.locks.forKey(staffID, date)
		mu.Lock()
		defer mu.Unlock()
		err = l.db.Transaction(apply)
	} else {
		err = l.db.Transaction(apply)
	}
	if err != nil {
		return nil, translateConflict(err, staffID, date, start, end)
	}
	return &appointment, nil
}

// DeleteAppointment removes a PENDING appointment and its service lines.
// Any other status is rejected; cancelled and completed rows stay on the
// ledger for history.
func (l *Ledger) DeleteAppointment(id uuid.UUID) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFound("appointment", id)
			}
			return err
		}
		if appointment.Status != models.StatusPending {
			return &models.InvalidOperationForStatusError{Operation: "delete", Status: appointment.Status}
		}
		if err := tx.Where("appointment_id = ?", appointment.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&appointment).Error
	})
}
