// models/appointment.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// statusTransitions is the full transition table. Cancellation is handled
// separately because it is legal from every non-terminal state.
var statusTransitions = map[AppointmentStatus]AppointmentStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// IsTerminal reports whether no transition leaves this status.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle transition.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if target == StatusCancelled {
		return !s.IsTerminal()
	}
	return statusTransitions[s] == target
}

// IsValid reports whether s is one of the defined statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment books one staff member for one pet over one date/time window.
// The (staff_id, appointment_date, start_time) combination is unique among
// non-cancelled rows; a partial unique index backs the in-process check.
type Appointment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PetID   uuid.UUID `gorm:"type:uuid;index;not null" json:"petId"`
	StaffID uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`

	AppointmentDate time.Time         `gorm:"type:date;index;not null" json:"appointmentDate"`
	StartTime       string            `gorm:"type:varchar(5);not null" json:"startTime"` // "HH:MM"
	EndTime         string            `gorm:"type:varchar(5);not null" json:"endTime"`   // "HH:MM"
	Status          AppointmentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	Notes              string   `gorm:"type:text" json:"notes"`
	CancellationReason string   `gorm:"type:text" json:"cancellationReason,omitempty"`
	EstimatedCost      float64  `gorm:"type:decimal(10,2);not null" json:"estimatedCost"`
	ActualCost         *float64 `gorm:"type:decimal(10,2)" json:"actualCost,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`

	Pet   *Pet   `gorm:"foreignKey:PetID" json:"-"`
	Staff *Staff `gorm:"foreignKey:StaffID" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// OverlapsWindow applies the half-open interval test against [start, end).
// Zero-padded "HH:MM" strings order lexicographically.
func (a *Appointment) OverlapsWindow(start, end string) bool {
	return a.StartTime < end && a.EndTime > start
}

// AppointmentService is one service line on an appointment. UnitPrice is the
// catalog price captured at booking time; later catalog changes never touch it.
type AppointmentService struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointmentId"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName   string    `gorm:"not null" json:"serviceName"`
	Quantity      int       `gorm:"default:1" json:"quantity"`
	UnitPrice     float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Notes         string    `gorm:"type:text" json:"notes"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// LineTotal is quantity times the captured unit price.
func (s *AppointmentService) LineTotal() float64 {
	return s.UnitPrice * float64(s.Quantity)
}
