// services/lifecycle.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"petclinic-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransitionObserver is an external collaborator reacting to a committed
// state change (e.g. invoice generation on completion). Observer failures
// never roll back the transition.
type TransitionObserver interface {
	AfterTransition(appointment *models.Appointment, from, to models.AppointmentStatus) error
}

// TransitionOptions carries per-event extras.
type TransitionOptions struct {
	ActualCost         *float64 // complete only
	CancellationReason string   // cancel only
}

// Lifecycle drives the appointment state machine. The transition itself is
// the durable effect; notifications and observers run best-effort after
// commit.
type Lifecycle struct {
	db        *gorm.DB
	notifier  Notifier
	observers []TransitionObserver
}

func NewLifecycle(db *gorm.DB, notifier Notifier, observers ...TransitionObserver) *Lifecycle {
	return &Lifecycle{db: db, notifier: notifier, observers: observers}
}

// ApplyTransition mutates the appointment for a legal transition or fails
// with InvalidStatusTransition. Pure with respect to storage.
func ApplyTransition(appointment *models.Appointment, target models.AppointmentStatus, opts TransitionOptions, now time.Time) error {
	if !appointment.Status.CanTransitionTo(target) {
		return &models.InvalidStatusTransitionError{Current: appointment.Status, Attempted: target}
	}
	appointment.Status = target
	switch target {
	case models.StatusCompleted:
		// actualCost is written once, at completion.
		if opts.ActualCost != nil && appointment.ActualCost == nil {
			appointment.ActualCost = opts.ActualCost
		}
	case models.StatusCancelled:
		appointment.CancellationReason = opts.CancellationReason
		cancelledAt := now
		appointment.CancelledAt = &cancelledAt
	}
	return nil
}

// Confirm moves PENDING -> CONFIRMED and notifies the pet owner.
func (s *Lifecycle) Confirm(id uuid.UUID) (*models.Appointment, error) {
	return s.transition(id, models.StatusConfirmed, TransitionOptions{}, KindBookingConfirmed)
}

// Start moves CONFIRMED -> IN_PROGRESS. No side effects.
func (s *Lifecycle) Start(id uuid.UUID) (*models.Appointment, error) {
	return s.transition(id, models.StatusInProgress, TransitionOptions{}, "")
}

// Complete moves IN_PROGRESS -> COMPLETED, optionally recording the actual
// cost, and notifies the owner. Invoice generation happens in an observer.
func (s *Lifecycle) Complete(id uuid.UUID, actualCost *float64) (*models.Appointment, error) {
	return s.transition(id, models.StatusCompleted, TransitionOptions{ActualCost: actualCost}, KindServiceCompleted)
}

// Cancel moves any non-terminal status -> CANCELLED, recording the reason
// and cancellation time, and notifies the owner. Cancelling an already
// cancelled or completed appointment fails.
func (s *Lifecycle) Cancel(id uuid.UUID, reason string) (*models.Appointment, error) {
	return s.transition(id, models.StatusCancelled, TransitionOptions{CancellationReason: reason}, KindBookingCancelled)
}

// transition loads the row under FOR UPDATE so two concurrent requests
// cannot both succeed from the same source state, applies the state change,
// commits, then fires best-effort side effects.
func (s *Lifecycle) transition(id uuid.UUID, target models.AppointmentStatus, opts TransitionOptions, notifyKind string) (*models.Appointment, error) {
	var appointment models.Appointment
	var from models.AppointmentStatus

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFound("appointment", id)
			}
			return err
		}
		from = appointment.Status
		if err := ApplyTransition(&appointment, target, opts, time.Now()); err != nil {
			return err
		}
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Services").First(&appointment, "id = ?", appointment.ID).Error; err != nil {
		log.Printf("lifecycle: failed to reload appointment %s: %v", appointment.ID, err)
	}

	if notifyKind != "" {
		s.notifyOwner(&appointment, notifyKind)
	}
	for _, observer := range s.observers {
		if err := observer.AfterTransition(&appointment, from, target); err != nil {
			log.Printf("lifecycle: observer failed after %s -> %s for appointment %s: %v",
				from, target, appointment.ID, err)
		}
	}
	return &appointment, nil
}

// notifyOwner sends the transition notification to the pet owner.
// Failures are logged and swallowed: notification is advisory, not part of
// the booking contract.
func (s *Lifecycle) notifyOwner(appointment *models.Appointment, kind string) {
	if s.notifier == nil {
		return
	}
	var pet models.Pet
	if err := s.db.Preload("Owner").First(&pet, "id = ?", appointment.PetID).Error; err != nil {
		log.Printf("lifecycle: cannot resolve owner for appointment %s: %v", appointment.ID, err)
		return
	}
	if pet.Owner == nil {
		log.Printf("lifecycle: pet %s has no owner record", pet.ID)
		return
	}
	payload := NotificationPayload{
		AppointmentID: appointment.ID,
		OwnerName:     pet.Owner.Name,
		PetName:       pet.Name,
		Date:          appointment.AppointmentDate.Format("2006-01-02"),
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		Reason:        appointment.CancellationReason,
	}
	if err := s.notifier.Notify(kind, pet.Owner.Phone, payload); err != nil {
		log.Printf("lifecycle: %s notification for appointment %s failed: %v",
			kind, appointment.ID, err)
	}
}

// DescribeTransition renders a transition for logs and API messages.
func DescribeTransition(from, to models.AppointmentStatus) string {
	return fmt.Sprintf("%s -> %s", from, to)
}
