// services/store.go
package services

import (
	"errors"
	"time"

	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory resolves referenced entities at booking time. Implementations
// return *models.NotFoundError for missing rows.
type Directory interface {
	GetStaffByID(id uuid.UUID) (*models.Staff, error)
	GetPetByID(id uuid.UUID) (*models.Pet, error)
	GetServiceByID(id uuid.UUID) (*models.Service, error)
}

// ScheduleStore reads work schedules. A (nil, nil) result means no schedule
// exists for that staff/date.
type ScheduleStore interface {
	GetWorkSchedule(staffID uuid.UUID, date time.Time) (*models.WorkSchedule, error)
}

// AppointmentReader lists the non-cancelled appointments for one staff/date.
type AppointmentReader interface {
	ListActiveForStaffDate(staffID uuid.UUID, date time.Time) ([]models.Appointment, error)
}

// GormStore backs the lookup interfaces with the clinic database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetStaffByID(id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	if err := s.db.First(&staff, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFound("staff", id)
		}
		return nil, err
	}
	return &staff, nil
}

func (s *GormStore) GetPetByID(id uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	if err := s.db.First(&pet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFound("pet", id)
		}
		return nil, err
	}
	return &pet, nil
}

func (s *GormStore) GetServiceByID(id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := s.db.First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFound("service", id)
		}
		return nil, err
	}
	return &service, nil
}

func (s *GormStore) GetWorkSchedule(staffID uuid.UUID, date time.Time) (*models.WorkSchedule, error) {
	var schedule models.WorkSchedule
	err := s.db.Where("staff_id = ? AND work_date = ?", staffID, utils.BeginningOfDay(date)).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (s *GormStore) ListActiveForStaffDate(staffID uuid.UUID, date time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.
		Where("staff_id = ? AND appointment_date = ? AND status <> ?",
			staffID, utils.BeginningOfDay(date), models.StatusCancelled).
		Order("start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
