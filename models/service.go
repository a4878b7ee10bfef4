package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is one catalog entry (grooming, vaccination, checkup, ...).
// BasePrice is the current price; appointments capture it at booking time.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	BasePrice   float64   `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	Duration    int       `json:"duration"` // in minutes
	Category    string    `gorm:"default:'General'" json:"category"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`

	AppointmentServices []AppointmentService `gorm:"foreignKey:ServiceID" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
