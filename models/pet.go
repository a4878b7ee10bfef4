package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pet belongs to one Owner and is the subject of appointments.
type Pet struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	Name        string     `gorm:"not null" json:"name"`
	Species     string     `gorm:"type:varchar(40);not null" json:"species"` // dog, cat, ...
	Breed       string     `json:"breed"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	WeightKg    *float64   `gorm:"type:decimal(6,2)" json:"weightKg,omitempty"`
	MicrochipID string     `gorm:"type:varchar(20)" json:"microchipId,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Owner *Owner `gorm:"foreignKey:OwnerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
