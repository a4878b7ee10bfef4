package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner is a pet owner; the clinic's customer record.
type Owner struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"not null;uniqueIndex" json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Pets []Pet `gorm:"foreignKey:OwnerID" json:"pets,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Owner) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
