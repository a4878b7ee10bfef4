package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StaffRoleVeterinarian = "veterinarian"
	StaffRoleCareStaff    = "care_staff"
	StaffRoleManager      = "manager"
	StaffRoleReceptionist = "receptionist"
)

// Staff is one clinic employee. Role-specific fields (license number,
// specializations, skills) live in RoleDetails keyed by the Role tag; the
// scheduling engine only ever reads the common identity.
type Staff struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Phone string `json:"phone"`

	Role        string `gorm:"type:varchar(20);not null" json:"role"`
	RoleDetails JSONB  `gorm:"type:jsonb;default:'{}'" json:"roleDetails"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Schedules    []WorkSchedule `gorm:"foreignKey:StaffID" json:"-"`
	Appointments []Appointment  `gorm:"foreignKey:StaffID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
