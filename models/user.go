package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"petclinic-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleOwner = "owner"
)

// User is a login principal: a clinic admin, a staff account, or a pet owner.
// Owner accounts link to their Owner record; staff accounts to their Staff
// record.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	Role    string     `gorm:"type:varchar(20);not null" json:"role"` // 'admin', 'staff' or 'owner'
	OwnerID *uuid.UUID `gorm:"type:uuid;index" json:"ownerId,omitempty"`
	StaffID *uuid.UUID `gorm:"type:uuid;index" json:"staffId,omitempty"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Custom JSONB type for role-specific staff payloads
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
