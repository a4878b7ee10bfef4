// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records every notification attempt, sent or failed.
type NotificationLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId,omitempty"`

	Kind         string `gorm:"type:varchar(30);not null" json:"kind"` // booking_confirmed, service_completed, ...
	Recipient    string `gorm:"not null" json:"recipient"`
	Message      string `gorm:"type:text" json:"message"`
	Status       string `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms

	SentAt    time.Time `json:"sentAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
