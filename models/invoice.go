package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is generated when an appointment completes, from its captured
// service lines.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointmentId"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"invoiceDate"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	PaymentStatus string `gorm:"type:varchar(20);default:'unpaid'" json:"paymentStatus"`
	Notes         string `json:"notes"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`
	ServiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName string    `gorm:"not null" json:"serviceName"`
	Quantity    int       `gorm:"default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
