// services/invoicing.go
package services

import (
	"time"

	"petclinic-backend/models"
	"petclinic-backend/utils"

	"gorm.io/gorm"
)

// InvoiceGenerator observes lifecycle transitions and builds an invoice from
// the appointment's captured service lines when it completes. It is a
// downstream collaborator of the state machine, not part of it.
type InvoiceGenerator struct {
	db *gorm.DB
}

func NewInvoiceGenerator(db *gorm.DB) *InvoiceGenerator {
	return &InvoiceGenerator{db: db}
}

func (g *InvoiceGenerator) AfterTransition(appointment *models.Appointment, from, to models.AppointmentStatus) error {
	if to != models.StatusCompleted {
		return nil
	}

	var pet models.Pet
	if err := g.db.First(&pet, "id = ?", appointment.PetID).Error; err != nil {
		return err
	}

	subtotal := EstimateCost(appointment.Services)
	total := appointment.EstimatedCost
	if appointment.ActualCost != nil {
		total = *appointment.ActualCost
	}

	items := make([]models.InvoiceItem, 0, len(appointment.Services))
	for _, line := range appointment.Services {
		items = append(items, models.InvoiceItem{
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.LineTotal(),
		})
	}

	invoice := models.Invoice{
		AppointmentID: appointment.ID,
		OwnerID:       pet.OwnerID,
		InvoiceNumber: "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		InvoiceDate:   time.Now(),
		Subtotal:      subtotal,
		Total:         total,
		PaymentStatus: "unpaid",
		Items:         items,
	}

	return g.db.Create(&invoice).Error
}
