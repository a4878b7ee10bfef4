// services/reminder_service.go
package services

import (
	"log"
	"time"

	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService sends next-day appointment reminders to pet owners.
type ReminderService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewReminderService(db *gorm.DB, notifier Notifier) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

// StartScheduler runs the reminder pass every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to register reminder job: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders notifies owners of every PENDING or CONFIRMED
// appointment scheduled for tomorrow. Failures are logged per appointment
// and never abort the pass.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))

	var appointments []models.Appointment
	if err := s.db.
		Where("appointment_date = ? AND status IN ?",
			tomorrow, []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for i := range appointments {
		s.remind(&appointments[i])
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) remind(appointment *models.Appointment) {
	var pet models.Pet
	if err := s.db.Preload("Owner").First(&pet, "id = ?", appointment.PetID).Error; err != nil {
		log.Printf("Appointment %s: failed to resolve pet: %v", appointment.ID, err)
		return
	}
	if pet.Owner == nil {
		log.Printf("Appointment %s: pet %s has no owner record", appointment.ID, pet.ID)
		return
	}

	payload := NotificationPayload{
		AppointmentID: appointment.ID,
		OwnerName:     pet.Owner.Name,
		PetName:       pet.Name,
		Date:          appointment.AppointmentDate.Format("2006-01-02"),
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
	}
	if err := s.notifier.Notify(KindAppointmentReminder, pet.Owner.Phone, payload); err != nil {
		log.Printf("Appointment %s: reminder to %s failed: %v", appointment.ID, pet.Owner.Phone, err)
	}
}
