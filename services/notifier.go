// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"petclinic-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notification kinds
const (
	KindBookingConfirmed    = "booking_confirmed"
	KindServiceCompleted    = "service_completed"
	KindBookingCancelled    = "booking_cancelled"
	KindAppointmentReminder = "appointment_reminder"
)

// NotificationPayload carries the appointment facts a message is built from.
type NotificationPayload struct {
	AppointmentID uuid.UUID
	OwnerName     string
	PetName       string
	Date          string
	StartTime     string
	EndTime       string
	Reason        string
}

// Notifier delivers a notification to a recipient. Callers treat delivery as
// fire-and-forget: errors are logged, never propagated to the booking flow.
type Notifier interface {
	Notify(kind, recipient string, payload NotificationPayload) error
}

var messageTemplates = map[string]string{
	KindBookingConfirmed:    "Hi [OwnerName], your appointment for [PetName] on [Date] at [StartTime] is confirmed. See you then!",
	KindServiceCompleted:    "Hi [OwnerName], [PetName]'s visit on [Date] is complete. Thank you for choosing our clinic!",
	KindBookingCancelled:    "Hi [OwnerName], your appointment for [PetName] on [Date] at [StartTime] has been cancelled. [Reason]",
	KindAppointmentReminder: "Hi [OwnerName], a reminder: [PetName] has an appointment tomorrow ([Date]) at [StartTime].",
}

// RenderMessage fills the template for a notification kind.
func RenderMessage(kind string, payload NotificationPayload) string {
	template, ok := messageTemplates[kind]
	if !ok {
		return fmt.Sprintf("Update for %s's appointment on %s", payload.PetName, payload.Date)
	}
	message := template
	message = strings.ReplaceAll(message, "[OwnerName]", payload.OwnerName)
	message = strings.ReplaceAll(message, "[PetName]", payload.PetName)
	message = strings.ReplaceAll(message, "[Date]", payload.Date)
	message = strings.ReplaceAll(message, "[StartTime]", payload.StartTime)
	message = strings.ReplaceAll(message, "[Reason]", payload.Reason)
	return strings.TrimSpace(message)
}

// TwilioNotifier sends SMS/WhatsApp messages and records every attempt in
// notification_logs.
type TwilioNotifier struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewTwilioNotifier(db *gorm.DB) *TwilioNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioNotifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (n *TwilioNotifier) Notify(kind, recipient string, payload NotificationPayload) error {
	message := RenderMessage(kind, payload)

	// WhatsApp for E.164 numbers, plain SMS otherwise
	channel := "sms"
	to := recipient
	if strings.HasPrefix(recipient, "+") {
		to = "whatsapp:" + recipient
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, sendErr := n.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		status = "failed"
		errorMsg = sendErr.Error()
		log.Printf("notifier: failed to send %s to %s: %v", kind, recipient, sendErr)
	} else if resp.Sid != nil {
		log.Printf("notifier: %s sent to %s, SID: %s", kind, recipient, *resp.Sid)
	}

	n.record(kind, recipient, message, channel, status, errorMsg, payload.AppointmentID)
	return sendErr
}

func (n *TwilioNotifier) record(kind, recipient, message, channel, status, errorMsg string, appointmentID uuid.UUID) {
	entry := models.NotificationLog{
		AppointmentID: &appointmentID,
		Kind:          kind,
		Recipient:     recipient,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("notifier: failed to log %s notification for %s: %v", kind, recipient, err)
	}
}

// LogNotifier writes notifications to the application log only. Used when
// Twilio credentials are not configured (local development).
type LogNotifier struct{}

func (LogNotifier) Notify(kind, recipient string, payload NotificationPayload) error {
	log.Printf("notifier (log only): %s to %s: %s", kind, recipient, RenderMessage(kind, payload))
	return nil
}

// NotifierFromEnv picks the Twilio notifier when credentials exist,
// otherwise the log-only notifier.
func NotifierFromEnv(db *gorm.DB) Notifier {
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		return NewTwilioNotifier(db)
	}
	log.Println("TWILIO_ACCOUNT_SID not set, notifications will be logged only")
	return LogNotifier{}
}
