// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"petclinic-backend/config"
	"petclinic-backend/models"
	"petclinic-backend/services"
	"petclinic-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var schedulingService *services.SchedulingService

// InitScheduling injects the engine, called once from main.
func InitScheduling(svc *services.SchedulingService) {
	schedulingService = svc
}

// BookAppointmentInput defines the expected JSON structure for booking
type BookAppointmentInput struct {
	PetID         uuid.UUID                   `json:"petId" binding:"required"`
	StaffID       uuid.UUID                   `json:"staffId" binding:"required"`
	Date          string                      `json:"date" binding:"required"` // "2006-01-02"
	StartTime     string                      `json:"startTime" binding:"required"`
	EndTime       string                      `json:"endTime" binding:"required"`
	Notes         string                      `json:"notes"`
	EstimatedCost *float64                    `json:"estimatedCost"`
	Services      []services.ServiceLineInput `json:"services"`
}

// UpdateAppointmentInput defines the expected JSON structure for updates
type UpdateAppointmentInput struct {
	StaffID   *uuid.UUID `json:"staffId"`
	Date      *string    `json:"date"`
	StartTime *string    `json:"startTime"`
	EndTime   *string    `json:"endTime"`
	Notes     *string    `json:"notes"`
}

type CompleteAppointmentInput struct {
	ActualCost *float64 `json:"actualCost"`
}

type CancelAppointmentInput struct {
	Reason string `json:"reason" binding:"required"`
}

// BookAppointment creates a PENDING appointment through the scheduling engine
func BookAppointment(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	appointment, err := schedulingService.BookAppointment(services.BookingRequest{
		PetID:         input.PetID,
		StaffID:       input.StaffID,
		Date:          date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Notes:         input.Notes,
		EstimatedCost: input.EstimatedCost,
		Services:      input.Services,
	}, caller)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists appointments. Owners see only their own pets'
// bookings; staff and admins see everything, optionally filtered.
func GetAppointments(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	query := config.DB.Preload("Services").Order("appointment_date, start_time")

	if caller.Role == models.RoleOwner {
		if caller.OwnerID == nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Owner ID not found in context")
			return
		}
		query = query.Where("pet_id IN (?)",
			config.DB.Model(&models.Pet{}).Select("id").Where("owner_id = ?", *caller.OwnerID))
	}

	if staffID := c.Query("staffId"); staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if date := c.Query("date"); date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("appointment_date = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Services").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Foreign pets stay invisible to owner accounts
	if caller.Role == models.RoleOwner && !ownerHoldsPet(caller, appointment.PetID) {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

func ownerHoldsPet(caller services.Principal, petID uuid.UUID) bool {
	if caller.OwnerID == nil {
		return false
	}
	var count int64
	config.DB.Model(&models.Pet{}).
		Where("id = ? AND owner_id = ?", petID, *caller.OwnerID).Count(&count)
	return count > 0
}

// UpdateAppointment patches an appointment through the ledger
func UpdateAppointment(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	patch := services.UpdateAppointmentInput{
		StaffID:   input.StaffID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Notes:     input.Notes,
	}
	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	appointment, err := schedulingService.UpdateAppointment(appointmentID, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes a PENDING appointment
func DeleteAppointment(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := schedulingService.DeleteAppointment(appointmentID); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// ConfirmAppointment drives PENDING -> CONFIRMED
func ConfirmAppointment(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := schedulingService.Confirm(appointmentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// StartAppointment drives CONFIRMED -> IN_PROGRESS
func StartAppointment(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := schedulingService.Start(appointmentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CompleteAppointment drives IN_PROGRESS -> COMPLETED, optionally recording
// the actual cost
func CompleteAppointment(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	// Body is optional, actualCost may be omitted
	var input CompleteAppointmentInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	appointment, err := schedulingService.Complete(appointmentID, input.ActualCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CancelAppointment drives any non-terminal status -> CANCELLED
func CancelAppointment(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input CancelAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := schedulingService.Cancel(appointmentID, input.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// GetAvailableSlots returns the fixed-size slot grid for one staff/date
func GetAvailableSlots(c *gin.Context) {
	staffID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	slotMinutes := 30
	if raw := c.Query("slotMinutes"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			slotMinutes = parsed
		}
	}

	slots, err := schedulingService.GetAvailableSlots(staffID, date, slotMinutes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "slots": slots})
}

// CheckStaffAvailability runs the authoritative booking-time check
func CheckStaffAvailability(c *gin.Context) {
	staffID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	result, err := schedulingService.CheckAvailability(staffID, date, c.Query("start"), c.Query("end"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
