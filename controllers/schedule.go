// controllers/schedule.go
package controllers

import (
	"errors"
	"net/http"

	"petclinic-backend/config"
	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateWorkScheduleInput defines the expected JSON structure for creating
// a staff work schedule
type CreateWorkScheduleInput struct {
	StaffID    uuid.UUID `json:"staffId" binding:"required"`
	WorkDate   string    `json:"workDate" binding:"required"` // "2006-01-02"
	StartTime  string    `json:"startTime" binding:"required"`
	EndTime    string    `json:"endTime" binding:"required"`
	BreakStart *string   `json:"breakStart"`
	BreakEnd   *string   `json:"breakEnd"`
	Notes      string    `json:"notes"`
}

// UpdateWorkScheduleInput defines the expected JSON structure for updates.
// StartTime/EndTime must be supplied together, as must BreakStart/BreakEnd.
type UpdateWorkScheduleInput struct {
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	BreakStart  *string `json:"breakStart"`
	BreakEnd    *string `json:"breakEnd"`
	ClearBreak  bool    `json:"clearBreak"`
	IsAvailable *bool   `json:"isAvailable"`
	Notes       *string `json:"notes"`
}

// CreateWorkSchedule creates one staff member's schedule for one date
func CreateWorkSchedule(c *gin.Context) {
	var input CreateWorkScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	workDate, err := utils.ParseDate(input.WorkDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid workDate, expected YYYY-MM-DD")
		return
	}

	// Staff must exist
	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", input.StaffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// At most one schedule per staff/date
	var existing models.WorkSchedule
	if err := config.DB.Where("staff_id = ? AND work_date = ?", input.StaffID, utils.BeginningOfDay(workDate)).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Schedule already exists for this staff member and date")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	schedule, err := models.NewWorkSchedule(input.StaffID, workDate, input.StartTime, input.EndTime,
		input.BreakStart, input.BreakEnd, input.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := config.DB.Create(schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// GetWorkSchedules lists schedules, optionally filtered by staff and date
func GetWorkSchedules(c *gin.Context) {
	query := config.DB.Order("work_date, start_time")

	if staffID := c.Query("staffId"); staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if date := c.Query("date"); date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("work_date = ?", utils.BeginningOfDay(parsed))
	}

	var schedules []models.WorkSchedule
	if err := query.Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetWorkSchedule retrieves a specific schedule by ID
func GetWorkSchedule(c *gin.Context) {
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var schedule models.WorkSchedule
	if err := config.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// UpdateWorkSchedule updates times, break or availability, re-validating
// the schedule invariants
func UpdateWorkSchedule(c *gin.Context) {
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateWorkScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var schedule models.WorkSchedule
	if err := config.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if (input.StartTime == nil) != (input.EndTime == nil) {
		utils.RespondWithError(c, http.StatusBadRequest, "startTime and endTime must be updated together")
		return
	}
	if input.StartTime != nil {
		if err := schedule.UpdateTimes(*input.StartTime, *input.EndTime); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	if input.ClearBreak {
		if err := schedule.UpdateBreak(nil, nil); err != nil {
			RespondDomainError(c, err)
			return
		}
	} else if input.BreakStart != nil || input.BreakEnd != nil {
		if err := schedule.UpdateBreak(input.BreakStart, input.BreakEnd); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	if input.IsAvailable != nil {
		if *input.IsAvailable {
			schedule.MarkAvailable()
		} else {
			schedule.MarkUnavailable()
		}
	}
	if input.Notes != nil {
		schedule.Notes = *input.Notes
	}

	if err := config.DB.Save(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// DeleteWorkSchedule removes a schedule, but only when no non-cancelled
// appointment still references that staff/date
func DeleteWorkSchedule(c *gin.Context) {
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var schedule models.WorkSchedule
	if err := config.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var activeCount int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("staff_id = ? AND appointment_date = ? AND status <> ?",
			schedule.StaffID, schedule.WorkDate, models.StatusCancelled).
		Count(&activeCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if activeCount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Schedule has active appointments and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
