// controllers/notification.go
package controllers

import (
	"net/http"

	"petclinic-backend/config"
	"petclinic-backend/models"
	"petclinic-backend/services"
	"petclinic-backend/utils"

	"github.com/gin-gonic/gin"
)

var reminderService *services.ReminderService

// InitNotifications injects the reminder service, called once from main.
func InitNotifications(svc *services.ReminderService) {
	reminderService = svc
}

// GetNotificationLogs lists notification attempts, newest first
func GetNotificationLogs(c *gin.Context) {
	query := config.DB.Order("created_at desc").Limit(200)
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var logs []models.NotificationLog
	if err := query.Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notification logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// RunReminders triggers the daily reminder pass outside its cron schedule
func RunReminders(c *gin.Context) {
	if reminderService == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Reminder service not configured")
		return
	}

	go reminderService.SendDailyReminders()

	c.JSON(http.StatusAccepted, gin.H{"message": "Reminder run started"})
}
