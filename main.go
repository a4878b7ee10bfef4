package main

import (
	"fmt"
	"log"
	"os"

	"petclinic-backend/config"
	"petclinic-backend/controllers"
	"petclinic-backend/models"
	"petclinic-backend/routes"
	"petclinic-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Owner{},
		&models.Pet{},
		&models.Staff{},
		&models.Service{},
		&models.WorkSchedule{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.NotificationLog{},
	)

	// Partial unique index backing the booking conflict check: at most one
	// non-cancelled appointment per staff/date/start slot.
	config.DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointment_slot
		ON appointments (staff_id, appointment_date, start_time)
		WHERE status <> 'cancelled'`)
}

func main() {
	notifier := services.NotifierFromEnv(config.DB)

	scheduling := services.NewSchedulingService(config.DB, notifier)
	controllers.InitScheduling(scheduling)

	reminders := services.NewReminderService(config.DB, notifier)
	controllers.InitNotifications(reminders)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
