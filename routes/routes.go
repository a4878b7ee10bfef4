package routes

import (
	"os"
	"strings"

	"petclinic-backend/config"
	"petclinic-backend/controllers"
	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clinicOnly := utils.RequireRole(models.RoleAdmin, models.RoleStaff)

		// Owner routes (front desk)
		owners := api.Group("/owners", clinicOnly)
		{
			owners.POST("", controllers.CreateOwner)
			owners.GET("", controllers.GetOwners)
			owners.GET("/:id", controllers.GetOwner)
			owners.PUT("/:id", controllers.UpdateOwner)
		}

		// Pet routes
		pets := api.Group("/pets")
		{
			pets.POST("", controllers.CreatePet)
			pets.GET("", controllers.GetPets)
			pets.GET("/:id", controllers.GetPet)
			pets.PUT("/:id", controllers.UpdatePet)
		}

		// Service catalog routes
		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.POST("", clinicOnly, controllers.CreateService)
			services.PUT("/:id", clinicOnly, controllers.UpdateService)
			services.DELETE("/:id", clinicOnly, controllers.DeleteService)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.GET("", controllers.GetStaffList)
			staff.GET("/:id", controllers.GetStaff)
			staff.PUT("/:id", clinicOnly, controllers.UpdateStaff)
			staff.GET("/:id/slots", controllers.GetAvailableSlots)
			staff.GET("/:id/availability", controllers.CheckStaffAvailability)
		}

		// Work schedule routes
		schedules := api.Group("/schedules", clinicOnly)
		{
			schedules.POST("", controllers.CreateWorkSchedule)
			schedules.GET("", controllers.GetWorkSchedules)
			schedules.GET("/:id", controllers.GetWorkSchedule)
			schedules.PUT("/:id", controllers.UpdateWorkSchedule)
			schedules.DELETE("/:id", controllers.DeleteWorkSchedule)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.BookAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", clinicOnly, controllers.UpdateAppointment)
			appointments.DELETE("/:id", clinicOnly, controllers.DeleteAppointment)

			// Lifecycle transitions
			appointments.POST("/:id/confirm", clinicOnly, controllers.ConfirmAppointment)
			appointments.POST("/:id/start", clinicOnly, controllers.StartAppointment)
			appointments.POST("/:id/complete", clinicOnly, controllers.CompleteAppointment)
			appointments.POST("/:id/cancel", controllers.CancelAppointment)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", clinicOnly, controllers.UpdateInvoice)
		}

		// Notification routes
		notifications := api.Group("/notifications", clinicOnly)
		{
			notifications.GET("", controllers.GetNotificationLogs)
			notifications.POST("/run-reminders", controllers.RunReminders)
		}

		// Dashboard routes
		api.GET("/dashboard", clinicOnly, controllers.GetDashboardOverview)
	}

	return r
}
