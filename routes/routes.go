package routes

import (
	"os"
	"strings"

	"groompro-backend/config"
	"groompro-backend/controllers"
	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(
	notifier *services.NotificationService,
	earnings *services.EarningsService,
	loyalty *services.LoyaltyService,
) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

	appointmentController := controllers.NewAppointmentController(notifier, loyalty)
	earningsController := controllers.NewEarningsController(earnings)
	notificationController := controllers.NewNotificationController(notifier)
	loyaltyController := controllers.NewLoyaltyController(loyalty)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)

			customers.GET("/:id/loyalty", loyaltyController.GetBalance)
			customers.GET("/:id/loyalty/history", loyaltyController.GetHistory)
		}

		// Pet routes
		pets := api.Group("/pets")
		{
			pets.POST("", controllers.CreatePet)
			pets.GET("", controllers.GetPets)
			pets.PUT("/:id", controllers.UpdatePet)
			pets.DELETE("/:id", controllers.DeletePet)
		}

		// Service routes
		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", controllers.CreateService)
			servicesGroup.GET("", controllers.GetServices)
			servicesGroup.GET("/:id", controllers.GetService)
			servicesGroup.PUT("/:id", controllers.UpdateService)
			servicesGroup.DELETE("/:id", controllers.DeleteService)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentController.Create)
			appointments.GET("", appointmentController.List)
			appointments.GET("/:id", appointmentController.Get)
			appointments.PATCH("/:id/status", appointmentController.UpdateStatus)
			appointments.PATCH("/:id/groomer", appointmentController.AssignGroomer)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("", controllers.CreatePayment)
			payments.GET("", controllers.GetPayments)
		}

		// Reports
		api.GET("/reports/earnings", earningsController.GetEarningsReport)

		// Dashboard
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Staff routes
		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)

			employees.GET("/:id/commission", controllers.GetCommission)
			employees.PUT("/:id/commission", controllers.UpsertCommission)
		}

		// Notification admin routes
		notifications := api.Group("/notifications")
		{
			notifications.POST("/templates", notificationController.CreateTemplate)
			notifications.GET("/templates", notificationController.GetTemplates)
			notifications.PUT("/templates/:id", notificationController.UpdateTemplate)
			notifications.DELETE("/templates/:id", notificationController.DeleteTemplate)

			notifications.PUT("/preferences", notificationController.UpsertPreference)
			notifications.GET("/logs", notificationController.GetLogs)
			notifications.GET("/retry-queue", notificationController.GetRetryQueue)
			notifications.POST("/send", notificationController.SendTest)
		}

		// Loyalty redemption
		api.POST("/loyalty/redeem", loyaltyController.Redeem)

		// Gallery routes
		gallery := api.Group("/gallery")
		{
			gallery.POST("", controllers.CreatePhoto)
			gallery.GET("", controllers.GetPhotos)
			gallery.PUT("/:id", controllers.UpdatePhoto)
			gallery.DELETE("/:id", controllers.DeletePhoto)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("/profile", controllers.UpdateBusinessProfile)
			settings.PUT("/hours", controllers.UpdateWorkingHours)
			settings.PUT("/notifications", controllers.UpdateNotificationTypes)
		}
	}

	return r
}
