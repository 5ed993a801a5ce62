package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/routes"
	"groompro-backend/services"

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
		&models.Business{},
		&models.User{},
		&models.Customer{},
		&models.Pet{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentAddon{},
		&models.Payment{},
		&models.StaffCommission{},
		&models.CommissionServiceOverride{},
		&models.NotificationTemplate{},
		&models.NotificationPreference{},
		&models.NotificationLog{},
		&models.RetryQueueEntry{},
		&models.LoyaltyTransaction{},
		&models.GalleryPhoto{},
	)
}

func main() {
	providers := map[string]services.Provider{}

	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		providers[models.ChannelSMS] = services.NewTwilioSMSProvider()
	} else {
		log.Println("Twilio credentials not set, SMS delivery disabled")
	}

	emailProvider, err := services.NewSESEmailProvider(context.Background())
	if err != nil {
		log.Printf("SES not configured, email delivery disabled: %v", err)
	} else {
		providers[models.ChannelEmail] = emailProvider
	}

	retryStore := services.NewGormRetryStore(config.DB, services.DefaultBackoff)

	notifier := services.NewNotificationService(
		services.NewGormSettingsStore(config.DB),
		services.NewGormPreferenceStore(config.DB),
		services.NewGormTemplateStore(config.DB),
		services.NewGormLogStore(config.DB),
		retryStore,
		providers,
	)

	worker := services.NewRetryWorker(retryStore, notifier, services.DefaultBackoff)
	cronScheduler := worker.StartScheduler()
	defer cronScheduler.Stop()

	earnings := services.NewEarningsService(services.NewGormEarningsRepository(config.DB))
	loyalty := services.NewLoyaltyService(config.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(notifier, earnings, loyalty)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
