package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"property-backend/config"
	"property-backend/controllers"
	"property-backend/routes"
	"property-backend/services"
	"property-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	logger := utils.NewLogger(utils.EnvOrDefault("APP_ENV", "dev"))

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	logger.Info("database connected, migrations applied")

	// Initialize services
	activityService := services.NewActivityService(db, logger)
	pricingService := services.NewPricingService(db)
	bookingService := services.NewBookingService(db, pricingService, activityService)
	billingService := services.NewBillingService(db, activityService)
	unitService := services.NewUnitService(db, activityService)
	guestService := services.NewGuestService(db, activityService)
	housekeepingService := services.NewHousekeepingService(db, activityService)
	maintenanceService := services.NewMaintenanceService(db, activityService)
	reportService := services.NewReportService(db)
	adminService := services.NewAdminService(db)
	chatService := services.NewChatService(db, os.Getenv("CHAT_WEBHOOK_URL"))

	// Initialize controllers
	unitController := controllers.NewUnitController(unitService)
	guestController := controllers.NewGuestController(guestService, adminService)
	bookingController := controllers.NewBookingController(bookingService, billingService)
	billingController := controllers.NewBillingController(billingService)
	pricingController := controllers.NewPricingController(pricingService)
	housekeepingController := controllers.NewHousekeepingController(housekeepingService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)
	portalController := controllers.NewPortalController(guestService, bookingService, billingService, maintenanceService, chatService)
	reportController := controllers.NewReportController(reportService)
	adminController := controllers.NewAdminController(adminService, activityService)

	// Build router
	router := routes.SetupRouter(
		logger,
		unitController,
		guestController,
		bookingController,
		billingController,
		pricingController,
		housekeepingController,
		maintenanceController,
		portalController,
		reportController,
		adminController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server stopped gracefully")
}
