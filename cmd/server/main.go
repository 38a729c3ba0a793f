package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/adapters/http/routes"
	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/config"
	"aerodesk/internal/core/services"
	"aerodesk/internal/metrics"

	"github.com/gofiber/fiber/v2"

	_ "aerodesk/docs" // Swagger docs
)

// @title Aerodesk API
// @version 1.0
// @description Airline booking back-office API: flight catalogue, seat selection and ticketing.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@aerodesk.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.aerodesk.io
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin user and demo fleet
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Prometheus metrics registry
	reg := metrics.NewMetricsRegistry()

	// Background sweep: flight lifecycle transitions and token cleanup
	sweepService := services.NewSweepService(
		repositories.NewFlightRepository(db),
		repositories.NewRefreshTokenRepository(db),
		reg,
	)
	sweepService.Start()
	defer sweepService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Aerodesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)
	app.Use(middleware.MetricsMiddleware(reg))

	// Setup routes (pass db, cfg and metrics for dependency injection)
	routes.Setup(app, db, cfg, reg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
