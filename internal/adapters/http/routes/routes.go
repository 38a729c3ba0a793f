package routes

import (
	"aerodesk/internal/adapters/http/handlers"
	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/config"
	"aerodesk/internal/core/services"
	"aerodesk/internal/metrics"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, reg *metrics.MetricsRegistry) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	aircraftRepo := repositories.NewAircraftRepository(db)
	flightRepo := repositories.NewFlightRepository(db)
	seatRepo := repositories.NewSeatRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	aircraftService := services.NewAircraftService(aircraftRepo)
	flightService := services.NewFlightService(flightRepo, aircraftRepo, seatRepo, userRepo)
	seatService := services.NewSeatService(seatRepo, flightRepo)
	reservationService := services.NewReservationService(db, reservationRepo, flightRepo, seatRepo, reg)
	ticketService := services.NewTicketService(ticketRepo, reservationRepo, reg)
	reportService := services.NewReportService(reservationRepo, flightRepo, userRepo, reg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	aircraftHandler := handlers.NewAircraftHandler(aircraftService)
	flightHandler := handlers.NewFlightHandler(flightService, seatService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Admin) + profile routes (any authenticated user)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Aircraft catalogue routes (Admin writes, any authenticated user reads)
	aircraftRoutes := apiV1.Group("/aircraft")
	aircraftRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAircraftRoutes(aircraftRoutes, aircraftHandler)

	// Flight catalogue routes
	flightRoutes := apiV1.Group("/flights")
	flightRoutes.Use(middleware.AuthMiddleware(cfg))
	setupFlightRoutes(flightRoutes, flightHandler)

	// Booking routes
	reservationRoutes := apiV1.Group("/reservations")
	reservationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupReservationRoutes(reservationRoutes, reservationHandler)

	// Ticket routes
	ticketRoutes := apiV1.Group("/tickets")
	ticketRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTicketRoutes(ticketRoutes, ticketHandler)

	// Report routes (Admin only)
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Use(middleware.AdminOnly())
	setupReportRoutes(reportRoutes, reportHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management and profile routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Profile (any authenticated user, about themselves)
	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)
	router.Put("/profile/password", handler.ChangePassword)

	// Administration
	router.Get("/", middleware.AdminOnly(), handler.ListUsers)
	router.Get("/:id", middleware.AdminOnly(), handler.GetUser)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateUser)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteUser)
}

// setupAircraftRoutes configures aircraft catalogue routes
func setupAircraftRoutes(router fiber.Router, handler *handlers.AircraftHandler) {
	router.Get("/", handler.ListAircraft)
	router.Get("/:id", handler.GetAircraft)
	router.Post("/", middleware.AdminOnly(), handler.CreateAircraft)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateAircraft)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteAircraft)
}

// setupFlightRoutes configures flight catalogue and seat map routes
func setupFlightRoutes(router fiber.Router, handler *handlers.FlightHandler) {
	router.Get("/", handler.ListFlights)
	router.Get("/:id", handler.GetFlight)

	// Seat map reflects live holds; clients must not cache it
	router.Get("/:id/asientos", middleware.NoCacheHeaders(), handler.GetSeatMap)
	router.Get("/:id/verificar_asiento", middleware.NoCacheHeaders(), handler.VerifySeat)

	router.Post("/", middleware.AdminOnly(), handler.CreateFlight)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateFlight)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteFlight)
	router.Post("/:id/cambiar_estado", middleware.AdminOnly(), handler.ChangeFlightStatus)
	router.Put("/:id/crew", middleware.AdminOnly(), handler.AssignCrew)
	router.Patch("/:id/asientos/:seatId", middleware.AdminOnly(), handler.UpdateSeat)
}

// setupReservationRoutes configures booking workflow routes
func setupReservationRoutes(router fiber.Router, handler *handlers.ReservationHandler) {
	router.Post("/", middleware.PassengerOnly(), handler.CreateReservation)
	router.Get("/", middleware.NoCacheHeaders(), handler.ListReservations)
	router.Get("/:id", middleware.NoCacheHeaders(), handler.GetReservation)
	router.Post("/:id/seleccionar_asiento", handler.SelectSeat)
	router.Patch("/:id/cambiar_estado", middleware.AdminOnly(), handler.ChangeReservationStatus)
}

// setupTicketRoutes configures ticket routes
func setupTicketRoutes(router fiber.Router, handler *handlers.TicketHandler) {
	router.Post("/generar", handler.IssueTicket)
	router.Get("/:id", handler.GetTicket)
	router.Get("/:id/pdf", handler.DownloadBoardingPass)
	router.Post("/:id/checkin", middleware.AdminOnly(), handler.CheckInTicket)
	router.Post("/:id/anular", middleware.AdminOnly(), handler.VoidTicket)
}

// setupReportRoutes configures the admin report routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/flights/:id/passengers", handler.FlightPassengers)
	router.Get("/passengers/:id/reservations", handler.PassengerReservations)
}
