package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindhaven/clinic-api/internal/api/handler"
	"github.com/mindhaven/clinic-api/internal/api/middleware"
	"github.com/mindhaven/clinic-api/internal/core/domain"
	"github.com/mindhaven/clinic-api/internal/core/service"
	"github.com/mindhaven/clinic-api/internal/pkg/config"
	mongodb "github.com/mindhaven/clinic-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mindhaven/clinic-api/internal/infrastructure/db/redis"
	"github.com/mindhaven/clinic-api/internal/infrastructure/http/handlers"
	"github.com/mindhaven/clinic-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	specialistRepo := mongodb.NewSpecialistRepository(db)
	idemChecker := redisdb.NewIdempotencyChecker(rdb)

	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	bookingService := service.NewBookingService(bookingRepo, noteRepo, idemChecker, log)
	specialistService := service.NewSpecialistService(specialistRepo, log)
	statsService := service.NewStatsService(bookingRepo, specialistRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, cfg.Production())
	bookingHandler := handler.NewBookingHandler(bookingService)
	specialistHandler := handler.NewSpecialistHandler(specialistService)
	statsHandler := handler.NewStatsHandler(statsService)

	authRequired := middleware.Auth(authService)

	// --- Public routes ---
	v1 := e.Group("/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/specialists", specialistHandler.List)

	// --- Specialist routes ---
	sp := v1.Group("/specialist", authRequired, middleware.RBAC(domain.RoleSpecialist))
	sp.GET("/bookings", bookingHandler.ListMine)
	sp.PATCH("/bookings/:id/status", bookingHandler.Transition)
	sp.POST("/bookings/:id/notes", bookingHandler.AttachNote)
	sp.GET("/bookings/:id/notes", bookingHandler.ListNotes)
	sp.GET("/dashboard", statsHandler.Dashboard)
	sp.GET("/earnings", statsHandler.Earnings)
	sp.GET("/patients", statsHandler.Patients)
	sp.GET("/profile", specialistHandler.GetProfile)
	sp.PUT("/profile", specialistHandler.UpdateProfile)
	sp.POST("/change-password", authHandler.ChangePassword)

	// --- Admin routes ---
	admin := v1.Group("/admin", authRequired, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/bookings", bookingHandler.ListAll)
	admin.PATCH("/bookings/:id/status", bookingHandler.Transition)
	admin.POST("/specialists", specialistHandler.Create)
	admin.PUT("/specialists/:id", specialistHandler.Update)
	admin.DELETE("/specialists/:id", specialistHandler.Delete)
	admin.POST("/change-password", authHandler.ChangePassword)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
