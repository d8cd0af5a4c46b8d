package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/promarket/marketplace-api/internal/api/handler"
	"github.com/promarket/marketplace-api/internal/api/middleware"
	"github.com/promarket/marketplace-api/internal/core/service"
	"github.com/promarket/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/promarket/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/promarket/marketplace-api/internal/infrastructure/db/redis"
	"github.com/promarket/marketplace-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns it
// together with the payment event dispatcher, which the caller must Start.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	invoiceRepo := mongodb.NewInvoiceRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	projectService := service.NewProjectService(projectRepo, userRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, userRepo, cfg.CommissionRate, log)
	statsService := service.NewStatsService(
		invoiceRepo, projectRepo, userRepo,
		redisdb.NewStatsCache(rdb, cfg.StatsCacheTTL),
		cfg.CommissionRate, cfg.ProfitMarginRate,
		log,
	)
	paymentService := service.NewPaymentService(invoiceRepo, paymentRepo, redisdb.NewPaymentDedup(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.PaymentWorkers, paymentService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	meHandler := handler.NewMeHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	statsHandler := handler.NewStatsHandler(statsService)
	paymentHandler := handler.NewPaymentHandler(dispatcher)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.GET("/v1/marketplace/pros", userHandler.Marketplace)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Session identity ---
	e.GET("/v1/me", meHandler.Me, auth)

	// --- Pro dashboard ---
	pro := e.Group("/v1/pro", auth, middleware.RBAC("pro"))
	pro.GET("/dashboard-stats", statsHandler.ProDashboard)
	pro.GET("/reporting-stats", statsHandler.ProReporting)

	// --- Admin ---
	admin := e.Group("/v1/admin", auth, middleware.RBAC("admin"))
	admin.GET("/stats", statsHandler.AdminOverview)
	// Platform-wide transactions view. Invoice listing is unscoped for admins.
	admin.GET("/transactions", invoiceHandler.List)
	admin.GET("/users", userHandler.List)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	// --- Projects (per-role scoping happens in the service layer) ---
	projects := e.Group("/v1/projects", auth, middleware.RBAC("pro", "client", "admin"))
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Patch)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Invoices ---
	invoices := e.Group("/v1/invoices", auth, middleware.RBAC("pro", "client", "admin"))
	invoices.POST("", invoiceHandler.Create)
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/:number", invoiceHandler.Get)
	invoices.PATCH("/:number/status", invoiceHandler.SetStatus)

	// --- Payment event ingestion (gateway integrations, admin credential) ---
	payments := e.Group("/v1/payments", auth, middleware.RBAC("admin"))
	payments.POST("/events", paymentHandler.Receive)
	payments.POST("/events/batch", paymentHandler.ReceiveBatch)

	return e, dispatcher
}
