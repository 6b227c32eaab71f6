package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"backoffice-service/internal/handler"
	mid "backoffice-service/internal/middleware"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/jwtutil"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("backoffice-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting backoffice-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Configure the handler layer (error message visibility)
	handler.Init(appConfig)

	// Build resource services and handlers
	db := database.GetDB()
	pg := appConfig.Pagination

	companies := handler.NewCompanyHandler(service.NewCompanyService(db, pg))
	schoolYears := handler.NewSchoolYearHandler(service.NewSchoolYearService(db, pg))
	levels := handler.NewLevelHandler(service.NewLevelService(db, pg))
	levelPricings := handler.NewLevelPricingHandler(service.NewLevelPricingService(db, pg))
	sessionTypes := handler.NewPlanningSessionTypeHandler(service.NewPlanningSessionTypeService(db, pg))

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Resource routes - auth middleware validates JWT and extracts tenant ID
	register := func(g *echo.Group, h interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	}) {
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	register(e.Group("/api/companies", mid.AuthMiddleware), companies)
	register(e.Group("/api/school-years", mid.AuthMiddleware), schoolYears)
	register(e.Group("/api/levels", mid.AuthMiddleware), levels)
	register(e.Group("/api/level-pricings", mid.AuthMiddleware), levelPricings)
	register(e.Group("/api/planning-session-types", mid.AuthMiddleware), sessionTypes)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != http.ErrServerClosed {
		log.Fatal("Server error", zap.Error(err))
	}
}
