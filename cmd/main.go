package main

import (
	"tradebook-service/internal/handler"
	mid "tradebook-service/internal/middleware"
	"tradebook-service/internal/tour"
	"tradebook-service/pkg/config"
	"tradebook-service/pkg/database"
	"tradebook-service/pkg/jwtutil"
	"tradebook-service/pkg/logger"
	"tradebook-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting tradebook-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

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

	// Guided tour state machine, injected into its handler
	tourHandler := handler.NewTourHandler(tour.NewManager(nil))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(prometheus.MetricsMiddleware())

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.HealthCheck)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/register", handler.Register)

	// Public intake endpoint used by the booking form
	e.POST("/submissions", handler.CreateSubmission)

	// Admin API - every route requires a valid bearer token
	api := e.Group("/api", mid.AuthMiddleware)
	api.GET("/auth/me", handler.Me)

	// Dashboard overview
	api.GET("/dashboard", handler.DashboardOverview)

	// Trades
	api.GET("/trades", handler.ListTrades)
	api.POST("/trades", handler.CreateTrade)
	api.PUT("/trades/:id", handler.UpdateTrade)
	api.DELETE("/trades/:id", handler.DeleteTrade)
	api.POST("/trades/:id/activate", handler.ActivateTrade)

	// Pooling schedule
	api.GET("/pooling", handler.ListPooling)
	api.POST("/pooling", handler.CreatePooling)
	api.PUT("/pooling/reorder", handler.ReorderPooling)
	api.PUT("/pooling/:id", handler.UpdatePooling)
	api.DELETE("/pooling/:id", handler.DeletePooling)

	// Dropdown options
	api.GET("/dropdowns", handler.ListDropdowns)
	api.POST("/dropdowns", handler.CreateDropdown)
	api.PUT("/dropdowns/reorder", handler.ReorderDropdowns)
	api.PUT("/dropdowns/:id", handler.UpdateDropdown)
	api.DELETE("/dropdowns/:id", handler.DeleteDropdown)

	// Submissions (read/export only)
	api.GET("/submissions", handler.ListSubmissions)
	api.GET("/submissions/export/csv", handler.ExportSubmissionsCSV)
	api.GET("/submissions/export/json", handler.ExportSubmissionsJSON)
	api.GET("/submissions/export/clipboard", handler.ExportSubmissionsClipboard)

	// Settings
	api.GET("/settings/next_opening_date", handler.GetNextOpeningDate)
	api.PUT("/settings/next_opening_date", handler.UpdateNextOpeningDate)

	// Weekly reset
	api.GET("/reset/overview", handler.ResetOverview)
	api.POST("/reset/close", handler.CloseActiveTrade)
	api.POST("/reset/create", handler.CreateNextTrade)
	api.POST("/reset/full", handler.WeeklyReset)

	// Guided tour
	api.GET("/tour/steps", tourHandler.Steps)
	api.GET("/tour/state", tourHandler.State)
	api.POST("/tour/start", tourHandler.Start)
	api.POST("/tour/next", tourHandler.Next)
	api.POST("/tour/prev", tourHandler.Prev)
	api.POST("/tour/stop", tourHandler.Stop)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
