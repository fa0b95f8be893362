package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freightline/internal/config"
	"freightline/internal/delivery/http/handler"
	"freightline/internal/infrastructure/database/postgres"
	"freightline/internal/logger"
	"freightline/internal/middleware"
	"freightline/internal/notice"
	"freightline/internal/realtime"
	"freightline/internal/storage"
	"freightline/internal/usecase/admin"
	"freightline/internal/usecase/tracking"
)

// Deps carries the infrastructure the routes are wired onto. Everything but
// the database is optional; absent pieces degrade to store-only behavior.
type Deps struct {
	DB *postgres.DB

	AdminService    *admin.Service
	TrackingService *tracking.Service

	Hub    *realtime.Hub
	Notice *notice.Holder

	Screenshots *storage.ScreenshotStore
}

func SetupRoutes(cfg *config.Config, deps *Deps) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.Screenshots != nil {
		router.Static("/route-screenshots", deps.Screenshots.Dir())
	}

	shipmentHandler := handler.NewShipmentHandler(deps.AdminService)
	trackingHandler := handler.NewTrackingHandler(deps.TrackingService, deps.AdminService)
	sessionHandler := handler.NewSessionHandler(deps.AdminService)
	noticeHandler := handler.NewNoticeHandler(deps.Notice)
	realtimeHandler := handler.NewRealtimeHandler(deps.Hub, cfg)
	screenshotHandler := handler.NewScreenshotHandler(deps.AdminService, deps.Screenshots)

	v1 := router.Group("/api/v1")
	{
		trackingHandler.RegisterRoutes(v1)
		sessionHandler.RegisterRoutes(v1)
		noticeHandler.RegisterRoutes(v1)
		realtimeHandler.RegisterRoutes(v1)

		protected := v1.Group("/admin")
		protected.Use(middleware.SessionMiddleware(cfg))
		{
			shipmentHandler.RegisterAdminRoutes(protected)
			noticeHandler.RegisterAdminRoutes(protected)
			if deps.Screenshots != nil {
				screenshotHandler.RegisterAdminRoutes(protected)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
