package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"freightline/internal/config"
	"freightline/internal/domain/shipment"
	"freightline/internal/events"
	"freightline/internal/infrastructure/cache"
	"freightline/internal/infrastructure/database/postgres"
	"freightline/internal/logger"
	"freightline/internal/notice"
	"freightline/internal/realtime"
	"freightline/internal/routes"
	"freightline/internal/storage"
	"freightline/internal/usecase/admin"
	"freightline/internal/usecase/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.Session.Secret == "" {
		logger.Fatal("Session secret is missing. Please set SESSION_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Change fan-out: the websocket hub always participates; Kafka and MQTT
	// mirrors join when configured.
	hub := realtime.NewHub()
	fanout := events.NewFanout(hub)

	if cfg.Kafka.Broker != "" {
		kafkaPublisher := events.NewKafkaPublisher(&cfg.Kafka)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("Failed to close Kafka writer", zap.Error(err))
			}
		}()
		fanout.Add(kafkaPublisher)
		logger.Info("Kafka mirror enabled", zap.String("topic", cfg.Kafka.Topic))
	}

	if cfg.MQTT.Broker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(&cfg.MQTT)
		if err != nil {
			logger.Warn("MQTT mirror unavailable", zap.Error(err))
		} else {
			defer mqttPublisher.Close()
			fanout.Add(mqttPublisher)
			logger.Info("MQTT mirror enabled", zap.String("broker", cfg.MQTT.Broker))
		}
	}

	repo := postgres.NewShipmentRepository(db)

	var trackingCache *cache.TrackingCache
	if cfg.Redis.Addr != "" {
		trackingCache = cache.NewTrackingCache(cache.NewClient(&cfg.Redis))
		logger.Info("Tracking cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var adminCache admin.CacheInvalidator
	var viewCache tracking.Cache
	if trackingCache != nil {
		adminCache = trackingCache
		viewCache = trackingCache
	}

	adminService := admin.NewService(repo, fanout, adminCache, shipment.SystemClock{}, cfg)
	trackingService := tracking.NewService(repo, viewCache, shipment.SystemClock{})

	screenshots, err := storage.NewScreenshotStore(cfg.Storage.ScreenshotDir, cfg.Server.PublicURL)
	if err != nil {
		logger.Fatal("Failed to prepare screenshot storage", zap.Error(err))
	}

	router := routes.SetupRoutes(cfg, &routes.Deps{
		DB:              db,
		AdminService:    adminService,
		TrackingService: trackingService,
		Hub:             hub,
		Notice:          notice.NewHolder(),
		Screenshots:     screenshots,
	})

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
