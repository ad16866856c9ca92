package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icure/agenda-slots/internal/api"
	"github.com/icure/agenda-slots/internal/config"
	"github.com/icure/agenda-slots/internal/handlers"
	"github.com/icure/agenda-slots/internal/logging"
	"github.com/icure/agenda-slots/internal/services"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	// CLI flags
	configPath := pflag.StringP("config", "c", "", "Path to config file")
	version := pflag.BoolP("version", "v", false, "Print version and exit")
	port := pflag.IntP("port", "p", 8080, "HTTP server listen port")
	logLevel := pflag.StringP("log-level", "l", "info", "Log level (debug, info, warn, error)")

	pflag.Parse()

	if *version {
		fmt.Println("agenda-slots version 1.0.0")
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Override config with CLI flags if set
	if pflag.Lookup("port").Changed {
		cfg.Server.Port = *port
	}
	if pflag.Lookup("log-level").Changed {
		cfg.Logging.Level = *logLevel
	}

	// Initialize logger
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Configuration loaded", zap.Any("config", cfg))

	// Initialize services
	availabilityService, err := services.NewAvailabilityService(logger, cfg.Availability.CacheSize, cfg.Availability.MaxSlots)
	if err != nil {
		logger.Fatal("Failed to initialize availability service", zap.Error(err))
	}

	// Initialize handlers
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())

	// Setup routes with middleware
	api.SetupRoutes(router, logger, availabilityHandler)

	// Start HTTP server
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.Timeout,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatal("Server forced to shutdown", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.Int("port", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
