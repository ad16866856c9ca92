package api

import (
	"github.com/gin-gonic/gin"
	"github.com/icure/agenda-slots/internal/handlers"
	"github.com/icure/agenda-slots/internal/middleware"
	"go.uber.org/zap"
)

// SetupRoutes configures all API routes with their middleware
func SetupRoutes(router *gin.Engine, logger *zap.Logger, availabilityHandler *handlers.AvailabilityHandler) {
	// Global middleware
	router.Use(middleware.RequestIDMiddleware(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())

	router.GET("/status", handlers.StatusHandler)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	availability := router.Group("/availability")
	{
		availability.POST("", availabilityHandler.GenerateSlots)
	}
}
