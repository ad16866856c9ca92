package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icure/agenda-slots/internal/middleware"
	"github.com/icure/agenda-slots/internal/models"
	"github.com/icure/agenda-slots/internal/services"
	"github.com/icure/agenda-slots/internal/slots"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	availability *services.AvailabilityService
}

func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// AvailabilityRequest carries the time table configuration and query window.
// The schedule store lives in the surrounding backend; this service only
// computes, so items arrive in the request body.
type AvailabilityRequest struct {
	Items           []*models.TimeTableItem `json:"items" binding:"required"`
	StartDateTime   int64                   `json:"startDateTime" binding:"required"`
	EndDateTime     int64                   `json:"endDateTime" binding:"required"`
	DurationMinutes int                     `json:"durationMinutes" binding:"required"`
	IntervalMinutes int                     `json:"intervalMinutes,omitempty"`
}

type AvailabilityResponse struct {
	Slots []int64 `json:"slots"`
}

// GenerateSlots handles POST /availability
func (h *AvailabilityHandler) GenerateSlots(c *gin.Context) {
	logger := c.MustGet(middleware.LoggerKey).(*zap.Logger)

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid availability request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	var policy slots.Policy
	if req.IntervalMinutes > 0 {
		policy = slots.FixedIntervals{
			Interval: time.Duration(req.IntervalMinutes) * time.Minute,
			Duration: duration,
		}
	}

	generated, err := h.availability.GenerateSlots(c.Request.Context(), req.Items, req.StartDateTime, req.EndDateTime, duration, policy)
	if err != nil {
		if isConfigurationError(err) {
			logger.Warn("Rejected availability request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slots"})
		return
	}

	logger.Info("Slots generated", zap.Int("count", len(generated)))
	c.JSON(http.StatusOK, AvailabilityResponse{Slots: generated})
}

func isConfigurationError(err error) bool {
	return errors.Is(err, models.ErrNoHours) ||
		errors.Is(err, models.ErrInvalidHourWindow) ||
		errors.Is(err, models.ErrOverlappingHours) ||
		errors.Is(err, models.ErrInvalidRRule) ||
		errors.Is(err, models.ErrInvalidDuration) ||
		errors.Is(err, models.ErrInvalidWindow)
}
