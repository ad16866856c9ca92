package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// StatusResponse represents the status endpoint response
type StatusResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Version       string `json:"version"`
}

// StatusHandler handles the status endpoint
func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Version:       "1.0.0",
	})
}
