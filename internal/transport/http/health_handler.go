package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

var startTime = time.Now()

// HealthCheck handles GET /healthz
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
