package handlers

import (
	"net/http"

	"washbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check.
type HealthHandler struct {
	Status func() utils.HealthStatus
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Status()
	code := http.StatusOK
	state := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": status})
}
