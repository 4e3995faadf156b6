package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vixip/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	generator port.TextGenerator
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(generator port.TextGenerator) *HealthHandler {
	return &HealthHandler{generator: generator}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.generator.Healthy(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "generation backend not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
