package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicepad/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	sessions service.SessionService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(sessions service.SessionService) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.sessions.Count(),
	})
}
