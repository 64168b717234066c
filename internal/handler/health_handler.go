package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	generatorConfigured bool
	archiveEnabled      bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(generatorConfigured, archiveEnabled bool) *HealthHandler {
	return &HealthHandler{generatorConfigured: generatorConfigured, archiveEnabled: archiveEnabled}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Normalization has no dependencies, so the
// service is ready as soon as it is up; optional components are reported.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"generator": h.generatorConfigured,
		"archive":   h.archiveEnabled,
	})
}
