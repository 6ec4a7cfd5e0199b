package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/infrastructure/database"
	"wardrobe-api/internal/infrastructure/logger"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(db *gorm.DB, log logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: log}
}

// Health answers GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := map[string]interface{}{
		"status":   "ok",
		"database": "ok",
	}

	if err := database.HealthCheck(h.db); err != nil {
		h.logger.WithField("error", err.Error()).Error("Database health check failed")
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.SuccessResponse(status, "Service degraded"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(status, "Service healthy"))
}
