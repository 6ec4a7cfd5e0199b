package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/presentation/middleware"
)

// AuditHandler exposes the audit trail read endpoints.
type AuditHandler struct {
	auditService services.AuditService
	logger       logger.Logger
}

// NewAuditHandler creates the audit handler.
func NewAuditHandler(auditService services.AuditService, log logger.Logger) *AuditHandler {
	return &AuditHandler{auditService: auditService, logger: log}
}

// ListMine answers GET /api/v1/audit/me.
func (h *AuditHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return
	}

	var page struct {
		Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
		Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	entries, total, err := h.auditService.ListByUser(c.Request.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(
		dto.NewPaginatedData(entries, total, page.Limit, page.Offset, len(entries)),
		"Audit entries retrieved"))
}

// ListAll answers GET /api/v1/audit. Admin only; the route is guarded by
// the admin middleware.
func (h *AuditHandler) ListAll(c *gin.Context) {
	var page struct {
		Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
		Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	entries, total, err := h.auditService.ListAll(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(
		dto.NewPaginatedData(entries, total, page.Limit, page.Offset, len(entries)),
		"Audit entries retrieved"))
}
