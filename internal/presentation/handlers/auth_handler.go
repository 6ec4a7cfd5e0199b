package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/presentation/middleware"
)

// AuthHandler serves registration, login and the caller's profile.
type AuthHandler struct {
	authService services.AuthService
	logger      logger.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(authService services.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: log}
}

// Register answers POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(resp, "Account created"))
}

// Login answers POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(resp, "Logged in"))
}

// Profile answers GET /api/v1/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return
	}

	info, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(info, "Profile retrieved"))
}
