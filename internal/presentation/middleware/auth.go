package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/logger"
)

// Gin context keys set by the auth middleware.
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// AuthMiddleware authenticates requests with bearer tokens.
type AuthMiddleware struct {
	jwtService services.JWTService
	userRepo   repositories.UserRepository
	logger     logger.Logger
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(jwtService services.JWTService, userRepo repositories.UserRepository, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     log,
	}
}

// RequireAuth rejects requests without a valid token and stores the
// caller's id and role in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse(
				"UNAUTHORIZED",
				"Missing bearer token",
				nil,
			))
			return
		}

		claims, err := m.jwtService.ParseToken(c.Request.Context(), token)
		if err != nil {
			m.logger.WithField("error", err.Error()).Debug("Token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse(
				"UNAUTHORIZED",
				"Invalid or expired token",
				nil,
			))
			return
		}

		// The account is re-checked so suspended users lose access
		// before their token expires.
		user, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse(
				"UNAUTHORIZED",
				"Account unavailable",
				nil,
			))
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserRoleKey, string(user.Role))
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin role. Must
// run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != string(entities.UserRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse(
				"FORBIDDEN",
				"Admin role required",
				nil,
			))
			return
		}
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
