package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
)

// respondError translates a service error into the response envelope.
// Unrecognized errors are treated as infrastructure failures and come
// back as 503, not 500, since the database is the usual culprit and the
// condition is transient.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"VALIDATION_ERROR", err.Error(), nil))
	case errors.Is(err, entities.ErrNotEnoughItems):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"NOT_ENOUGH_ITEMS", err.Error(), nil))
	case errors.Is(err, entities.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Invalid email or password", nil))
	case errors.Is(err, entities.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse(
			"FORBIDDEN", "You do not own this resource", nil))
	case errors.Is(err, entities.ErrItemNotFound),
		errors.Is(err, entities.ErrOutfitNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse(
			"NOT_FOUND", err.Error(), nil))
	case errors.Is(err, entities.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse(
			"EMAIL_TAKEN", err.Error(), nil))
	default:
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse(
			"SERVICE_UNAVAILABLE", "Service temporarily unavailable", nil))
	}
}

// respondBindError reports a malformed request body or query string.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse(
		"INVALID_REQUEST",
		"Invalid request",
		map[string]interface{}{"details": err.Error()},
	))
}
