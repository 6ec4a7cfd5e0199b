package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/presentation/middleware"
)

// OutfitHandler serves saved outfits and AI suggestions.
type OutfitHandler struct {
	outfitService     services.OutfitService
	suggestionService services.SuggestionService
	logger            logger.Logger
}

// NewOutfitHandler creates the outfit handler.
func NewOutfitHandler(outfitService services.OutfitService, suggestionService services.SuggestionService, log logger.Logger) *OutfitHandler {
	return &OutfitHandler{
		outfitService:     outfitService,
		suggestionService: suggestionService,
		logger:            log,
	}
}

// Create answers POST /api/v1/outfits.
func (h *OutfitHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return
	}

	var req dto.CreateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	outfit, err := h.outfitService.CreateOutfit(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(outfit, "Outfit created"))
}

// List answers GET /api/v1/outfits.
func (h *OutfitHandler) List(c *gin.Context) {
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

	outfits, total, err := h.outfitService.ListOutfits(c.Request.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(
		dto.NewPaginatedData(outfits, total, page.Limit, page.Offset, len(outfits)),
		"Outfits retrieved"))
}

// Get answers GET /api/v1/outfits/:id.
func (h *OutfitHandler) Get(c *gin.Context) {
	userID, outfitID, ok := h.outfitRequest(c)
	if !ok {
		return
	}

	outfit, err := h.outfitService.GetOutfit(c.Request.Context(), userID, outfitID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(outfit, "Outfit retrieved"))
}

// Update answers PATCH /api/v1/outfits/:id.
func (h *OutfitHandler) Update(c *gin.Context) {
	userID, outfitID, ok := h.outfitRequest(c)
	if !ok {
		return
	}

	var req dto.UpdateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	outfit, err := h.outfitService.UpdateOutfit(c.Request.Context(), userID, outfitID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(outfit, "Outfit updated"))
}

// Delete answers DELETE /api/v1/outfits/:id.
func (h *OutfitHandler) Delete(c *gin.Context) {
	userID, outfitID, ok := h.outfitRequest(c)
	if !ok {
		return
	}

	if err := h.outfitService.DeleteOutfit(c.Request.Context(), userID, outfitID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(nil, "Outfit deleted"))
}

// Suggest answers POST /api/v1/outfits/suggest.
func (h *OutfitHandler) Suggest(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return
	}

	// An empty body is fine; filters are optional.
	var req dto.SuggestOutfitsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	resp, err := h.suggestionService.SuggestOutfits(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(resp, "Suggestions generated"))
}

func (h *OutfitHandler) outfitRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return uuid.Nil, uuid.Nil, false
	}

	outfitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid outfit id", nil))
		return uuid.Nil, uuid.Nil, false
	}

	return userID, outfitID, true
}
