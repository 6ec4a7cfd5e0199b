package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/presentation/middleware"
)

// ItemHandler serves the wardrobe item endpoints.
type ItemHandler struct {
	itemService services.ItemService
	imageCfg    config.ImageConfig
	logger      logger.Logger
}

// NewItemHandler creates the item handler.
func NewItemHandler(itemService services.ItemService, imageCfg config.ImageConfig, log logger.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		imageCfg:    imageCfg,
		logger:      log,
	}
}

// Upload answers POST /api/v1/items. The image arrives as the "image"
// multipart field; all other form fields are optional overrides.
func (h *ItemHandler) Upload(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return
	}

	var req dto.UploadItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"INVALID_REQUEST", "Missing image file", nil))
		return
	}
	if h.imageCfg.MaxUploadBytes > 0 && fileHeader.Size > h.imageCfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse(
			"FILE_TOO_LARGE", "Image exceeds the upload size limit",
			map[string]interface{}{"max_bytes": h.imageCfg.MaxUploadBytes}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"INVALID_REQUEST", "Unreadable image file", nil))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"INVALID_REQUEST", "Unreadable image file", nil))
		return
	}

	item, err := h.itemService.UploadItem(
		c.Request.Context(), userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"),
		data, &req, c.ClientIP(),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(item, "Item uploaded"))
}

// List answers GET /api/v1/items.
func (h *ItemHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return
	}

	var req dto.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items, total, err := h.itemService.ListItems(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(
		dto.NewPaginatedData(items, total, req.Limit, req.Offset, len(items)),
		"Items retrieved"))
}

// Get answers GET /api/v1/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	userID, itemID, ok := h.itemRequest(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(item, "Item retrieved"))
}

// Update answers PUT /api/v1/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	userID, itemID, ok := h.itemRequest(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), userID, itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(item, "Item updated"))
}

// Delete answers DELETE /api/v1/items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, itemID, ok := h.itemRequest(c)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), userID, itemID, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(nil, "Item deleted"))
}

// MarkWorn answers POST /api/v1/items/:id/worn.
func (h *ItemHandler) MarkWorn(c *gin.Context) {
	h.laundryAction(c, dto.LaundryActionMarkWorn, "Item marked as worn")
}

// MarkLaundry answers POST /api/v1/items/:id/laundry.
func (h *ItemHandler) MarkLaundry(c *gin.Context) {
	h.laundryAction(c, dto.LaundryActionMarkLaundry, "Item sent to laundry")
}

// MarkClean answers POST /api/v1/items/:id/clean.
func (h *ItemHandler) MarkClean(c *gin.Context) {
	h.laundryAction(c, dto.LaundryActionMarkClean, "Item marked clean")
}

// MarkAway answers POST /api/v1/items/:id/away.
func (h *ItemHandler) MarkAway(c *gin.Context) {
	h.laundryAction(c, dto.LaundryActionMarkAway, "Item stored away")
}

func (h *ItemHandler) laundryAction(c *gin.Context, action, message string) {
	userID, itemID, ok := h.itemRequest(c)
	if !ok {
		return
	}

	item, err := h.itemService.ApplyLaundryAction(c.Request.Context(), userID, itemID, action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(item, message))
}

// Favorite answers POST /api/v1/items/:id/favorite.
func (h *ItemHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true, "Item favorited")
}

// Unfavorite answers POST /api/v1/items/:id/unfavorite.
func (h *ItemHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false, "Item unfavorited")
}

func (h *ItemHandler) setFavorite(c *gin.Context, favorite bool, message string) {
	userID, itemID, ok := h.itemRequest(c)
	if !ok {
		return
	}

	item, err := h.itemService.SetFavorite(c.Request.Context(), userID, itemID, favorite)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(item, message))
}

// History answers GET /api/v1/items/:id/history.
func (h *ItemHandler) History(c *gin.Context) {
	userID, itemID, ok := h.itemRequest(c)
	if !ok {
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

	entries, total, err := h.itemService.GetItemHistory(c.Request.Context(), userID, itemID, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(
		dto.NewPaginatedData(entries, total, page.Limit, page.Offset, len(entries)),
		"History retrieved"))
}

// itemRequest pulls the caller id and the item id path parameter.
func (h *ItemHandler) itemRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse("UNAUTHORIZED", "Not authenticated", nil))
		return uuid.Nil, uuid.Nil, false
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid item id", nil))
		return uuid.Nil, uuid.Nil, false
	}

	return userID, itemID, true
}
