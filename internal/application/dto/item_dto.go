package dto

import (
	"time"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// UploadItemRequest holds the multipart form fields that accompany the
// image file. Every field is optional; whatever is present overrides the
// corresponding classifier result.
type UploadItemRequest struct {
	Name      string   `form:"name" binding:"omitempty,max=255"`
	Type      string   `form:"type" binding:"omitempty"`
	Occasion  string   `form:"occasion" binding:"omitempty"`
	Occasions []string `form:"occasions" binding:"omitempty"`
	Season    string   `form:"season" binding:"omitempty"`
	Colors    []string `form:"colors" binding:"omitempty"`
}

// UpdateItemRequest edits item metadata. Nil pointers leave the field
// untouched.
type UpdateItemRequest struct {
	Name      *string   `json:"name" binding:"omitempty,max=255"`
	Type      *string   `json:"type" binding:"omitempty"`
	Occasion  *string   `json:"occasion" binding:"omitempty"`
	Occasions *[]string `json:"occasions" binding:"omitempty"`
	Season    *string   `json:"season" binding:"omitempty"`
	Colors    *[]string `json:"colors" binding:"omitempty"`
}

// ListItemsRequest holds the query-string filters for the wardrobe list.
type ListItemsRequest struct {
	Type          string `form:"type" binding:"omitempty"`
	Season        string `form:"season" binding:"omitempty"`
	LaundryStatus string `form:"laundry_status" binding:"omitempty"`
	Favorite      *bool  `form:"favorite" binding:"omitempty"`
	Limit         int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset        int    `form:"offset,default=0" binding:"omitempty,min=0"`
}

// Laundry actions accepted by the item service.
const (
	LaundryActionMarkWorn    = "mark_worn"
	LaundryActionMarkLaundry = "mark_laundry"
	LaundryActionMarkClean   = "mark_clean"
	LaundryActionMarkAway    = "mark_away"
)

// ItemResponse is the public view of a wardrobe item.
type ItemResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Colors        []string  `json:"colors"`
	Type          string    `json:"type"`
	Occasion      string    `json:"occasion,omitempty"`
	Occasions     []string  `json:"occasions"`
	Season        string    `json:"season"`
	Filename      string    `json:"filename"`
	ImageURL      string    `json:"image_url"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	ProcessedURL  string    `json:"processed_url,omitempty"`
	LaundryStatus string    `json:"laundry_status"`
	UsageCount    int       `json:"usage_count"`
	IsFavorite    bool      `json:"is_favorite"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewItemResponse converts an item entity to its public view.
func NewItemResponse(item *entities.Item) *ItemResponse {
	resp := &ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Colors:        item.Colors,
		Type:          string(item.Type),
		Occasion:      string(item.Occasion),
		Occasions:     item.Occasions,
		Season:        string(item.Season),
		Filename:      item.Filename,
		ImageURL:      item.ImageURL,
		ThumbnailURL:  item.ThumbnailURL,
		LaundryStatus: string(item.LaundryStatus),
		UsageCount:    item.UsageCount,
		IsFavorite:    item.IsFavorite,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.ProcessedURL != nil {
		resp.ProcessedURL = *item.ProcessedURL
	}
	if resp.Colors == nil {
		resp.Colors = []string{}
	}
	if resp.Occasions == nil {
		resp.Occasions = []string{}
	}
	return resp
}

// NewItemResponses converts a page of items.
func NewItemResponses(items []*entities.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}

// ItemHistoryResponse is one history entry of an item.
type ItemHistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItemHistoryResponses converts history entities.
func NewItemHistoryResponses(entries []*entities.ItemHistory) []*ItemHistoryResponse {
	out := make([]*ItemHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &ItemHistoryResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
