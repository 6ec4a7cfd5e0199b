package dto

import (
	"time"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// CreateOutfitRequest assembles a saved outfit from wardrobe items. Item
// order in the request becomes the display order.
type CreateOutfitRequest struct {
	Name        string      `json:"name" binding:"required,max=255"`
	Description string      `json:"description" binding:"omitempty,max=2000"`
	IsPublic    bool        `json:"is_public"`
	ItemIDs     []uuid.UUID `json:"item_ids" binding:"required,min=1,max=20"`
}

// UpdateOutfitRequest edits a saved outfit. Nil pointers leave the field
// untouched; a non-nil ItemIDs replaces the whole item list.
type UpdateOutfitRequest struct {
	Name        *string      `json:"name" binding:"omitempty,max=255"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	IsPublic    *bool        `json:"is_public"`
	ItemIDs     *[]uuid.UUID `json:"item_ids" binding:"omitempty,min=1,max=20"`
}

// OutfitResponse is the public view of a saved outfit.
type OutfitResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	IsPublic    bool        `json:"is_public"`
	ItemIDs     []uuid.UUID `json:"item_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewOutfitResponse converts an outfit entity to its public view.
func NewOutfitResponse(outfit *entities.Outfit) *OutfitResponse {
	itemIDs := make([]uuid.UUID, 0, len(outfit.Items))
	for _, link := range outfit.Items {
		itemIDs = append(itemIDs, link.ItemID)
	}
	return &OutfitResponse{
		ID:          outfit.ID,
		Name:        outfit.Name,
		Description: outfit.Description,
		IsPublic:    outfit.IsPublic,
		ItemIDs:     itemIDs,
		CreatedAt:   outfit.CreatedAt,
		UpdatedAt:   outfit.UpdatedAt,
	}
}

// NewOutfitResponses converts a page of outfits.
func NewOutfitResponses(outfits []*entities.Outfit) []*OutfitResponse {
	out := make([]*OutfitResponse, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, NewOutfitResponse(o))
	}
	return out
}

// SuggestOutfitsRequest narrows what the suggestion engine proposes.
type SuggestOutfitsRequest struct {
	Occasion string `json:"occasion" binding:"omitempty"`
	Season   string `json:"season" binding:"omitempty"`
}

// OutfitSuggestion is one proposed combination.
type OutfitSuggestion struct {
	Name        string          `json:"name,omitempty"`
	Items       []*ItemResponse `json:"items"`
	Description string          `json:"description,omitempty"`
	Rationale   string          `json:"rationale,omitempty"`
}

// SuggestOutfitsResponse carries the proposals. Fallback is true when the
// combinations came from the rule-based engine instead of the AI model.
type SuggestOutfitsResponse struct {
	Suggestions []*OutfitSuggestion `json:"suggestions"`
	Fallback    bool                `json:"fallback"`
}
