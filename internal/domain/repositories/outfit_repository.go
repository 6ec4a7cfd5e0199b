package repositories

import (
	"context"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// OutfitRepository persists named outfits and their item references.
type OutfitRepository interface {
	// Create persists a new outfit with its item links.
	Create(ctx context.Context, outfit *entities.Outfit) error

	// GetByID fetches an outfit with its items preloaded. Returns
	// entities.ErrOutfitNotFound when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Outfit, error)

	// ListByUser returns the owner's outfits with items preloaded.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Outfit, int64, error)

	// Update replaces the outfit's fields and item links.
	Update(ctx context.Context, outfit *entities.Outfit) error

	// Delete removes an outfit and its item links. Returns
	// entities.ErrOutfitNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
