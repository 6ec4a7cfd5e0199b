package repositories

import (
	"context"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// ItemFilters narrows owner-scoped item listings. Nil fields are ignored.
type ItemFilters struct {
	Type          *entities.GarmentType
	Season        *entities.Season
	LaundryStatus *entities.LaundryStatus
	Favorite      *bool
}

// ItemRepository persists wardrobe items. All reads and writes are scoped
// to an owner by the service layer; the repository itself only filters by
// the ids it is given.
type ItemRepository interface {
	// Create persists a new item.
	Create(ctx context.Context, item *entities.Item) error

	// GetByID fetches an item regardless of owner. Returns
	// entities.ErrItemNotFound when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error)

	// ListByUser returns the owner's items matching the filters.
	ListByUser(ctx context.Context, userID uuid.UUID, filters *ItemFilters, limit, offset int) ([]*entities.Item, int64, error)

	// Update persists every field of an existing item.
	Update(ctx context.Context, item *entities.Item) error

	// Delete removes an item by id. Returns entities.ErrItemNotFound when
	// nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
