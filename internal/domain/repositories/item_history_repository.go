package repositories

import (
	"context"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// ItemHistoryRepository persists the append-only item event log. There is
// no update or delete; history is immutable once written.
type ItemHistoryRepository interface {
	// Append writes one history entry.
	Append(ctx context.Context, entry *entities.ItemHistory) error

	// ListByItem returns an item's history, newest first.
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*entities.ItemHistory, int64, error)
}
