package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
)

// itemHistoryRepositoryGorm is the GORM item history repository. Append
// only; nothing here updates or deletes.
type itemHistoryRepositoryGorm struct {
	db *gorm.DB
}

// NewItemHistoryRepositoryGorm creates the GORM item history repository.
func NewItemHistoryRepositoryGorm(db *gorm.DB) repositories.ItemHistoryRepository {
	return &itemHistoryRepositoryGorm{db: db}
}

// Append writes one history entry.
func (r *itemHistoryRepositoryGorm) Append(ctx context.Context, entry *entities.ItemHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append item history: %w", err)
	}
	return nil
}

// ListByItem returns an item's history, newest first.
func (r *itemHistoryRepositoryGorm) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*entities.ItemHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.ItemHistory{}).Where("item_id = ?", itemID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count item history: %w", err)
	}

	var entries []*entities.ItemHistory
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list item history: %w", err)
	}

	return entries, total, nil
}
