package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/redis"
)

// itemRepositoryGorm is the GORM item repository with an optional
// read-through cache on GetByID.
type itemRepositoryGorm struct {
	db    *gorm.DB
	cache *redis.CacheService
}

// NewItemRepositoryGorm creates the GORM item repository.
func NewItemRepositoryGorm(db *gorm.DB, cache *redis.CacheService) repositories.ItemRepository {
	return &itemRepositoryGorm{
		db:    db,
		cache: cache,
	}
}

// Create persists a new item.
func (r *itemRepositoryGorm) Create(ctx context.Context, item *entities.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetByID fetches an item by id, consulting the cache first.
func (r *itemRepositoryGorm) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	if r.cache != nil {
		var cached entities.Item
		if err := r.cache.Get(ctx, GetItemCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var item entities.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, GetItemCacheKey(id), &item, 0)
	}

	return &item, nil
}

// ListByUser returns the owner's items matching the filters, newest first.
func (r *itemRepositoryGorm) ListByUser(ctx context.Context, userID uuid.UUID, filters *repositories.ItemFilters, limit, offset int) ([]*entities.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Item{}).Where("user_id = ?", userID)

	if filters != nil {
		if filters.Type != nil {
			query = query.Where("type = ?", *filters.Type)
		}
		if filters.Season != nil {
			query = query.Where("season = ?", *filters.Season)
		}
		if filters.LaundryStatus != nil {
			query = query.Where("laundry_status = ?", *filters.LaundryStatus)
		}
		if filters.Favorite != nil {
			query = query.Where("is_favorite = ?", *filters.Favorite)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	var items []*entities.Item
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	return items, total, nil
}

// Update persists every field of an existing item and invalidates the
// cache entry.
func (r *itemRepositoryGorm) Update(ctx context.Context, item *entities.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	if r.cache != nil {
		r.cache.Delete(ctx, GetItemCacheKey(item.ID))
	}

	return nil
}

// Delete removes an item by id and invalidates the cache entry.
func (r *itemRepositoryGorm) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrItemNotFound
	}

	if r.cache != nil {
		r.cache.Delete(ctx, GetItemCacheKey(id))
	}

	return nil
}
