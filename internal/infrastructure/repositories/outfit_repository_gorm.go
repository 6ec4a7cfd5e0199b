package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
)

// outfitRepositoryGorm is the GORM outfit repository.
type outfitRepositoryGorm struct {
	db *gorm.DB
}

// NewOutfitRepositoryGorm creates the GORM outfit repository.
func NewOutfitRepositoryGorm(db *gorm.DB) repositories.OutfitRepository {
	return &outfitRepositoryGorm{db: db}
}

// Create persists a new outfit with its item links.
func (r *outfitRepositoryGorm) Create(ctx context.Context, outfit *entities.Outfit) error {
	if err := r.db.WithContext(ctx).Create(outfit).Error; err != nil {
		return fmt.Errorf("failed to create outfit: %w", err)
	}
	return nil
}

// GetByID fetches an outfit with its items preloaded.
func (r *outfitRepositoryGorm) GetByID(ctx context.Context, id uuid.UUID) (*entities.Outfit, error) {
	var outfit entities.Outfit
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("outfit_items.position ASC")
		}).
		Where("id = ?", id).
		First(&outfit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrOutfitNotFound
		}
		return nil, fmt.Errorf("failed to get outfit by id: %w", err)
	}

	return &outfit, nil
}

// ListByUser returns the owner's outfits with items preloaded.
func (r *outfitRepositoryGorm) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Outfit, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Outfit{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count outfits: %w", err)
	}

	var outfits []*entities.Outfit
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("outfit_items.position ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&outfits).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list outfits: %w", err)
	}

	return outfits, total, nil
}

// Update replaces the outfit's fields and item links. Links are replaced
// wholesale inside one transaction.
func (r *outfitRepositoryGorm) Update(ctx context.Context, outfit *entities.Outfit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("outfit_id = ?", outfit.ID).Delete(&entities.OutfitItem{}).Error; err != nil {
			return err
		}
		return tx.Save(outfit).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update outfit: %w", err)
	}
	return nil
}

// Delete removes an outfit and its item links.
func (r *outfitRepositoryGorm) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("outfit_id = ?", id).Delete(&entities.OutfitItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Outfit{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete outfit: %w", err)
	}
	if deleted == 0 {
		return entities.ErrOutfitNotFound
	}
	return nil
}
