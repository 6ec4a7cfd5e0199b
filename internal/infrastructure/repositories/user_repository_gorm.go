package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/redis"
)

// userRepositoryGorm is the GORM user repository with an optional
// read-through cache.
type userRepositoryGorm struct {
	db    *gorm.DB
	cache *redis.CacheService
}

// NewUserRepositoryGorm creates the GORM user repository.
func NewUserRepositoryGorm(db *gorm.DB, cache *redis.CacheService) repositories.UserRepository {
	return &userRepositoryGorm{
		db:    db,
		cache: cache,
	}
}

// Create persists a new user.
func (r *userRepositoryGorm) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID fetches a user by id, consulting the cache first.
func (r *userRepositoryGorm) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if r.cache != nil {
		var cached entities.User
		if err := r.cache.Get(ctx, GetUserCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, GetUserCacheKey(id), &user, 0)
	}

	return &user, nil
}

// GetByEmail fetches a user by normalized email, consulting the cache
// first.
func (r *userRepositoryGorm) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = entities.NormalizeEmail(email)

	if r.cache != nil {
		var cached entities.User
		if err := r.cache.Get(ctx, GetUserByEmailCacheKey(email), &cached); err == nil {
			return &cached, nil
		}
	}

	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, GetUserByEmailCacheKey(email), &user, 0)
		r.cache.Set(ctx, GetUserCacheKey(user.ID), &user, 0)
	}

	return &user, nil
}

// Update persists an existing user and invalidates cache entries.
func (r *userRepositoryGorm) Update(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if r.cache != nil {
		r.cache.Delete(ctx, GetUserCacheKey(user.ID), GetUserByEmailCacheKey(user.Email))
	}

	return nil
}

// isUniqueViolation matches the PostgreSQL duplicate-key error without
// binding the repository to a specific driver error type.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}
