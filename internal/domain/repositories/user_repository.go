package repositories

import (
	"context"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create persists a new user. Returns entities.ErrEmailTaken on a
	// duplicate email.
	Create(ctx context.Context, user *entities.User) error

	// GetByID fetches a user by id. Returns entities.ErrUserNotFound when
	// missing.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// GetByEmail fetches a user by normalized email. Returns
	// entities.ErrUserNotFound when missing.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update persists an existing user.
	Update(ctx context.Context, user *entities.User) error
}
