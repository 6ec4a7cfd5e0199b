package repositories

import (
	"fmt"

	"github.com/google/uuid"
)

// Cache key formats.
const (
	cacheKeyUserByID    = "user:id:%s"
	cacheKeyUserByEmail = "user:email:%s"
	cacheKeyItemByID    = "item:id:%s"
)

// GetUserCacheKey returns the cache key for a user id.
func GetUserCacheKey(id uuid.UUID) string {
	return fmt.Sprintf(cacheKeyUserByID, id)
}

// GetUserByEmailCacheKey returns the cache key for a normalized email.
func GetUserByEmailCacheKey(email string) string {
	return fmt.Sprintf(cacheKeyUserByEmail, email)
}

// GetItemCacheKey returns the cache key for an item id.
func GetItemCacheKey(id uuid.UUID) string {
	return fmt.Sprintf(cacheKeyItemByID, id)
}
