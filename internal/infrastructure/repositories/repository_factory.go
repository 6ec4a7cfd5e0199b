package repositories

import (
	"gorm.io/gorm"

	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/redis"
)

// RepositoryFactory builds GORM repositories over one shared connection,
// optionally backed by the Redis cache.
type RepositoryFactory struct {
	gormDB *gorm.DB
	cache  *redis.CacheService
}

// NewRepositoryFactory creates the factory without a cache.
func NewRepositoryFactory(gormDB *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{
		gormDB: gormDB,
		cache:  nil,
	}
}

// NewRepositoryFactoryWithCache creates the factory with a cache.
func NewRepositoryFactoryWithCache(gormDB *gorm.DB, cache *redis.CacheService) *RepositoryFactory {
	return &RepositoryFactory{
		gormDB: gormDB,
		cache:  cache,
	}
}

// ItemRepository returns the item repository.
func (f *RepositoryFactory) ItemRepository() repositories.ItemRepository {
	return NewItemRepositoryGorm(f.gormDB, f.cache)
}

// ItemHistoryRepository returns the item history repository.
func (f *RepositoryFactory) ItemHistoryRepository() repositories.ItemHistoryRepository {
	return NewItemHistoryRepositoryGorm(f.gormDB)
}

// AuditLogRepository returns the audit log repository.
func (f *RepositoryFactory) AuditLogRepository() repositories.AuditLogRepository {
	return NewAuditLogRepositoryGorm(f.gormDB)
}

// OutfitRepository returns the outfit repository.
func (f *RepositoryFactory) OutfitRepository() repositories.OutfitRepository {
	return NewOutfitRepositoryGorm(f.gormDB)
}

// UserRepository returns the user repository.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepositoryGorm(f.gormDB, f.cache)
}
