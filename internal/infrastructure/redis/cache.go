package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

// CacheService is a thin JSON cache over Redis. Repositories treat it as
// best-effort: a cache miss or error falls through to the database.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCacheService connects to Redis and verifies the connection.
func NewCacheService(cfg *config.RedisConfig, log logger.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CacheService{
		client: client,
		ttl:    ttl,
		logger: log,
	}, nil
}

// DefaultTTL returns the configured entry lifetime.
func (c *CacheService) DefaultTTL() time.Duration {
	return c.ttl
}

// Get unmarshals the cached value for key into dest. Returns an error on
// miss.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set stores value under key for ttl. Errors are logged, not returned;
// the cache never fails a request.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to marshal cache value")
		return
	}

	if ttl <= 0 {
		ttl = c.ttl
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to write cache entry")
	}
}

// Delete drops keys. Errors are logged, not returned.
func (c *CacheService) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"keys":  keys,
			"error": err.Error(),
		}).Warn("Failed to delete cache entries")
	}
}

// Close shuts down the underlying client.
func (c *CacheService) Close() error {
	return c.client.Close()
}
