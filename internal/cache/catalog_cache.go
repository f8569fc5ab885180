package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

const (
	catalogKeyPrefix = "catalog:"
	catalogTTL       = 5 * time.Minute
)

// CatalogCache caches rendered product lists per (category, language, tier)
// so the common browse path skips the database. Entries are invalidated in
// bulk whenever a product mutates.
type CatalogCache struct {
	redis *RedisClient
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient) *CatalogCache {
	return &CatalogCache{redis: redis}
}

func catalogKey(categoryID int, lang models.Language, tier models.AccountType) string {
	return fmt.Sprintf("%s%d:%s:%s", catalogKeyPrefix, categoryID, lang, tier)
}

// Get returns the cached product list, or (nil, nil) on miss.
func (c *CatalogCache) Get(ctx context.Context, categoryID int, lang models.Language, tier models.AccountType) ([]byte, error) {
	data, err := c.redis.Get(ctx, catalogKey(categoryID, lang, tier))
	if err != nil {
		// Miss and transport errors are both treated as a miss; the
		// database remains the source of truth.
		return nil, nil
	}
	return []byte(data), nil
}

// Set stores a rendered product list.
func (c *CatalogCache) Set(ctx context.Context, categoryID int, lang models.Language, tier models.AccountType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, catalogKey(categoryID, lang, tier), string(raw), catalogTTL)
}

// Invalidate drops every cached catalog entry.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.redis.DeleteByPattern(ctx, catalogKeyPrefix+"*")
}
