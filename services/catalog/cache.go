package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

const cacheKeyPrefix = "catalog:search:"

// CachedSource keeps recent search results in Redis. Redis failures never fail
// a search; they only cost a cache miss.
type CachedSource struct {
	next   Source
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(next Source, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSource {
	return &CachedSource{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// cacheKey covers only what sources narrow by, so slider moves share an entry.
func cacheKey(role models.Role, query models.SearchQuery) string {
	drafts := "published"
	if role.SeesDrafts() {
		drafts = "all"
	}
	raw := strings.Join([]string{
		drafts,
		strings.ToLower(query.Trimmed()),
		string(query.Filters.Category),
		string(query.Filters.Availability),
	}, "\x1f")
	sum := sha1.Sum([]byte(raw))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedSource) Search(ctx context.Context, role models.Role, query models.SearchQuery) ([]models.CatalogItem, error) {
	key := cacheKey(role, query)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []models.CatalogItem
		if jerr := json.Unmarshal(cached, &items); jerr == nil {
			return items, nil
		}
		c.logger.Warn("discarding corrupt catalog cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", zap.Error(err))
	}

	items, err := c.next.Search(ctx, role, query)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(items); jerr == nil {
		if serr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.logger.Warn("catalog cache write failed", zap.Error(serr))
		}
	}
	return items, nil
}
