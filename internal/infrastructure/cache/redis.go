package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/gojo-homes/api/internal/config"
	"github.com/gojo-homes/api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// BrowsePrefix namespaces every cached browse page; invalidation scans it.
const BrowsePrefix = "listings:browse:"

const (
	browseTTL = 10 * time.Minute
	scanCount = 100
)

// BrowseKey derives a stable cache key from the browse filter and page size.
func BrowseKey(filter domain.ListingFilter, limit int) string {
	raw := fmt.Sprintf("type=%s&purpose=%s&city=%s&minPrice=%v&maxPrice=%v&minBedrooms=%v&limit=%d",
		filter.Type, filter.Purpose, filter.City,
		deref(filter.MinPrice), deref(filter.MaxPrice), derefInt(filter.MinBedrooms), limit)
	sum := sha256.Sum256([]byte(raw))
	return BrowsePrefix + hex.EncodeToString(sum[:])
}

func deref(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}

func derefInt(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}

// ListingCache is a Redis-backed cache-aside layer for listing browse
// queries. All methods are best-effort: cache failures are logged and
// treated as misses, never surfaced to callers.
type ListingCache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(cfg *config.Config) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &ListingCache{client: client}, nil
}

// Get returns the cached payload for key, or ok=false on a miss or error.
func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("cache: GET %s: %v", key, err)
		return nil, false
	}
	return data, true
}

// Set stores the payload for key with the browse TTL.
func (c *ListingCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, browseTTL).Err(); err != nil {
		log.Printf("cache: SET %s: %v", key, err)
	}
}

// InvalidateBrowse deletes every cached browse page. Called after any
// listing mutation; runs a cursor SCAN and a pipelined DEL.
func (c *ListingCache) InvalidateBrowse(ctx context.Context) {
	var keys []string
	var cursor uint64
	for {
		page, next, err := c.client.Scan(ctx, cursor, BrowsePrefix+"*", scanCount).Result()
		if err != nil {
			log.Printf("cache: SCAN %s*: %v", BrowsePrefix, err)
			return
		}
		keys = append(keys, page...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("cache: invalidate %d browse keys: %v", len(keys), err)
	}
}
