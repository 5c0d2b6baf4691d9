package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheKey = "concierge:catalogue"
	defaultCacheTTL = 5 * time.Minute
)

// CachedStore is a read-through Redis cache in front of a Store.
type CachedStore struct {
	next Store
	rdb  *redis.Client
	key  string
	ttl  time.Duration
}

// NewCachedStore wraps next with a Redis cache. A non-positive ttl falls back
// to five minutes.
func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{
		next: next,
		rdb:  rdb,
		key:  defaultCacheKey,
		ttl:  ttl,
	}
}

// ListAll serves the catalogue from Redis when possible. Redis failures fall
// through to the underlying store so a cache outage never hides listings.
func (c *CachedStore) ListAll(ctx context.Context) ([]Property, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err == nil {
		var props []Property
		if err := json.Unmarshal(raw, &props); err == nil {
			return props, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return c.next.ListAll(ctx)
	}

	props, err := c.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(props)
	if err != nil {
		return props, nil
	}
	// a failed write only costs a cache miss next time
	_ = c.rdb.Set(ctx, c.key, payload, c.ttl).Err()

	return props, nil
}

// Invalidate drops the cached catalogue. Call it after any property write.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalogue cache: %w", err)
	}
	return nil
}
