package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through JSON cache for derived concert views. A nil *Cache
// is valid and caches nothing.
type Cache struct {
	rdb    *redis.Client
	flight singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

// GetOrSetJSON returns the cached value for key, loading and caching it on a
// miss. Concurrent misses for the same key share one loader call. Cache read
// errors fall through to the loader so redis outages do not fail reads.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if c == nil {
		return loader(ctx)
	}

	if v, hit := lookup[T](ctx, c, key); hit {
		return v, nil
	}

	shared, err, _ := c.flight.Do(key, func() (any, error) {
		// another caller may have filled the key while we waited
		if v, hit := lookup[T](ctx, c, key); hit {
			return v, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.store(ctx, key, v, ttl)

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := shared.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("redis.GetOrSetJSON: cached %q holds %T", key, shared)
	}

	return v, nil
}

// GetOrSetConcertJSON caches a derived view of one concert under the
// concert's current generation. A value loaded before InvalidateConcert is
// stored under the old generation and is never served after it. When the
// generation cannot be read the loader runs uncached.
func GetOrSetConcertJSON[T any](
	ctx context.Context,
	c *Cache,
	concertID uint64,
	view string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if c == nil {
		return loader(ctx)
	}

	gen, err := c.rdb.Get(ctx, KeyConcertGeneration(concertID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return loader(ctx)
	}

	return GetOrSetJSON(ctx, c, KeyConcertView(concertID, view, gen), ttl, loader)
}

// InvalidateConcert moves a concert to a new generation, retiring every
// cached view of it. Retired views expire with their TTL.
func (c *Cache) InvalidateConcert(ctx context.Context, concertID uint64) error {
	if c == nil {
		return nil
	}

	return c.rdb.Incr(ctx, KeyConcertGeneration(concertID)).Err()
}

// lookup reports a hit only for a present, decodable entry.
func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}

	return v, true
}

func (c *Cache) store(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, string(raw), ttl).Err()
}
