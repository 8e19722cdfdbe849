package transit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/idir-jpg/study-success-matching/pkg/cache"
)

// Cache stores durations in minutes by lookup key.
type Cache interface {
	Get(ctx context.Context, key string) (minutes int, ok bool, err error)
	Set(ctx context.Context, key string, minutes int) error
}

// CacheKey identifies one lookup. Departures on the same day share a key.
func CacheKey(origin, destination string, departure time.Time) string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)),
		departure.Format(time.DateOnly),
	}, "|")
}

// LRUCache keeps durations in process memory.
type LRUCache struct {
	lru *cache.LRUCache[string, int]
}

func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = 1024
	}
	return &LRUCache{lru: cache.NewLRUCache[string, int](size, cache.WithTTL(ttl))}
}

func (c *LRUCache) Get(_ context.Context, key string) (int, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

func (c *LRUCache) Set(_ context.Context, key string, minutes int) error {
	c.lru.Put(key, minutes)
	return nil
}

const redisKeyPrefix = "transit:minutes:"

// RedisCache shares durations across desk instances.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (int, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Join(ErrCacheUnavailable, err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, minutes int) error {
	if err := c.client.Set(ctx, redisKeyPrefix+key, minutes, c.ttl).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

// CachedEstimator memoises successful estimates. Cache failures fall
// through to the wrapped estimator.
type CachedEstimator struct {
	next  Estimator
	cache Cache
}

func NewCachedEstimator(next Estimator, c Cache) *CachedEstimator {
	return &CachedEstimator{next: next, cache: c}
}

func (e *CachedEstimator) Minutes(ctx context.Context, origin, destination string, departure time.Time) (int, error) {
	key := CacheKey(origin, destination, departure)
	if v, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		return v, nil
	}

	v, err := e.next.Minutes(ctx, origin, destination, departure)
	if err != nil {
		return 0, err
	}
	_ = e.cache.Set(ctx, key, v)
	return v, nil
}
