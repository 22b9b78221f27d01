package capability

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/GardenBot_Go/internal/logger"
)

// Cache stores capability results for a short time
type Cache interface {
	Get(ctx context.Context, kind Kind, userID int64) (value bool, ok bool)
	Set(ctx context.Context, kind Kind, userID int64, value bool)
	Delete(ctx context.Context, kind Kind, userID int64)
}

// LRUCache is an in-process cache with a fixed lifetime per kind
type LRUCache struct {
	premium *expirable.LRU[int64, bool]
	vote    *expirable.LRU[int64, bool]
}

// NewLRUCache creates an in-process cache holding up to size users per kind
func NewLRUCache(size int) *LRUCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &LRUCache{
		premium: expirable.NewLRU[int64, bool](size, nil, PremiumTTL),
		vote:    expirable.NewLRU[int64, bool](size, nil, VoteTTL),
	}
}

func (c *LRUCache) lru(kind Kind) *expirable.LRU[int64, bool] {
	if kind == KindVote {
		return c.vote
	}
	return c.premium
}

func (c *LRUCache) Get(_ context.Context, kind Kind, userID int64) (bool, bool) {
	return c.lru(kind).Get(userID)
}

func (c *LRUCache) Set(_ context.Context, kind Kind, userID int64, value bool) {
	c.lru(kind).Add(userID, value)
}

func (c *LRUCache) Delete(_ context.Context, kind Kind, userID int64) {
	c.lru(kind).Remove(userID)
}

// RedisCache shares capability results between processes
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance described by url
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Ping checks connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func redisKey(kind Kind, userID int64) string {
	return fmt.Sprintf("%s:%s:%d", RedisKeyPrefix, kind, userID)
}

// Get treats Redis errors as a miss
func (c *RedisCache) Get(ctx context.Context, kind Kind, userID int64) (bool, bool) {
	val, err := c.client.Get(ctx, redisKey(kind, userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn(LogMsgCacheReadFailed, "kind", kind, "userID", userID, "error", err)
		}
		return false, false
	}
	return val == "1", true
}

func (c *RedisCache) Set(ctx context.Context, kind Kind, userID int64, value bool) {
	val := "0"
	if value {
		val = "1"
	}
	if err := c.client.Set(ctx, redisKey(kind, userID), val, ttlFor(kind)).Err(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCacheWriteFailed, "kind", kind, "userID", userID, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, kind Kind, userID int64) {
	if err := c.client.Del(ctx, redisKey(kind, userID)).Err(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCacheWriteFailed, "kind", kind, "userID", userID, "error", err)
	}
}
