package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache is the L1 decision cache.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisCache parses url, pings once, and returns a ready RedisCache.
func NewRedisCache(url string, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cache: connect to redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger, prefix: "conflate:", ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key Key) (Decision, bool, error) {
	val, err := c.client.Get(ctx, key.string()).Result()
	if err == redis.Nil {
		c.misses++
		return Decision{}, false, nil
	}
	if err != nil {
		return Decision{}, false, fmt.Errorf("cache: redis get: %w", err)
	}
	var d Decision
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return Decision{}, false, fmt.Errorf("cache: redis unmarshal: %w", err)
	}
	c.hits++
	c.logger.Debug("redis cache hit", zap.Int64("new_id", key.NewID))
	return d, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key Key, d Decision) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("cache: redis marshal: %w", err)
	}
	if err := c.client.Set(ctx, key.string(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key Key) error {
	return c.client.Del(ctx, key.string()).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, c.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("cache: redis keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Stats(ctx context.Context) (Stats, error) {
	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	keys, err := c.client.Keys(ctx, c.prefix+"*").Result()
	if err != nil {
		return Stats{}, fmt.Errorf("cache: redis stats: %w", err)
	}
	return Stats{HitRate: hitRate, TotalHits: c.hits, TotalMiss: c.misses, TotalItems: int64(len(keys))}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
