package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"lending-ledger/internal/config"
)

// RedisCache holds short-lived report snapshots. All keys carry the
// configured prefix so Clear can drop the whole namespace without touching
// other tenants of the instance.
type RedisCache struct {
	raw    *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisCache{
		raw:    rdb,
		prefix: cfg.Prefix,
		logger: logger.With(slog.String("component", "RedisCache")),
	}, nil
}

func (c *RedisCache) withPrefix(key string) string {
	return c.prefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.raw.Get(ctx, c.withPrefix(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.raw.Set(ctx, c.withPrefix(key), value, ttl).Err()
}

// Clear drops every key under the prefix. Called after each mutation, the
// same way the original store clears its cached table snapshots on save.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.raw.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.raw.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	c.logger.DebugContext(ctx, "Cleared report cache", slog.Int("keys", len(keys)))
	return nil
}

func (c *RedisCache) Close() error {
	return c.raw.Close()
}
