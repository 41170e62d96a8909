package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/agentos/backend/internal/config"
	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/agentos/backend/internal/infrastructure/metrics"
	"github.com/redis/go-redis/v9"
)

// RedisCache backs the content-addressed result cache and the short-lived
// status cache with a shared redis connection.
type RedisCache struct {
	client *redis.Client
	log    *logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func NewRedisCache(cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Infow("redis_connected", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisCache{client: client, log: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		c.log.Warnw("cache_get_failed", "key", key, "error", err)
		return nil, false, err
	}
	c.hits.Add(1)
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warnw("cache_set_failed", "key", key, "error", err)
		return err
	}
	return nil
}

// HitRate reports the lookup hit ratio since process start. Zero lookups
// report 0.
func (c *RedisCache) HitRate() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ ports.ContentCache = (*RedisCache)(nil)
