package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"cinemood/internal/metrics"
)

const (
	titleDetailCacheTTL = 30 * time.Minute
	titleListCacheTTL   = 5 * time.Minute
)

// cache is a JSON view over Redis. A nil client turns every call into a miss.
type cache struct {
	redis *redis.Client
}

func (c cache) get(ctx context.Context, namespace, key string, dst any) bool {
	if c.redis == nil {
		return false
	}
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return false
	}
	slog.Debug("cache hit", "key", key)
	metrics.CacheHits.WithLabelValues(namespace).Inc()
	return true
}

func (c cache) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
