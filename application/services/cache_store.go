package services

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/pkg/observability"
)

// cacheStore is the shared cache-aside plumbing embedded by the services.
// Cache failures degrade to repository reads; they never surface to callers.
type cacheStore struct {
	cache   ports.Cache
	metrics *observability.Metrics
	logger  *zap.Logger
}

// lookup reads and deserializes a cached payload. A value that fails to
// deserialize counts as a miss; the stale entry is dropped so the next
// write replaces it.
func (c cacheStore) lookup(ctx context.Context, key string, dest interface{}) bool {
	raw, ok := c.cache.Get(ctx, key)
	if !ok {
		c.metrics.CacheMisses.WithLabelValues(namespaceOf(key)).Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("Cached payload failed to deserialize, recomputing",
			zap.String("key", key),
			zap.Error(err),
		)
		c.cache.Delete(ctx, key)
		c.metrics.CacheMisses.WithLabelValues(namespaceOf(key)).Inc()
		return false
	}

	c.metrics.CacheHits.WithLabelValues(namespaceOf(key)).Inc()
	return true
}

// store serializes and caches a payload; failures degrade silently
func (c cacheStore) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to serialize cache payload",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	c.cache.Set(ctx, key, raw, ttl)
}

// namespaceOf extracts the metrics label from a cache key
func namespaceOf(key string) string {
	if idx := strings.Index(key, ":"); idx > 0 {
		return key[:idx]
	}
	return key
}
