package ports

import (
	"context"
	"time"
)

// Cache is a best-effort key/value store with TTL and prefix-based bulk
// invalidation. Implementations must degrade to a miss or a no-op when
// the backing store is unreachable; callers treat the cache as optional
// acceleration, never a correctness dependency. Values are opaque
// serialized payloads.
type Cache interface {
	// Get returns the stored value, or ok=false on a miss or any
	// backend failure
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value under a TTL. A returned error signals a
	// degraded cache, not a failed operation.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key
	Delete(ctx context.Context, key string) error

	// Exists reports whether a live entry is present
	Exists(ctx context.Context, key string) bool

	// DeleteByPrefix removes every key under a namespace prefix
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Flush removes every entry
	Flush(ctx context.Context) error
}
