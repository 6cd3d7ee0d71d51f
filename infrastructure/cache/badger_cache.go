// Package cache provides the cache store implementations behind
// ports.Cache. All operations are best-effort: a failing backend is
// logged and degrades to a miss or a no-op so that callers never depend
// on the cache for correctness.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"coursehub/application/ports"
)

// BadgerCache implements ports.Cache on BadgerDB. Entry expiry uses
// badger's native TTL support; namespace invalidation uses key-prefix
// iteration.
type BadgerCache struct {
	db     *badger.DB
	logger *zap.Logger
}

// NewBadgerCache creates a cache store over an open badger database
func NewBadgerCache(db *badger.DB, logger *zap.Logger) *BadgerCache {
	return &BadgerCache{db: db, logger: logger}
}

// OpenBadger opens the badger database backing the cache. An empty path
// opens an in-memory instance.
func OpenBadger(path string, logger *zap.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Get retrieves a value; any backend failure reads as a miss
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn("Cache get failed, treating as miss",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return value, true
}

// Set stores a value under a TTL
func (c *BadgerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		c.logger.Warn("Cache set failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Delete removes a single key
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		c.logger.Warn("Cache delete failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Exists reports whether a live entry is present
func (c *BadgerCache) Exists(ctx context.Context, key string) bool {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	return err == nil
}

// DeleteByPrefix removes every key under a namespace prefix
func (c *BadgerCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	// Collect keys first; badger forbids writes during iteration on the
	// same transaction.
	var keys [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("Cache prefix scan failed",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return err
	}

	for _, key := range keys {
		key := key
		if err := c.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		}); err != nil {
			c.logger.Warn("Cache prefix delete failed",
				zap.String("prefix", prefix),
				zap.ByteString("key", key),
				zap.Error(err),
			)
			return err
		}
	}

	c.logger.Debug("Cache namespace invalidated",
		zap.String("prefix", prefix),
		zap.Int("keys", len(keys)),
	)
	return nil
}

// Flush removes every entry
func (c *BadgerCache) Flush(ctx context.Context) error {
	if err := c.db.DropAll(); err != nil {
		c.logger.Warn("Cache flush failed", zap.Error(err))
		return err
	}
	return nil
}

// Close closes the underlying database
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

var _ ports.Cache = (*BadgerCache)(nil)
