package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	t.Run("missing key", func(t *testing.T) {
		_, ok := c.Get(ctx, "nope")
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, []byte("v"), got)
		assert.True(t, c.Exists(ctx, "k"))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", []byte("v2"), time.Minute))
		got, _ := c.Get(ctx, "k")
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "pinned", []byte("x"), 0))
		assert.True(t, c.Exists(ctx, "pinned"))
	})
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "ephemeral", []byte("x"), 10*time.Millisecond))
	_, ok := c.Get(ctx, "ephemeral")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get(ctx, "ephemeral")
	assert.False(t, ok)
	assert.False(t, c.Exists(ctx, "ephemeral"))
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, c.Exists(ctx, "k"))

	// Deleting an absent key is not an error
	assert.NoError(t, c.Delete(ctx, "absent"))
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "courses:page=1", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "courses:page=2", []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, "course_stats", []byte("c"), time.Minute))

	require.NoError(t, c.DeleteByPrefix(ctx, "courses:"))

	assert.False(t, c.Exists(ctx, "courses:page=1"))
	assert.False(t, c.Exists(ctx, "courses:page=2"))
	assert.True(t, c.Exists(ctx, "course_stats"))
}

func TestMemoryCacheFlush(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Flush(ctx))

	assert.False(t, c.Exists(ctx, "a"))
	assert.False(t, c.Exists(ctx, "b"))
}
