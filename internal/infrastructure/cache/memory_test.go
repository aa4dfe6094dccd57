package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcache "catalog-backend/pkg/cache"
)

var _ pkgcache.Cache = (*MemoryCache)(nil)
var _ pkgcache.Cache = (*RedisCache)(nil)

type cachedAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var got cachedAuthor
	found, err := c.Get(ctx, "author:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "author:1", cachedAuthor{ID: 1, Name: "Tolkien"}, time.Minute))

	found, err = c.Get(ctx, "author:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Tolkien", got.Name)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "author:1", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "author:slug:tolkien", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "book:1", 1, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "author:*"))

	var v int
	found, _ := c.Get(ctx, "author:1", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "author:slug:tolkien", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "book:1", &v)
	assert.True(t, found)
}
