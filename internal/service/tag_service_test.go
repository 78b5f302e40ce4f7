package service

import (
	"context"
	"testing"

	"conduit/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_CachesAndInvalidates(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	current := []string{"go"}
	articles := noopArticleRepo()
	articles.tagsFn = func(context.Context) ([]string, error) {
		calls++
		return current, nil
	}
	svc := NewTagService(articles, rdb)
	ctx := context.Background()

	tags, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tags)

	current = []string{"go", "rest"}
	tags, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tags, "served from cache")
	assert.Equal(t, 1, calls)

	svc.Invalidate(ctx)
	assert.False(t, mr.Exists(cache.TagsKey))
	tags, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rest"}, tags)
	assert.Equal(t, 2, calls)
}

func TestTagService_NoRedis(t *testing.T) {
	t.Parallel()

	svc := NewTagService(noopArticleRepo(), nil)
	tags, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)
}
