package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &Client{rdb: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })
	return NewCache(client), mr
}

func TestCacheSetGetDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "project:p1", map[string]string{"title": "Codex"}, time.Minute))

	data, err := c.Get(ctx, "project:p1")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Codex", got["title"])

	require.NoError(t, c.Delete(ctx, "project:p1"))
	_, err = c.Get(ctx, "project:p1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheGetOrLoadSafe_LoadsOnceThenServesCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return map[string]string{"title": "Codex"}, nil
	}

	first, err := c.GetOrLoadSafe(ctx, "project:p1", time.Minute, loader)
	require.NoError(t, err)
	second, err := c.GetOrLoadSafe(ctx, "project:p1", time.Minute, loader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheGetOrLoadSafe_LoaderErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return nil, errors.New("database down")
	}

	_, err := c.GetOrLoadSafe(ctx, "project:p1", time.Minute, loader)
	require.Error(t, err)
	assert.False(t, mr.Exists("project:p1"))

	// The next lookup retries the loader instead of serving a poisoned key.
	_, err = c.GetOrLoadSafe(ctx, "project:p1", time.Minute, loader)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheGetOrLoadSafe_BackendFailureFallsBackToLoader(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.SetError("connection refused")

	data, err := c.GetOrLoadSafe(ctx, "project:p1", time.Minute, func() (interface{}, error) {
		return map[string]string{"title": "Codex"}, nil
	})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Codex", got["title"])
}

func TestCacheGetOrLoadSafe_CollapsesConcurrentLoads(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var calls atomic.Int32
	loader := func() (interface{}, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return map[string]string{"title": "Codex"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := c.GetOrLoadSafe(ctx, "project:p1", time.Minute, loader)
			assert.NoError(t, err)
			assert.NotEmpty(t, data)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
}
