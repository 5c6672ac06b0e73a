package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Rows []string `json:"rows"`
}

func setupCacheTest(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &Store{Rdb: rdb, TTL: 10 * time.Minute}, mr
}

func TestGetOrRefreshMemoizes(t *testing.T) {
	s, _ := setupCacheTest(t)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return payload{Rows: []string{"a", "b"}}, nil
	}

	var got payload
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &got, load))
	assert.Equal(t, []string{"a", "b"}, got.Rows)
	assert.Equal(t, 1, calls)

	var again payload
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &again, load))
	assert.Equal(t, got, again)
	assert.Equal(t, 1, calls, "second read within TTL must hit the cache")
}

func TestGetOrRefreshExpires(t *testing.T) {
	s, mr := setupCacheTest(t)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return payload{Rows: []string{"x"}}, nil
	}

	var got payload
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &got, load))
	mr.FastForward(11 * time.Minute)
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &got, load))
	assert.Equal(t, 2, calls, "expired entry must trigger a reload")
}

func TestGetOrRefreshLoaderError(t *testing.T) {
	s, _ := setupCacheTest(t)
	var got payload
	err := s.GetOrRefresh(context.Background(), "units", &got, func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("connection refused")
	})
	assert.Error(t, err)
}

// A dead Redis degrades to a direct load instead of failing the render.
func TestGetOrRefreshRedisDown(t *testing.T) {
	s, mr := setupCacheTest(t)
	mr.Close()

	calls := 0
	var got payload
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &got, func(ctx context.Context) (interface{}, error) {
		calls++
		return payload{Rows: []string{"direct"}}, nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"direct"}, got.Rows)
}

func TestInvalidate(t *testing.T) {
	s, _ := setupCacheTest(t)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return payload{}, nil
	}
	var got payload
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &got, load))
	s.Invalidate(context.Background(), "units")
	require.NoError(t, s.GetOrRefresh(context.Background(), "units", &got, load))
	assert.Equal(t, 2, calls)
}
