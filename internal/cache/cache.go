package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "dataset:"

// Store is a time-bounded memoized cache for dashboard dataset loads, keyed
// on the data-source query. Each render recomputes everything from the
// current dataset; the cache only bounds how often the serving store is hit.
// Redis is best-effort: any cache failure degrades to a direct load.
type Store struct {
	Rdb *redis.Client
	TTL time.Duration
}

// Loader produces the value for a cache miss.
type Loader func(ctx context.Context) (interface{}, error)

// GetOrRefresh unmarshals the cached value for key into dest when fresh,
// otherwise calls load, stores the result with the configured TTL, and
// unmarshals that. Invalidation is purely time-based.
func (s *Store) GetOrRefresh(ctx context.Context, key string, dest interface{}, load Loader) error {
	full := keyPrefix + key

	if s.Rdb != nil {
		b, err := s.Rdb.Get(ctx, full).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(b, dest); jsonErr == nil {
				return nil
			}
			// Corrupt entry: fall through to a fresh load.
			log.Warn().Str("key", key).Msg("dropping unreadable cache entry")
			s.Rdb.Del(ctx, full)
		}
	}

	value, err := load(ctx)
	if err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.Rdb != nil {
		if err := s.Rdb.Set(ctx, full, b, s.TTL).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return json.Unmarshal(b, dest)
}

// Invalidate drops a cached entry (used by the publisher after a load so the
// dashboard does not serve a stale dataset for a full TTL).
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if s.Rdb == nil {
		return
	}
	for _, k := range keys {
		s.Rdb.Del(ctx, keyPrefix+k)
	}
}
