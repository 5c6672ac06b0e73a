package main

import (
	"context"
	"os"

	"devintel-backend/internal/cache"
	"devintel-backend/internal/config"
	"devintel-backend/internal/dashboard"
	"devintel-backend/internal/infrastructure/database"
	"devintel-backend/internal/publisher"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// The publisher is a batch job: scan the scraper drop folder, replace the
// current-state tables in one transaction, append history snapshots, then
// drop the dashboard's cached datasets so the next request sees fresh data.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Str("dir", cfg.DataDir).Msg("scanning data directory")
	ds, err := publisher.ScanDataDir(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}

	ctx := context.Background()
	stats, err := publisher.Publish(ctx, db, ds)
	if err != nil {
		log.Error().Err(err).Msg("publish failed")
		os.Exit(1)
	}

	if cfg.RedisURL != "" {
		invalidateCache(ctx, cfg.RedisURL)
	}

	log.Info().
		Int("units", stats.Units).
		Int("masters", stats.Masters).
		Int("houses", stats.Houses).
		Int("snapshots", stats.Snapshots).
		Msg("publish run finished")
}

// invalidateCache is best-effort: a publish with a stale cache is still a
// successful publish, the TTL will catch up.
func invalidateCache(ctx context.Context, redisURL string) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL; skipping cache invalidation")
		return
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	store := &cache.Store{Rdb: rdb}
	store.Invalidate(ctx, dashboard.CacheKeys...)
	log.Info().Msg("dashboard dataset cache invalidated")
}
