package app

import (
	"devintel-backend/internal/access"
	"devintel-backend/internal/cache"
	"devintel-backend/internal/config"
	"devintel-backend/internal/dashboard"
	"devintel-backend/internal/health"
	"devintel-backend/internal/infrastructure/database"
	"devintel-backend/internal/middleware"
	"devintel-backend/internal/trends"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration, and returns the opened DB/Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		healthHandlers.DB = &gormDBPinger{db: db}
	}

	// Beta-access gate (no auth required to enter)
	accessHandlers := &access.Handlers{DB: db, Rdb: rdb, Config: sessionCfg}
	accessGroup := app.Group("/api/v1/access")
	accessGroup.Post("/enter", accessHandlers.Enter)
	accessGroup.Post("/exit", accessHandlers.Exit)
	accessGroup.Get("/me", accessHandlers.Me)

	// --- Gated modules (session required) ---
	if db != nil && rdb != nil {
		store := &cache.Store{Rdb: rdb, TTL: cfg.CacheTTL}

		dashboardService := &dashboard.Service{
			DB:               db,
			Cache:            store,
			ShowAllWhenEmpty: cfg.ShowAllWhenEmpty,
		}
		dashboardHandlers := &dashboard.Handlers{Service: dashboardService}
		dashboardGroup := app.Group("/api/v1/dashboard", middleware.RequireAuth())
		dashboardGroup.Get("/overview", dashboardHandlers.Overview)
		dashboardGroup.Get("/projects", dashboardHandlers.Projects)
		dashboardGroup.Get("/compare", dashboardHandlers.Compare)
		dashboardGroup.Get("/house-types", dashboardHandlers.HouseTypes)
		dashboardGroup.Get("/export", dashboardHandlers.Export)

		trendsHandlers := &trends.Handlers{Store: &trends.Store{DB: db}}
		trendsGroup := app.Group("/api/v1/trends", middleware.RequireAuth())
		trendsGroup.Get("/developers", trendsHandlers.Developers)
		trendsGroup.Get("/projects", trendsHandlers.Projects)
		trendsGroup.Get("/series", trendsHandlers.Series)
	}

	return app, db, rdb, nil
}
