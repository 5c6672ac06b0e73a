package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	DataDir             string        // scraper CSV drop folder for the publisher
	CacheTTL            time.Duration // dataset cache TTL for dashboard loads
	ShowAllWhenEmpty    bool          // compare view with no project filter: all projects (true) or none (false)
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	ttl := viper.GetInt("CACHE_TTL_SECONDS")
	if ttl <= 0 {
		ttl = 600
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == "" {
		dataDir = "data/pemaju"
	}

	// Default true: the comparison view shows a developer's full portfolio
	// until specific projects are picked.
	showAll := true
	if v := viper.GetString("COMPARE_SHOW_ALL_WHEN_EMPTY"); v != "" {
		showAll = strings.EqualFold(v, "true")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		DataDir:             dataDir,
		CacheTTL:            time.Duration(ttl) * time.Second,
		ShowAllWhenEmpty:    showAll,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}
