package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Store backends for device state.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	Store    string `env:"STORE" envDefault:"sqlite"`
	DBPath   string `env:"DB_PATH" envDefault:"data/compass.db"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Timezone decides when "today" rolls over.
	Timezone string `env:"TIMEZONE" envDefault:"Asia/Seoul"`
	// ContentPath overrides the embedded travel content when set.
	ContentPath string `env:"CONTENT_PATH"`

	AdGroupID      string   `env:"AD_GROUP_ID" envDefault:"ait.v2.live.b9e7a7bc7b144238"`
	ShareLink      string   `env:"SHARE_LINK" envDefault:"intoss://where-to-go/home"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE %q: want sqlite, redis or memory", cfg.Store)
	}
	return &cfg, nil
}
