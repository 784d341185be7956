package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API    APIConfig
	Cookie CookieConfig
	Redis  RedisConfig
}

// APIConfig selects which backend deployment the portal targets.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=30s"`
}

// CookieConfig controls the per-role credential cookies.
type CookieConfig struct {
	Secure bool          `env:"COOKIE_SECURE,  default=false"`
	MaxAge time.Duration `env:"COOKIE_MAX_AGE, default=720h"`
}

// RedisConfig configures the optional profile cache. An empty Addr disables
// Redis entirely; the portal then refreshes profiles straight from the
// backend on every navigation.
type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"`
	DB         int           `env:"REDIS_DB,          default=0"`
	ProfileTTL time.Duration `env:"PROFILE_CACHE_TTL, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
