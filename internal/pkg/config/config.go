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
	Locale   string `env:"LOCALE,    default=zh-TW"`

	Upstream  UpstreamConfig
	Cache     CacheConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// UpstreamConfig controls the Nexon Open API client.
type UpstreamConfig struct {
	BaseURL            string        `env:"NEXON_API_BASE_URL,   default=https://open.api.nexon.com/maplestorytw/v1"`
	APIKey             string        `env:"NEXON_OPEN_API_KEY"`
	Timeout            time.Duration `env:"UPSTREAM_TIMEOUT,     default=10s"`
	MaxRetries         int           `env:"UPSTREAM_MAX_RETRIES, default=2"`
	RequestsPerSecond  float64       `env:"UPSTREAM_RPS,         default=0"`
	SectionConcurrency int           `env:"SECTION_CONCURRENCY,  default=4"`
}

// CacheConfig controls the composite response cache. A zero TTL disables it.
type CacheConfig struct {
	TTL     time.Duration `env:"CACHE_TTL,     default=30s"`
	Backend string        `env:"CACHE_BACKEND, default=memory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig bounds inbound requests per client IP. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"CLIENT_RATE_LIMIT, default=0"`
	Burst             int     `env:"CLIENT_RATE_BURST, default=10"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadWith reads configuration from l, usually envconfig.OsLookuper().
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", cfg.Cache.Backend)
	}
	return &cfg, nil
}
