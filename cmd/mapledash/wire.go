package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mapledash/character-api/internal/api/handler"
	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
	"github.com/mapledash/character-api/internal/core/service"
	"github.com/mapledash/character-api/internal/infrastructure/cache"
	redisdb "github.com/mapledash/character-api/internal/infrastructure/db/redis"
	"github.com/mapledash/character-api/internal/infrastructure/nexon"
	"github.com/mapledash/character-api/internal/pkg/config"
	"github.com/mapledash/character-api/internal/pkg/i18n"
	"github.com/mapledash/character-api/pkg/logger"
)

// components is everything a command needs to answer character queries.
type components struct {
	service *service.CharacterService
	checks  map[string]handler.ReadinessCheck
	locale  language.Tag
	close   func()
}

// wire builds the service graph from cfg. withCache selects the configured
// cache backend; without it every query goes upstream.
func wire(ctx context.Context, cfg *config.Config, withCache bool) (*components, error) {
	locale := i18n.Parse(cfg.Locale)

	client := nexon.NewClient(nexon.Config{
		BaseURL:           cfg.Upstream.BaseURL,
		APIKey:            cfg.Upstream.APIKey,
		Timeout:           cfg.Upstream.Timeout,
		MaxRetries:        cfg.Upstream.MaxRetries,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
	}, logger.Component("nexon"))
	if !client.Configured() {
		log := logger.Get()
		log.Warn().Msg("NEXON_OPEN_API_KEY is not set; character lookups will fail")
	}

	resolver := service.NewIdentityResolver(client, locale, logger.Component("identity"))
	assembler := service.NewAssembler(client, resolver, cfg.Upstream.SectionConcurrency, logger.Component("assembler"))

	c := &components{
		checks: map[string]handler.ReadinessCheck{
			"nexon": func(context.Context) error {
				if !client.Configured() {
					return &domain.ConfigurationError{Message: "NEXON_OPEN_API_KEY is not set"}
				}
				return nil
			},
		},
		locale: locale,
		close:  func() {},
	}

	var responses ports.ResponseCache
	if withCache {
		switch cfg.Cache.Backend {
		case "redis":
			rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
			if err != nil {
				return nil, fmt.Errorf("connect redis: %w", err)
			}
			responses = redisdb.NewResponseCache(rdb, cfg.Cache.TTL)
			c.checks["redis"] = func(ctx context.Context) error {
				return redisdb.Ping(ctx, rdb, 2*time.Second)
			}
			c.close = func() { _ = rdb.Close() }
		default:
			responses = cache.NewMemory(cfg.Cache.TTL)
		}
	}

	c.service = service.NewCharacterService(assembler, responses, locale, logger.Component("characters"))
	logLimits(logger.Get(), cfg, withCache)
	return c, nil
}

func logLimits(log zerolog.Logger, cfg *config.Config, withCache bool) {
	ev := log.Debug().
		Str("upstream", cfg.Upstream.BaseURL).
		Dur("timeout", cfg.Upstream.Timeout).
		Int("max_retries", cfg.Upstream.MaxRetries).
		Int("section_concurrency", cfg.Upstream.SectionConcurrency)
	if withCache {
		ev = ev.Str("cache", cfg.Cache.Backend).Dur("cache_ttl", cfg.Cache.TTL)
	}
	ev.Msg("service wired")
}
