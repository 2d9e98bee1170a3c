package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapledash/character-api/internal/api"
	"github.com/mapledash/character-api/internal/api/middleware"
	"github.com/mapledash/character-api/pkg/logger"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the character API server.

Routes:
  GET /api/maplestory   composite character lookup
  GET /health           liveness
  GET /health/ready     readiness (API key, Redis when enabled)
  GET /metrics          Prometheus metrics
  GET /swagger/*        API documentation`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&port, "port", "", "override PORT")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := wire(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer c.close()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger.Component("ratelimit"))
		go limiter.RunSweeper(ctx, time.Minute)
	}

	e := api.NewRouter(api.RouterConfig{
		Characters:  c.service,
		Checks:      c.checks,
		Locale:      c.locale,
		Log:         logger.Component("http"),
		RateLimiter: limiter,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
