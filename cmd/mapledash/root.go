package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/mapledash/character-api/internal/pkg/config"
	"github.com/mapledash/character-api/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "mapledash",
	Short: "MapleStory character lookup service",
	Long: `mapledash aggregates the MapleStory TW Open API into one composite
character document.

  mapledash serve           # Start the HTTP API
  mapledash lookup <name>   # Fetch one character and print the JSON

Configuration is read from the environment (NEXON_OPEN_API_KEY, CACHE_TTL, ...).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")
}

// loadConfig reads the environment and initialises the logger singleton.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadWith(ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "mapledash",
	})
	return cfg, nil
}
