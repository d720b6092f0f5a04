package main

import (
	"context"
	"fmt"

	"github.com/jonathan/job-radar/internal/config"
	"github.com/jonathan/job-radar/internal/db"
)

// loadAppConfig merges an optional config file with environment
// variables. File values win over the environment.
func loadAppConfig(configPath string) (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openDB connects to PostgreSQL from the merged configuration.
func openDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// localeOrDefault picks the tokenizer locale, defaulting to English.
func localeOrDefault(cfg config.Config) string {
	if cfg.Locale == "" {
		return "en"
	}
	return cfg.Locale
}
