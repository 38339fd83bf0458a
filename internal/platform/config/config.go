// Package config loads process-level configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// ConfigPackage names the package whose layered configuration files are
	// consulted for tool defaults.
	ConfigPackage string `env:"CGTOOLS_CONFIG_PACKAGE" default:"cgtools"`

	// PackageConfigDir points at the package's bundled config directory, the
	// lowest-priority layer. May be empty.
	PackageConfigDir string `env:"CGTOOLS_PACKAGE_CONFIG_DIR"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return &cfg, nil
}
