package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	Units   UnitsConfig
	Metrics MetricsConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// UnitsConfig holds conversion engine configuration.
type UnitsConfig struct {
	CacheEnabled bool    `envconfig:"UNITS_CACHE_ENABLED" default:"true"`
	MaxDepth     int     `envconfig:"UNITS_MAX_DEPTH" default:"64"`
	ULPTolerance float64 `envconfig:"UNITS_ULP_TOLERANCE" default:"3"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled   bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Namespace string `envconfig:"METRICS_NAMESPACE" default:"units"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Units: UnitsConfig{
			CacheEnabled: true,
			MaxDepth:     64,
			ULPTolerance: 3,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "units",
		},
	}
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	if c.Units.MaxDepth <= 0 {
		return fmt.Errorf("UNITS_MAX_DEPTH must be positive, got %d", c.Units.MaxDepth)
	}
	if c.Units.ULPTolerance < 0 {
		return fmt.Errorf("UNITS_ULP_TOLERANCE must not be negative, got %v", c.Units.ULPTolerance)
	}
	return nil
}
