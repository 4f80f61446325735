// Package config loads browserscan settings from the environment
package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. BROWSERSCAN_WORKERS
const EnvPrefix = "BROWSERSCAN"

// Config holds the configuration for a scan
type Config struct {
	// DetectDepth bounds the browser detection walk
	DetectDepth int `envconfig:"DETECT_DEPTH" default:"3"`
	// FamilyDepth bounds the engine family walk
	FamilyDepth int `envconfig:"FAMILY_DEPTH" default:"2"`
	// SizeDepth bounds the size walk; zero means unbounded
	SizeDepth int `envconfig:"SIZE_DEPTH" default:"0"`

	Workers    int `envconfig:"WORKERS" default:"4"`
	SinkBuffer int `envconfig:"SINK_BUFFER" default:"64"`

	// HiveDir holds an offline SOFTWARE hive; empty scans the live registry
	HiveDir string `envconfig:"HIVE_DIR"`
	// UserHive is an offline NTUSER.DAT for the per-user location
	UserHive string `envconfig:"USER_HIVE"`
	// Directories are glob patterns of candidate install directories
	Directories []string `envconfig:"DIRECTORIES"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// Load loads the configuration from environment variables or defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no variable is set
func Default() *Config {
	return &Config{
		DetectDepth: 3,
		FamilyDepth: 2,
		Workers:     4,
		SinkBuffer:  64,
		LogLevel:    "info",
	}
}

// Validate rejects settings a scan cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.DetectDepth < 1 {
		errs = append(errs, fmt.Errorf("detect depth must be at least 1, got %d", c.DetectDepth))
	}
	if c.FamilyDepth < 1 {
		errs = append(errs, fmt.Errorf("family depth must be at least 1, got %d", c.FamilyDepth))
	}
	if c.SizeDepth < 0 {
		errs = append(errs, fmt.Errorf("size depth must not be negative, got %d", c.SizeDepth))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.SinkBuffer < 1 {
		errs = append(errs, fmt.Errorf("sink buffer must be at least 1, got %d", c.SinkBuffer))
	}
	return errors.Join(errs...)
}
