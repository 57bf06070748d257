/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads fwvalidate settings from the environment.
//
// Variables use the beaver-kit convention: the tag name prefixed with
// BEAVER_, e.g. BEAVER_FWVALIDATE_FORMAT=yaml. Command-line flags take
// precedence over anything loaded here.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/gobeaver/beaver-kit/config"

	"github.com/arubamgr/fwvalidate/pkg/defaults"
	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/logging"
)

// Config holds environment-provided defaults for the CLI.
type Config struct {
	// Logging; empty defers to LOG_LEVEL
	LogLevel string `env:"FWVALIDATE_LOG_LEVEL"`

	// Report output format (json, yaml, table, text, msgpack, pdf)
	Format string `env:"FWVALIDATE_FORMAT,default:text"`

	// Checksum algorithm used by the pipeline and checksum command
	Algorithm string `env:"FWVALIDATE_ALGORITHM,default:sha256"`

	// Batch validation parallelism
	Concurrency int `env:"FWVALIDATE_CONCURRENCY,default:4"`

	// Prometheus textfile output; empty disables it
	MetricsFile string `env:"FWVALIDATE_METRICS_FILE"`

	// Watch mode
	WatchPattern string `env:"FWVALIDATE_WATCH_PATTERN,default:ArubaOS-CX_*.swi"`
	WatchRate    int    `env:"FWVALIDATE_WATCH_RATE,default:2"` // validations per second
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Format:       "text",
		Algorithm:    string(digest.Default),
		Concurrency:  defaults.BatchConcurrency,
		WatchPattern: defaults.WatchPattern,
		WatchRate:    defaults.WatchRateLimit,
	}
}

// Load returns config loaded from the environment and validated.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := digest.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("invalid algorithm: %w", err)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.WatchRate <= 0 {
		return fmt.Errorf("watch rate must be positive, got %d", c.WatchRate)
	}
	if _, err := filepath.Match(c.WatchPattern, ""); err != nil {
		return fmt.Errorf("invalid watch pattern %q: %w", c.WatchPattern, err)
	}
	return nil
}
