/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures structured logging for fwvalidate.
//
// Loggers are plain *slog.Logger values writing JSON to stderr, so report
// output on stdout stays machine-readable. Components receive their logger
// explicitly (e.g. validator.WithLogger); SetDefaultLoggerWithLevel also
// installs it as the slog default for code that logs through the package
// level functions.
//
// The level is resolved by ResolveLevel: an explicitly configured level wins,
// then LOG_LEVEL, then info.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted by ResolveLevel.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel parses a level name (debug, info, warn, error), case-insensitive.
// An empty string yields info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q, valid levels are: debug, info, warn, error", s)
	}
}

// New returns a JSON logger writing to w, tagged with the tool name and version.
func New(name, version string, level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With(
		slog.String("module", name),
		slog.String("version", version),
	)
}

// ResolveLevel returns configured when it is set, else the level named by
// LOG_LEVEL, else info.
func ResolveLevel(configured string) (slog.Level, error) {
	if strings.TrimSpace(configured) != "" {
		return ParseLevel(configured)
	}
	level, err := ParseLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		return level, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
	}
	return level, nil
}

// SetDefaultLoggerWithLevel installs a JSON logger at level writing to w
// (stderr when nil) as the slog default and returns it.
func SetDefaultLoggerWithLevel(name, version string, level slog.Level, w io.Writer) *slog.Logger {
	logger := New(name, version, level, w)
	slog.SetDefault(logger)
	return logger
}
