/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/arubamgr/fwvalidate/pkg/config"
	"github.com/arubamgr/fwvalidate/pkg/logging"
)

const (
	name           = "fwvalidate"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/arubamgr/fwvalidate/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	ExitPassed = 0
	ExitFailed = 1
	ExitError  = 2
)

// errValidationFailed is returned by commands whose validation did not pass.
var errValidationFailed = stderrors.New("validation failed")

// Execute runs the CLI with os.Args and exits the process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run runs the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.Writer = stdout
	root.ErrWriter = stderr

	err := root.Run(ctx, args)
	if err != nil && err != errValidationFailed {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitPassed
	case stderrors.Is(err, errValidationFailed):
		return ExitFailed
	default:
		var ec cli.ExitCoder
		if stderrors.As(err, &ec) {
			return ec.ExitCode()
		}
		return ExitError
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Validate AOS-CX firmware images before deployment",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics in textfile-collector format to this path",
			},
		},
		Before: setup,
		After:  writeMetrics,
		// exit codes are mapped by Run
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			validateCmd(),
			checksumCmd(),
			batchCmd(),
			watchCmd(),
			modelsCmd(),
			renderCmd(),
			versionCmd(),
		},
	}
}

type configKey struct{}

// setup loads the environment config and installs the logger.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, err
	}

	level, err := logging.ResolveLevel(cfg.LogLevel)
	if err != nil {
		return ctx, err
	}
	switch {
	case cmd.Bool("debug"):
		level = slog.LevelDebug
	case cmd.Bool("quiet"):
		level = slog.LevelError
	}

	logger := logging.SetDefaultLoggerWithLevel(name, version, level, cmd.Root().ErrWriter)
	logger.Debug("starting", "commit", commit, "date", date)

	return context.WithValue(ctx, configKey{}, cfg), nil
}

// configFrom returns the config loaded by setup, or the defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Defaults()
}

func writeMetrics(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("metrics-file")
	if path == "" {
		path = configFrom(ctx).MetricsFile
	}
	if path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	slog.Debug("metrics written", "path", path)
	return nil
}
