/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/arubamgr/fwvalidate/pkg/defaults"
	"github.com/arubamgr/fwvalidate/pkg/report"
	"github.com/arubamgr/fwvalidate/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "watch",
		EnableShellCompletion: true,
		Usage:                 "Validate firmware images as they arrive in a staging directory",
		ArgsUsage:             "DIR",
		Description: `Watches DIR and validates each matching file once it has stopped
changing for --settle. Verdicts are logged and each report is written to
stdout in --format; there is no --output, so reports are never overwritten.
Runs until interrupted.

# Examples

  fwvalidate watch /srv/tftp/firmware
  fwvalidate watch --pattern '*.swi' --existing --format json /srv/tftp/firmware`,
		Flags: []cli.Flag{
			modelFlag(),
			algorithmFlag(),
			strictVersionFlag(),
			&cli.StringSliceFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "file name pattern to watch, can be repeated (default from config)",
			},
			&cli.DurationFlag{
				Name:  "settle",
				Value: defaults.WatchSettleDelay,
				Usage: "quiet period after the last write before a file is validated",
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "maximum validations started per second (default from config)",
			},
			&cli.BoolFlag{
				Name:  "existing",
				Usage: "also validate matching files already in DIR",
			},
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one DIR argument, got %d", cmd.Args().Len())
			}

			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}
			if outFormat == formatPDF {
				return fmt.Errorf("pdf output is not supported by %s", cmd.Name)
			}

			v, err := newValidator(ctx, cmd)
			if err != nil {
				return err
			}

			targetModel, err := parseModel(cmd, v.Table())
			if err != nil {
				return err
			}

			cfg := configFrom(ctx)
			patterns := cmd.StringSlice("pattern")
			if len(patterns) == 0 {
				patterns = []string{cfg.WatchPattern}
			}
			perSecond := cfg.WatchRate
			if cmd.IsSet("rate") {
				perSecond = int(cmd.Int("rate"))
			}
			if perSecond < 1 {
				return fmt.Errorf("invalid --rate: %d, must be at least 1", perSecond)
			}

			handle := func(ctx context.Context, path string) {
				rep := v.Validate(path, targetModel)
				slog.Info("firmware validated",
					"path", path,
					"passed", rep.Summary.OverallPassed,
					"errors", rep.Errors())

				if err := emit(ctx, cmd, outFormat, rep, renderers{
					text: func(w io.Writer) error { return report.WriteSummary(w, rep) },
				}); err != nil {
					slog.Error("failed to write report", "path", path, "error", err)
				}
			}

			w, err := watch.New(cmd.Args().First(), handle,
				watch.WithPatterns(patterns...),
				watch.WithSettleDelay(cmd.Duration("settle")),
				watch.WithRate(float64(perSecond), max(defaults.WatchRateBurst, perSecond)),
				watch.WithExisting(cmd.Bool("existing")),
				watch.WithLogger(slog.Default()),
			)
			if err != nil {
				return err
			}

			return w.Run(ctx)
		},
	}
}
