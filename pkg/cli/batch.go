/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/arubamgr/fwvalidate/pkg/report"
)

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "batch",
		EnableShellCompletion: true,
		Usage:                 "Validate several firmware images in parallel",
		ArgsUsage:             "FILE...",
		Description: `Validates each FILE with its own pipeline, running up to --concurrency
validations at a time. Reports keep the order of the arguments.

Exits 0 when every image passes and 1 when any image fails.`,
		Flags: []cli.Flag{
			modelFlag(),
			algorithmFlag(),
			strictVersionFlag(),
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "maximum number of files validated at once (default from config)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("expected at least one FILE argument")
			}

			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}

			v, err := newValidator(ctx, cmd)
			if err != nil {
				return err
			}

			targetModel, err := parseModel(cmd, v.Table())
			if err != nil {
				return err
			}

			concurrency := configFrom(ctx).Concurrency
			if cmd.IsSet("concurrency") {
				concurrency = int(cmd.Int("concurrency"))
			}
			if concurrency < 1 {
				return fmt.Errorf("invalid --concurrency: %d, must be at least 1", concurrency)
			}

			batch, err := v.ValidateAll(ctx, paths, targetModel, concurrency)
			if err != nil {
				return err
			}

			if err := emit(ctx, cmd, outFormat, batch, renderers{
				text: func(w io.Writer) error { return report.WriteBatchSummary(w, batch) },
			}); err != nil {
				return err
			}

			if batch.Failed > 0 {
				return errValidationFailed
			}
			return nil
		},
	}
}
