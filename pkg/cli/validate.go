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

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a firmware image before deployment",
		ArgsUsage:             "FILE",
		Description: `Runs every validation stage against FILE and reports all problems at once:

  - existence: FILE must be a regular file (other stages are skipped otherwise)
  - filename_convention: name must match ArubaOS-CX_*.swi
  - file_size: size must be within 400-2000 MB
  - checksum: digest of the full contents
  - version_extraction: version embedded in the filename (advisory unless --strict-version)
  - model_compatibility: size must fit the target model's envelope

Exits 0 when the image passes and 1 when it does not.

# Examples

Validate against an explicit model:
  fwvalidate validate --model 6300 ArubaOS-CX_6300_10_13_1000.swi

Write a JSON report:
  fwvalidate validate --format json --output report.json ArubaOS-CX_6300_10_13_1000.swi

Produce a PDF certificate for a change record:
  fwvalidate validate --format pdf --output cert.pdf ArubaOS-CX_6300_10_13_1000.swi`,
		Flags: []cli.Flag{
			modelFlag(),
			algorithmFlag(),
			strictVersionFlag(),
			&cli.BoolFlag{
				Name:  "checksum-only",
				Usage: "only compute the checksum, same as the checksum command",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one FILE argument, got %d", cmd.Args().Len())
			}
			path := cmd.Args().First()

			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}

			v, err := newValidator(ctx, cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("checksum-only") {
				return runChecksum(ctx, cmd, v, path, outFormat)
			}

			targetModel, err := parseModel(cmd, v.Table())
			if err != nil {
				return err
			}

			rep := v.Validate(path, targetModel)

			if err := emit(ctx, cmd, outFormat, rep, renderers{
				text: func(w io.Writer) error { return report.WriteSummary(w, rep) },
				pdf:  func(w io.Writer) error { return report.WritePDF(w, rep) },
			}); err != nil {
				return err
			}

			if !rep.Summary.OverallPassed {
				return errValidationFailed
			}
			return nil
		},
	}
}
