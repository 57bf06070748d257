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
	"github.com/arubamgr/fwvalidate/pkg/validator"
)

func checksumCmd() *cli.Command {
	return &cli.Command{
		Name:                  "checksum",
		EnableShellCompletion: true,
		Usage:                 "Compute the checksum of a firmware image",
		ArgsUsage:             "FILE",
		Description: `Computes the digest of FILE without running the other validation stages.

The text format prints "SHA256: <hex>"; structured formats emit
{file, algorithm, checksum}.`,
		Flags: []cli.Flag{
			algorithmFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one FILE argument, got %d", cmd.Args().Len())
			}

			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}

			v, err := newValidator(ctx, cmd)
			if err != nil {
				return err
			}

			return runChecksum(ctx, cmd, v, cmd.Args().First(), outFormat)
		},
	}
}

func runChecksum(ctx context.Context, cmd *cli.Command, v *validator.Validator, path, outFormat string) error {
	res, err := v.Checksum(path, "")
	if err != nil {
		return fmt.Errorf("%w: %w", errValidationFailed, err)
	}

	return emit(ctx, cmd, outFormat, res, renderers{
		text: func(w io.Writer) error { return report.WriteChecksum(w, res) },
	})
}
