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

	"github.com/arubamgr/fwvalidate/pkg/header"
	"github.com/arubamgr/fwvalidate/pkg/report"
	"github.com/arubamgr/fwvalidate/pkg/serializer"
	"github.com/arubamgr/fwvalidate/pkg/validator"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Render a saved validation report in another format",
		ArgsUsage:             "REPORT",
		Description: `Loads a report written by "validate --format json|yaml|msgpack" (the format
is taken from the file extension) and renders it again, e.g. as a PDF
certificate:

  fwvalidate render --format pdf --output cert.pdf report.json`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one REPORT argument, got %d", cmd.Args().Len())
			}

			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}

			rep, err := serializer.FromFile[validator.Report](cmd.Args().First())
			if err != nil {
				return err
			}
			if rep.Kind != header.KindValidationReport {
				return fmt.Errorf("unexpected resource kind %q, expected %q", rep.Kind, header.KindValidationReport)
			}
			slog.Debug("loaded report", "path", cmd.Args().First(), "results", len(rep.Results))

			return emit(ctx, cmd, outFormat, rep, renderers{
				text: func(w io.Writer) error { return report.WriteSummary(w, rep) },
				pdf:  func(w io.Writer) error { return report.WritePDF(w, rep) },
			})
		},
	}
}
