/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/arubamgr/fwvalidate/pkg/header"
	"github.com/arubamgr/fwvalidate/pkg/model"
	"github.com/arubamgr/fwvalidate/pkg/validator"
)

// ModelTable is the serialized form of the compatibility table.
type ModelTable struct {
	header.Header `json:",inline" yaml:",inline"`

	Models []model.Constraint `json:"models" yaml:"models"`
}

func modelsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "models",
		EnableShellCompletion: true,
		Usage:                 "List supported switch models and their image size envelopes",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}

			mt := &ModelTable{Models: model.DefaultTable().Constraints()}
			mt.Init(header.KindModelTable, validator.APIVersion, version, time.Now())

			return emit(ctx, cmd, outFormat, mt, renderers{
				text: func(w io.Writer) error { return writeModels(w, mt.Models) },
			})
		},
	}
}

func writeModels(w io.Writer, models []model.Constraint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tMIN (MB)\tMAX (MB)")
	for _, c := range models {
		fmt.Fprintf(tw, "%s\t%g\t%g\n", c.Model, c.MinMB, c.MaxMB)
	}
	return tw.Flush()
}
