/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/urfave/cli/v3"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Flags: []cli.Flag{
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(ctx, cmd)
			if err != nil {
				return err
			}

			info := BuildInfo{
				Name:      name,
				Version:   version,
				Commit:    commit,
				Date:      date,
				GoVersion: runtime.Version(),
			}

			return emit(ctx, cmd, outFormat, info, renderers{
				text: func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s %s (commit %s, built %s, %s)\n",
						info.Name, info.Version, info.Commit, info.Date, info.GoVersion)
					return err
				},
			})
		},
	}
}
