/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/model"
)

// Flags are built per command tree so repeated runs start from defaults.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   formatText,
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(supportedFormats(), ", ")),
	}
}

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "model",
		Aliases: []string{"m"},
		Usage: fmt.Sprintf("target switch model, inferred from the filename when omitted (%s)",
			strings.Join(model.DefaultTable().IDs(), ", ")),
	}
}

func algorithmFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Value:   string(digest.Default),
		Usage:   fmt.Sprintf("checksum algorithm %v", digest.SupportedAlgorithms()),
	}
}

func strictVersionFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "strict-version",
		Usage: "fail validation when no version can be extracted from the filename",
	}
}
