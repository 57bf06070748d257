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
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/model"
	"github.com/arubamgr/fwvalidate/pkg/serializer"
	"github.com/arubamgr/fwvalidate/pkg/validator"
)

// Human-oriented formats handled by the report package.
const (
	formatText = "text"
	formatPDF  = "pdf"
)

func supportedFormats() []string {
	return append([]string{formatText}, append(serializer.SupportedFormats(), formatPDF)...)
}

// stringOr returns the flag value when it was set explicitly, else fallback.
func stringOr(cmd *cli.Command, flag, fallback string) string {
	if cmd.IsSet(flag) || fallback == "" {
		return cmd.String(flag)
	}
	return fallback
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(ctx context.Context, cmd *cli.Command) (string, error) {
	outFormat := strings.ToLower(stringOr(cmd, "format", configFrom(ctx).Format))
	if !slices.Contains(supportedFormats(), outFormat) {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(supportedFormats(), ", "))
	}
	return outFormat, nil
}

// parseAlgorithm resolves --algorithm against the configured default.
func parseAlgorithm(ctx context.Context, cmd *cli.Command) (digest.Algorithm, error) {
	alg, err := digest.ParseAlgorithm(stringOr(cmd, "algorithm", configFrom(ctx).Algorithm))
	if err != nil {
		return "", fmt.Errorf("invalid --algorithm: %w, supported values: %v", err, digest.SupportedAlgorithms())
	}
	return alg, nil
}

// parseModel validates --model against the table. An empty model is allowed.
func parseModel(cmd *cli.Command, table *model.Table) (string, error) {
	m := strings.TrimSpace(cmd.String("model"))
	if m == "" {
		return "", nil
	}
	if _, ok := table.Lookup(m); !ok {
		return "", fmt.Errorf("invalid --model: %w", table.UnsupportedError(m))
	}
	return m, nil
}

// newValidator builds a Validator from config and the command's flags.
func newValidator(ctx context.Context, cmd *cli.Command) (*validator.Validator, error) {
	alg, err := parseAlgorithm(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return validator.New(
		validator.WithVersion(version),
		validator.WithLogger(slog.Default()),
		validator.WithAlgorithm(alg),
		validator.WithStrictVersion(cmd.Bool("strict-version")),
	), nil
}

// renderers holds the human-oriented renderings of a resource.
type renderers struct {
	text func(io.Writer) error
	pdf  func(io.Writer) error
}

// emit writes data to --output (or the command's writer) in format.
func emit(ctx context.Context, cmd *cli.Command, format string, data any, r renderers) error {
	path := strings.TrimSpace(cmd.String("output"))

	switch {
	case format == formatText && r.text != nil:
		return withOutput(cmd, path, r.text)
	case format == formatText:
		format = string(serializer.FormatTable)
	case format == formatPDF && r.pdf == nil:
		return fmt.Errorf("pdf output is not supported by %s", cmd.Name)
	case format == formatPDF:
		if path == "" || path == serializer.StdoutURI {
			return fmt.Errorf("pdf output requires --output")
		}
		return withOutput(cmd, path, r.pdf)
	}

	var ser serializer.Serializer
	if path == "" || path == serializer.StdoutURI {
		ser = serializer.NewWriter(serializer.Format(format), cmd.Root().Writer)
	} else {
		w, err := serializer.NewFileWriterOrStdout(serializer.Format(format), path)
		if err != nil {
			return err
		}
		if c, ok := w.(serializer.Closer); ok {
			defer func() {
				if cerr := c.Close(); cerr != nil {
					slog.Warn("failed to close output", "path", path, "error", cerr)
				}
			}()
		}
		ser = w
	}

	return ser.Serialize(ctx, data)
}

// withOutput calls write with the --output file, or the command's writer.
func withOutput(cmd *cli.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == serializer.StdoutURI {
		return write(cmd.Root().Writer)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
