/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arubamgr/fwvalidate/pkg/validator"
)

const (
	markPassed   = "✓"
	markFailed   = "✗"
	markAdvisory = "!"

	// checksumPreview is the number of hex digits shown in summaries.
	checksumPreview = 16
)

// StageTitle returns the display name of a stage, e.g. "File Size".
func StageTitle(s validator.Stage) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s.String(), "_", " "))
}

// ShortChecksum truncates a hex digest for display.
func ShortChecksum(hex string) string {
	if len(hex) <= checksumPreview {
		return hex
	}
	return hex[:checksumPreview] + "..."
}

// Facts holds the headline values of a report, when their stages passed.
type Facts struct {
	SizeMB    *float64
	Version   string
	Algorithm string
	Checksum  string
	Model     string
}

// FactsOf extracts the headline values from r.
func FactsOf(r *validator.Report) Facts {
	var f Facts
	for _, cr := range r.Results {
		switch d := cr.Detail.(type) {
		case validator.SizeDetail:
			mb := d.SizeMB
			f.SizeMB = &mb
		case validator.VersionDetail:
			f.Version = d.Version
		case validator.ChecksumDetail:
			f.Algorithm = strings.ToUpper(string(d.Algorithm))
			f.Checksum = d.Checksum
		case validator.ModelDetail:
			f.Model = d.Model
		}
	}
	return f
}

// WriteSummary writes a human-readable summary of r to w.
func WriteSummary(w io.Writer, r *validator.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== FIRMWARE VALIDATION REPORT ===")
	fmt.Fprintf(bw, "File: %s\n", r.TargetPath)

	facts := FactsOf(r)
	if facts.SizeMB != nil {
		fmt.Fprintf(bw, "Size: %.1fMB\n", *facts.SizeMB)
	}
	if facts.Version != "" {
		fmt.Fprintf(bw, "Detected version: %s\n", facts.Version)
	}
	if facts.Checksum != "" {
		fmt.Fprintf(bw, "Checksum %s: %s\n", facts.Algorithm, ShortChecksum(facts.Checksum))
	}
	if facts.Model != "" {
		fmt.Fprintf(bw, "Model: %s\n", facts.Model)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Validation results:")
	for _, cr := range r.Results {
		switch {
		case cr.Passed:
			fmt.Fprintf(bw, "  %s %s\n", markPassed, StageTitle(cr.Stage))
		case cr.Advisory:
			fmt.Fprintf(bw, "  %s %s (advisory)\n", markAdvisory, StageTitle(cr.Stage))
			fmt.Fprintf(bw, "    Warning: %s\n", cr.Error)
		case cr.Direction != "":
			fmt.Fprintf(bw, "  %s %s (%s)\n", markFailed, StageTitle(cr.Stage), cr.Direction)
			fmt.Fprintf(bw, "    Error: %s\n", cr.Error)
		default:
			fmt.Fprintf(bw, "  %s %s\n", markFailed, StageTitle(cr.Stage))
			fmt.Fprintf(bw, "    Error: %s\n", cr.Error)
		}
	}

	status := markPassed + " PASSED"
	if !r.Summary.OverallPassed {
		status = markFailed + " FAILED"
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Overall status: %s\n", status)
	fmt.Fprintf(bw, "Validations passed: %d/%d\n", r.Summary.Passed, r.Summary.Total)

	return bw.Flush()
}

// WriteBatchSummary writes one line per file followed by the totals.
func WriteBatchSummary(w io.Writer, b *validator.BatchReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== FIRMWARE BATCH VALIDATION ===")
	for _, r := range b.Reports {
		mark := markPassed
		if !r.Summary.OverallPassed {
			mark = markFailed
		}
		fmt.Fprintf(bw, "%s %s (%d/%d)\n", mark, r.TargetPath, r.Summary.Passed, r.Summary.Total)
		for _, cr := range r.Results {
			if cr.Blocking() {
				fmt.Fprintf(bw, "    %s: %s\n", StageTitle(cr.Stage), cr.Error)
			}
		}
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Files passed: %d/%d\n", b.Passed, len(b.Reports))

	return bw.Flush()
}

// WriteChecksum writes a checksum result as "ALGORITHM: hex".
func WriteChecksum(w io.Writer, res *validator.ChecksumResult) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(string(res.Algorithm)), res.Checksum)
	return err
}
