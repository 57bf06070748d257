/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package naming validates AOS-CX firmware filenames and extracts the
// embedded firmware version.
//
// The naming convention is ArubaOS-CX_<descriptor>.swi (case-sensitive).
// Versions are extracted by trying recognized patterns in priority order;
// the first match wins:
//
//	ArubaOS-CX_6200_10_13_1000.swi   -> LL.10.13.1000 (placeholder train)
//	ArubaOS-CX_FL.10.13.1000.swi     -> FL.10.13.1000
//
// The underscore form does not carry the two-letter release train, so a
// placeholder "LL" is substituted and Match.PlaceholderTrain is set.
package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/arubamgr/fwvalidate/pkg/errors"
)

const (
	// Prefix is the required filename prefix.
	Prefix = "ArubaOS-CX_"

	// Extension is the required filename extension.
	Extension = ".swi"

	// PlaceholderTrain replaces the release-train code when it cannot be recovered.
	PlaceholderTrain = "LL"
)

// PatternName identifies which recognized version pattern matched.
type PatternName string

const (
	PatternUnderscoreTriad PatternName = "underscore-triad"
	PatternDotted          PatternName = "dotted"
)

var (
	conventionRe = regexp.MustCompile(`^ArubaOS-CX_.+\.swi$`)
	canonicalRe  = regexp.MustCompile(`^([A-Z]{2})\.(\d{2})\.(\d{2})\.(\d{4})$`)
)

type versionPattern struct {
	name PatternName
	re   *regexp.Regexp
	// render builds the version string from the submatches (without the full match).
	render func(groups []string) (string, bool)
}

// versionPatterns are tried in order; the first match wins.
var versionPatterns = []versionPattern{
	{
		// the descriptor accepts letters and digits of any script, not only ASCII
		name: PatternUnderscoreTriad,
		re:   regexp.MustCompile(`ArubaOS-CX_[\p{L}\p{N}_]+_(\d+)_(\d+)_(\d+)\.swi`),
		render: func(g []string) (string, bool) {
			return fmt.Sprintf("%s.%s.%s.%s", PlaceholderTrain, g[0], g[1], g[2]), true
		},
	},
	{
		name: PatternDotted,
		re:   regexp.MustCompile(`([A-Z]{2})\.(\d{2})\.(\d{2})\.(\d{4})`),
		render: func(g []string) (string, bool) {
			return fmt.Sprintf("%s.%s.%s.%s", g[0], g[1], g[2], g[3]), false
		},
	},
}

// MatchesConvention reports whether the base name of path follows the
// ArubaOS-CX_<descriptor>.swi convention.
func MatchesConvention(path string) bool {
	return conventionRe.MatchString(filepath.Base(path))
}

// ConventionError returns a PATTERN_MISMATCH error describing why name was
// rejected, or nil if it matches.
func ConventionError(path string) error {
	name := filepath.Base(path)
	if MatchesConvention(name) {
		return nil
	}
	return errors.New(errors.ErrCodePatternMismatch,
		fmt.Sprintf("invalid filename: %s, expected: %s*%s", name, Prefix, Extension))
}

// Match is the result of a successful version extraction.
type Match struct {
	// Version is the extracted version in LL.NN.NN.NNNN form.
	Version string `json:"version" yaml:"version"`

	// Pattern names the recognized pattern that matched.
	Pattern PatternName `json:"pattern" yaml:"pattern"`

	// Expr is the regular expression of the matching pattern.
	Expr string `json:"expr" yaml:"expr"`

	// PlaceholderTrain is true when the release-train letters were substituted.
	PlaceholderTrain bool `json:"placeholderTrain" yaml:"placeholderTrain"`
}

// ExtractVersion extracts the firmware version from the base name of path.
// Returns false if no recognized pattern matches.
func ExtractVersion(path string) (Match, bool) {
	name := filepath.Base(path)
	for _, p := range versionPatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		version, placeholder := p.render(m[1:])
		return Match{
			Version:          version,
			Pattern:          p.name,
			Expr:             p.re.String(),
			PlaceholderTrain: placeholder,
		}, true
	}
	return Match{}, false
}

// Version is a parsed canonical AOS-CX version (e.g. FL.10.13.1000).
type Version struct {
	Train string `json:"train" yaml:"train"`
	Major int    `json:"major" yaml:"major"`
	Minor int    `json:"minor" yaml:"minor"`
	Build int    `json:"build" yaml:"build"`
}

// String renders the version in canonical form.
func (v Version) String() string {
	return fmt.Sprintf("%s.%02d.%02d.%04d", v.Train, v.Major, v.Minor, v.Build)
}

// ParseVersion parses a version in canonical LL.NN.NN.NNNN form.
func ParseVersion(s string) (Version, error) {
	m := canonicalRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, errors.New(errors.ErrCodePatternMismatch,
			fmt.Sprintf("invalid version %q, expected format LL.NN.NN.NNNN", s))
	}

	// the regexp guarantees digits, so Atoi cannot fail
	major, _ := strconv.Atoi(m[2])
	minor, _ := strconv.Atoi(m[3])
	build, _ := strconv.Atoi(m[4])

	return Version{
		Train: m[1],
		Major: major,
		Minor: minor,
		Build: build,
	}, nil
}
