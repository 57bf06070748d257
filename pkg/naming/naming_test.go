/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arubamgr/fwvalidate/pkg/errors"
)

func TestMatchesConvention(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"simple", "ArubaOS-CX_6200_firmware.swi", true},
		{"dotted version", "ArubaOS-CX_FL.10.13.1000.swi", true},
		{"with directory", "/srv/staging/ArubaOS-CX_6300.swi", true},
		{"empty descriptor", "ArubaOS-CX_.swi", false},
		{"lowercase prefix", "arubaos-cx_6200.swi", false},
		{"uppercase extension", "ArubaOS-CX_6200.SWI", false},
		{"missing suffix", "ArubaOS-CX_6200", false},
		{"wrong extension", "ArubaOS-CX_6200.bin", false},
		{"trailing text", "ArubaOS-CX_6200.swi.bak", false},
		{"wrong prefix", "firmware_6200.swi", false},
		{"directory only matches base", "/ArubaOS-CX_dir.swi/other.bin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesConvention(tt.path))
		})
	}
}

func TestConventionError(t *testing.T) {
	assert.NoError(t, ConventionError("ArubaOS-CX_6200.swi"))

	err := ConventionError("/tmp/firmware.bin")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePatternMismatch, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "firmware.bin")
	assert.Contains(t, err.Error(), "ArubaOS-CX_*.swi")
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantOK      bool
		wantVersion string
		wantPattern PatternName
		placeholder bool
	}{
		{
			name:        "underscore triad",
			path:        "ArubaOS-CX_6200_10_13_1000.swi",
			wantOK:      true,
			wantVersion: "LL.10.13.1000",
			wantPattern: PatternUnderscoreTriad,
			placeholder: true,
		},
		{
			name:        "underscore triad with longer descriptor",
			path:        "/srv/ArubaOS-CX_FL_6300_10_14_0001.swi",
			wantOK:      true,
			wantVersion: "LL.10.14.0001",
			wantPattern: PatternUnderscoreTriad,
			placeholder: true,
		},
		{
			name:        "underscore triad with non-ASCII descriptor",
			path:        "ArubaOS-CX_Zürich_6300_10_13_1000.swi",
			wantOK:      true,
			wantVersion: "LL.10.13.1000",
			wantPattern: PatternUnderscoreTriad,
			placeholder: true,
		},
		{
			name:   "underscore triad rejects punctuation in descriptor",
			path:   "ArubaOS-CX_6300-beta+1_10_13_1000.swi",
			wantOK: false,
		},
		{
			name:        "dotted",
			path:        "ArubaOS-CX_FL.10.13.1000.swi",
			wantOK:      true,
			wantVersion: "FL.10.13.1000",
			wantPattern: PatternDotted,
		},
		{
			name:        "dotted anywhere in name",
			path:        "backup-GL.10.09.0010-copy.img",
			wantOK:      true,
			wantVersion: "GL.10.09.0010",
			wantPattern: PatternDotted,
		},
		{
			name:        "dotted when triad cannot match",
			path:        "ArubaOS-CX_FL.10.13.1000_10_14_0002.swi",
			wantOK:      true,
			wantVersion: "FL.10.13.1000",
			wantPattern: PatternDotted,
		},
		{
			name:   "no version",
			path:   "ArubaOS-CX_6200_firmware.swi",
			wantOK: false,
		},
		{
			name:   "lowercase train not recognized",
			path:   "ArubaOS-CX_fl.10.13.1000.swi",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ExtractVersion(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantVersion, m.Version)
			assert.Equal(t, tt.wantPattern, m.Pattern)
			assert.Equal(t, tt.placeholder, m.PlaceholderTrain)
			assert.NotEmpty(t, m.Expr)
		})
	}
}

func TestExtractVersion_PriorityOrder(t *testing.T) {
	// both patterns match; the underscore triad is tried first
	m, ok := ExtractVersion("GL.10.13.1000-ArubaOS-CX_6200_10_14_0002.swi")
	require.True(t, ok)
	assert.Equal(t, PatternUnderscoreTriad, m.Pattern)
	assert.Equal(t, "LL.10.14.0002", m.Version)
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("FL.10.13.1000")
	require.NoError(t, err)
	assert.Equal(t, Version{Train: "FL", Major: 10, Minor: 13, Build: 1000}, v)
	assert.Equal(t, "FL.10.13.1000", v.String())

	v, err = ParseVersion("LL.10.09.0010")
	require.NoError(t, err)
	assert.Equal(t, "LL.10.09.0010", v.String())

	for _, bad := range []string{"", "10.13.1000", "FL.10.13.100", "fl.10.13.1000", "FL.10.13.1000.1"} {
		_, err := ParseVersion(bad)
		assert.Error(t, err, bad)
		assert.Equal(t, errors.ErrCodePatternMismatch, errors.CodeOf(err), bad)
	}
}
