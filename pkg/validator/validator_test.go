/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/errors"
	"github.com/arubamgr/fwvalidate/pkg/header"
	"github.com/arubamgr/fwvalidate/pkg/model"
	"github.com/arubamgr/fwvalidate/pkg/naming"
)

const mb = 1024 * 1024

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestValidator(opts ...Option) *Validator {
	base := []Option{
		WithLogger(quietLogger()),
		WithAlgorithm(digest.XXHash),
		WithVersion("v0.0.0-test"),
	}
	return New(append(base, opts...)...)
}

// sparseFile creates a file of the given size without writing its bytes.
func sparseFile(t *testing.T, name string, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func stagesOf(r *Report) []Stage {
	out := make([]Stage, 0, len(r.Results))
	for _, cr := range r.Results {
		out = append(out, cr.Stage)
	}
	return out
}

func TestValidate_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ArubaOS-CX_6200_10_13_1000.swi")

	report := newTestValidator().Validate(path, "6200")

	require.Len(t, report.Results, 1)
	cr := report.Results[0]
	assert.Equal(t, StageExistence, cr.Stage)
	assert.False(t, cr.Passed)
	assert.Nil(t, cr.Detail)
	assert.Contains(t, cr.Error, "not found")
	assert.Equal(t, errors.ErrCodeNotFound, cr.Code)

	assert.False(t, report.Summary.OverallPassed)
	assert.Equal(t, 6, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Ran)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 5, report.Summary.Skipped)

	_, ok := report.Result(StageChecksum)
	assert.False(t, ok, "skipped stages must not be recorded")
}

func TestValidate_DirectoryIsNotAFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ArubaOS-CX_6200.swi")
	require.NoError(t, os.Mkdir(dir, 0o755))

	report := newTestValidator().Validate(dir, "")

	require.Len(t, report.Results, 1)
	assert.Equal(t, errors.ErrCodeNotFound, report.Results[0].Code)
	assert.Contains(t, report.Results[0].Error, "not a regular file")
	assert.False(t, report.Summary.OverallPassed)
}

func TestValidate_InferredModelWithinEnvelope(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6200_firmware.swi", 600*mb)

	report := newTestValidator().Validate(path, "")

	assert.Equal(t, Stages(), stagesOf(report))

	fn, ok := report.Result(StageFilenameConvention)
	require.True(t, ok)
	assert.True(t, fn.Passed)

	size, ok := report.Result(StageFileSize)
	require.True(t, ok)
	require.True(t, size.Passed)
	assert.Equal(t, SizeDetail{SizeBytes: 600 * mb, SizeMB: 600}, size.Detail)

	ver, ok := report.Result(StageVersionExtraction)
	require.True(t, ok)
	assert.False(t, ver.Passed)
	assert.True(t, ver.Advisory)
	assert.Equal(t, errors.ErrCodePatternMismatch, ver.Code)

	mc, ok := report.Result(StageModelCompatibility)
	require.True(t, ok)
	require.True(t, mc.Passed)
	detail, ok := mc.Detail.(ModelDetail)
	require.True(t, ok)
	assert.Equal(t, "6200", detail.Model)
	assert.True(t, detail.Inferred)
	assert.Equal(t, 450.0, detail.MinMB)
	assert.Equal(t, 900.0, detail.MaxMB)

	assert.True(t, report.Summary.OverallPassed)
	assert.Equal(t, 1, report.Summary.Warnings)
	assert.Equal(t, 0, report.Summary.Failed)
}

func TestValidate_TooSmallForEnvelopeAndModel(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6200_firmware.swi", 300*mb)

	report := newTestValidator().Validate(path, "")

	size, ok := report.Result(StageFileSize)
	require.True(t, ok)
	assert.False(t, size.Passed)
	assert.Equal(t, errors.ErrCodeSizeOutOfRange, size.Code)
	assert.Contains(t, size.Error, "too small")
	assert.Contains(t, size.Error, "400MB")
	assert.Equal(t, model.DirectionTooSmall, size.Direction)

	mc, ok := report.Result(StageModelCompatibility)
	require.True(t, ok)
	assert.False(t, mc.Passed)
	assert.Equal(t, errors.ErrCodeSizeOutOfRange, mc.Code)
	assert.Equal(t, "file too small for 6200: 300.0MB (min: 450MB)", mc.Error)
	assert.Equal(t, model.DirectionTooSmall, mc.Direction)

	// later stages still ran
	sum, ok := report.Result(StageChecksum)
	require.True(t, ok)
	assert.True(t, sum.Passed)

	assert.False(t, report.Summary.OverallPassed)
	assert.Equal(t, 2, report.Summary.Failed)
}

func TestValidate_TooLarge(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6100_10_13_1000.swi", 900*mb)

	report := newTestValidator().Validate(path, "")

	size, _ := report.Result(StageFileSize)
	assert.True(t, size.Passed)

	mc, _ := report.Result(StageModelCompatibility)
	assert.False(t, mc.Passed)
	assert.Equal(t, "file too large for 6100: 900.0MB (max: 800MB)", mc.Error)
	assert.Equal(t, model.DirectionTooLarge, mc.Direction)

	fn, _ := report.Result(StageFilenameConvention)
	assert.Empty(t, fn.Direction)
	assert.False(t, report.Summary.OverallPassed)
}

func TestValidate_FilenameIndependentOfContent(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"convention", "ArubaOS-CX_6300_10_13_1000.swi", true},
		{"minimal descriptor", "ArubaOS-CX_x.swi", true},
		{"wrong extension", "ArubaOS-CX_6300.bin", false},
		{"wrong prefix", "arubaos-cx_6300.swi", false},
		{"missing descriptor", "ArubaOS-CX_.swi", false},
	}

	contents := []string{"", "abcdefghij", "\x00\x01\x02"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range contents {
				report := newTestValidator().Validate(writeFile(t, tt.file, c), "")
				cr, ok := report.Result(StageFilenameConvention)
				require.True(t, ok)
				assert.Equal(t, tt.want, cr.Passed)
				if !tt.want {
					assert.Equal(t, errors.ErrCodePatternMismatch, cr.Code)
					assert.Contains(t, cr.Error, "expected: ArubaOS-CX_*.swi")
				}
			}
		})
	}
}

func TestValidate_InferredMatchesExplicit(t *testing.T) {
	for _, size := range []int64{300 * mb, 700 * mb, 1300 * mb} {
		path := sparseFile(t, "ArubaOS-CX_8320_10_13_1000.swi", size)
		v := newTestValidator()

		inferred, _ := v.Validate(path, "").Result(StageModelCompatibility)
		explicit, _ := v.Validate(path, "8320").Result(StageModelCompatibility)

		assert.Equal(t, explicit.Passed, inferred.Passed)
		assert.Equal(t, explicit.Error, inferred.Error)
		if explicit.Passed {
			ed := explicit.Detail.(ModelDetail)
			id := inferred.Detail.(ModelDetail)
			assert.Equal(t, ed.MinMB, id.MinMB)
			assert.Equal(t, ed.MaxMB, id.MaxMB)
			assert.False(t, ed.Inferred)
			assert.True(t, id.Inferred)
		}
	}
}

func TestValidate_ExplicitModelOverridesInference(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6200_10_13_1000.swi", 500*mb)

	report := newTestValidator().Validate(path, "6400")

	mc, _ := report.Result(StageModelCompatibility)
	assert.False(t, mc.Passed)
	assert.Equal(t, "file too small for 6400: 500.0MB (min: 600MB)", mc.Error)
}

func TestValidate_UnsupportedModel(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6200_10_13_1000.swi", 500*mb)

	report := newTestValidator().Validate(path, "8335")

	mc, _ := report.Result(StageModelCompatibility)
	assert.False(t, mc.Passed)
	assert.Equal(t, errors.ErrCodeUnsupportedModel, mc.Code)
	assert.Contains(t, mc.Error, "unsupported model: 8335")
	assert.Contains(t, mc.Error, "did you mean 8325")
	assert.False(t, report.Summary.OverallPassed)
}

func TestValidate_NoModelIsGeneric(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_FL.10.13.1000.swi", 500*mb)

	report := newTestValidator().Validate(path, "")

	mc, _ := report.Result(StageModelCompatibility)
	require.True(t, mc.Passed)
	detail := mc.Detail.(ModelDetail)
	assert.Empty(t, detail.Model)
	assert.NotEmpty(t, detail.Note)

	ver, _ := report.Result(StageVersionExtraction)
	require.True(t, ver.Passed)
	assert.Equal(t, "FL.10.13.1000", ver.Detail.(VersionDetail).Version)

	assert.True(t, report.Summary.OverallPassed)
	assert.Equal(t, 6, report.Summary.Passed)
}

func TestValidate_PlaceholderVersion(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6300_10_13_1000.swi", 500*mb)

	report := newTestValidator().Validate(path, "")

	ver, _ := report.Result(StageVersionExtraction)
	require.True(t, ver.Passed)
	detail := ver.Detail.(VersionDetail)
	assert.Equal(t, "LL.10.13.1000", detail.Version)
	assert.True(t, detail.PlaceholderTrain)
	require.NotNil(t, detail.Release)
	assert.Equal(t, naming.Version{Train: "LL", Major: 10, Minor: 13, Build: 1000}, *detail.Release)
}

func TestValidate_ReleaseParsing(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		release *naming.Version
	}{
		{"dotted", "ArubaOS-CX_FL.10.14.0001.swi", &naming.Version{Train: "FL", Major: 10, Minor: 14, Build: 1}},
		{"non-canonical triad", "ArubaOS-CX_6300_1_2_3.swi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := sparseFile(t, tt.file, 500*mb)

			report := newTestValidator().Validate(path, "")

			ver, _ := report.Result(StageVersionExtraction)
			require.True(t, ver.Passed)
			assert.Equal(t, tt.release, ver.Detail.(VersionDetail).Release)
		})
	}
}

func TestValidate_StrictVersion(t *testing.T) {
	path := sparseFile(t, "ArubaOS-CX_6200_firmware.swi", 600*mb)

	report := newTestValidator(WithStrictVersion(true)).Validate(path, "")

	ver, _ := report.Result(StageVersionExtraction)
	assert.False(t, ver.Passed)
	assert.False(t, ver.Advisory)
	assert.True(t, ver.Blocking())
	assert.False(t, report.Summary.OverallPassed)
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestValidate_BoundaryIsInclusive(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want bool
	}{
		{"at model min", 450 * mb, true},
		{"at model max", 900 * mb, true},
		{"rounds up to min", 450*mb - 40*1024, true},
		{"just below min", 449*mb + 900*1024, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := sparseFile(t, "ArubaOS-CX_6200_10_13_1000.swi", tt.size)
			mc, _ := newTestValidator().Validate(path, "").Result(StageModelCompatibility)
			assert.Equal(t, tt.want, mc.Passed, mc.Error)
		})
	}
}

func TestValidate_EnvelopeOption(t *testing.T) {
	path := writeFile(t, "ArubaOS-CX_tiny.swi", "abcdefghij")

	report := newTestValidator(WithEnvelope(0, 1)).Validate(path, "")

	size, _ := report.Result(StageFileSize)
	require.True(t, size.Passed)
	assert.Equal(t, int64(10), size.Detail.(SizeDetail).SizeBytes)
	assert.Equal(t, 0.0, size.Detail.(SizeDetail).SizeMB)
}

func TestValidate_CustomTable(t *testing.T) {
	table, err := model.NewTable(model.Constraint{Model: "tiny", MinMB: 0, MaxMB: 1})
	require.NoError(t, err)
	path := writeFile(t, "ArubaOS-CX_tiny_10_13_1000.swi", "abcdefghij")

	report := newTestValidator(WithTable(table), WithEnvelope(0, 1)).Validate(path, "")

	mc, _ := report.Result(StageModelCompatibility)
	require.True(t, mc.Passed)
	assert.Equal(t, "tiny", mc.Detail.(ModelDetail).Model)
	assert.True(t, report.Summary.OverallPassed)
}

func TestValidate_ChecksumDetail(t *testing.T) {
	path := writeFile(t, "ArubaOS-CX_6200.swi", "abcdefghij")

	report := New(WithLogger(quietLogger())).Validate(path, "")

	cs, ok := report.Result(StageChecksum)
	require.True(t, ok)
	require.True(t, cs.Passed)
	assert.Equal(t, ChecksumDetail{
		Algorithm: digest.SHA256,
		Checksum:  "72399361da6a7754fec986dca5b7cbaf1c810a28ded4abaf56b2106d06cb78b0",
	}, cs.Detail)
}

func TestValidate_ResultInvariant(t *testing.T) {
	path := sparseFile(t, "firmware.bin", 300*mb)

	report := newTestValidator().Validate(path, "6200")

	for _, cr := range report.Results {
		if cr.Passed {
			assert.NotNil(t, cr.Detail, cr.Stage)
			assert.Empty(t, cr.Error, cr.Stage)
			assert.Empty(t, cr.Code, cr.Stage)
		} else {
			assert.Nil(t, cr.Detail, cr.Stage)
			assert.NotEmpty(t, cr.Error, cr.Stage)
			assert.NotEmpty(t, cr.Code, cr.Stage)
		}
	}
	assert.Len(t, report.Errors(), report.Summary.Failed+report.Summary.Warnings)
}

func TestValidate_Header(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	path := writeFile(t, "ArubaOS-CX_6200.swi", "x")

	v := newTestValidator(WithClock(func() time.Time { return at }))
	first := v.Validate(path, "")
	second := v.Validate(path, "")

	assert.Equal(t, header.KindValidationReport, first.Kind)
	assert.Equal(t, APIVersion, first.APIVersion)
	assert.Equal(t, "v0.0.0-test", first.Metadata[header.MetadataVersion])
	assert.Equal(t, "2025-06-01T12:00:00Z", first.Metadata[header.MetadataTimestamp])
	assert.Equal(t, at, first.Summary.GeneratedAt)
	assert.NotEmpty(t, first.Metadata[header.MetadataRunID])
	assert.NotEqual(t, first.Metadata[header.MetadataRunID], second.Metadata[header.MetadataRunID])
}

func TestRoundMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  float64
	}{
		{0, 0},
		{mb, 1},
		{mb + mb/10, 1.1},
		{mb + mb/25, 1},
		{600 * mb, 600},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundMB(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestChecksum(t *testing.T) {
	v := newTestValidator()

	t.Run("known digest independent of name", func(t *testing.T) {
		for _, name := range []string{"ArubaOS-CX_6200.swi", "anything.txt"} {
			res, err := v.Checksum(writeFile(t, name, "abcdefghij"), digest.SHA256)
			require.NoError(t, err)
			assert.Equal(t, "72399361da6a7754fec986dca5b7cbaf1c810a28ded4abaf56b2106d06cb78b0", res.Checksum)
			assert.Equal(t, digest.SHA256, res.Algorithm)
			assert.Equal(t, header.KindChecksumResult, res.Kind)
		}
	})

	t.Run("defaults to configured algorithm", func(t *testing.T) {
		res, err := New(WithLogger(quietLogger()), WithAlgorithm(digest.MD5)).
			Checksum(writeFile(t, "f", "abcdefghij"), "")
		require.NoError(t, err)
		assert.Equal(t, digest.MD5, res.Algorithm)
		assert.Equal(t, "a925576942e94b2ef57a066101b48876", res.Checksum)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := v.Checksum(filepath.Join(t.TempDir(), "nope"), digest.SHA256)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := v.Checksum(t.TempDir(), digest.SHA256)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := v.Checksum(writeFile(t, "f", "x"), digest.Algorithm("blake3"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
	})
}

func TestValidateAll(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ArubaOS-CX_tiny_10_13_1000.swi")
	bad := filepath.Join(dir, "firmware.bin")
	missing := filepath.Join(dir, "ArubaOS-CX_missing.swi")
	require.NoError(t, os.WriteFile(good, []byte("abc"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("abc"), 0o600))

	v := newTestValidator(WithEnvelope(0, 1))
	paths := []string{good, bad, missing, good}

	batch, err := v.ValidateAll(context.Background(), paths, "", 2)
	require.NoError(t, err)

	require.Len(t, batch.Reports, len(paths))
	for i, r := range batch.Reports {
		assert.Equal(t, paths[i], r.TargetPath, "order must follow input")
	}
	assert.Equal(t, 2, batch.Passed)
	assert.Equal(t, 2, batch.Failed)
	assert.Equal(t, header.KindBatchReport, batch.Kind)
	assert.Len(t, batch.Reports[2].Results, 1)
}

func TestValidateAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestValidator().ValidateAll(ctx, []string{"a", "b"}, "", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateAll_Empty(t *testing.T) {
	batch, err := newTestValidator().ValidateAll(context.Background(), nil, "", 0)
	require.NoError(t, err)
	assert.Empty(t, batch.Reports)
	assert.Zero(t, batch.Passed)
	assert.Zero(t, batch.Failed)
}
