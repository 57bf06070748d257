/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/arubamgr/fwvalidate/pkg/defaults"
	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/errors"
	"github.com/arubamgr/fwvalidate/pkg/header"
	"github.com/arubamgr/fwvalidate/pkg/model"
	"github.com/arubamgr/fwvalidate/pkg/naming"
)

const (
	// APIVersion is the API version for validation resources.
	APIVersion = "fwvalidate.arubamgr.io/v1alpha1"

	bytesPerMB = 1024 * 1024
)

// Validator runs the firmware validation pipeline.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	logger        *slog.Logger
	algorithm     digest.Algorithm
	table         *model.Table
	minMB         float64
	maxMB         float64
	strictVersion bool
	now           func() time.Time
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithLogger returns an Option that sets the logger used for stage diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithAlgorithm returns an Option that sets the checksum algorithm of the pipeline.
func WithAlgorithm(a digest.Algorithm) Option {
	return func(v *Validator) {
		v.algorithm = a
	}
}

// WithTable returns an Option that replaces the model compatibility table.
func WithTable(t *model.Table) Option {
	return func(v *Validator) {
		if t != nil {
			v.table = t
		}
	}
}

// WithEnvelope returns an Option that sets the generic size envelope in MB.
func WithEnvelope(minMB, maxMB float64) Option {
	return func(v *Validator) {
		v.minMB = minMB
		v.maxMB = maxMB
	}
}

// WithStrictVersion returns an Option that makes a failed version
// extraction count against the overall verdict.
func WithStrictVersion(strict bool) Option {
	return func(v *Validator) {
		v.strictVersion = strict
	}
}

// WithClock returns an Option that sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:    slog.Default(),
		algorithm: digest.Default,
		table:     model.DefaultTable(),
		minMB:     defaults.GlobalMinSizeMB,
		maxMB:     defaults.GlobalMaxSizeMB,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Table returns the model compatibility table in use.
func (v *Validator) Table() *model.Table {
	return v.table
}

// run is the state shared by the stages of one pipeline invocation.
type run struct {
	path        string
	targetModel string

	// sizeMB is FileSize's rounded figure; it is kept even when FileSize
	// failed the generic envelope.
	sizeMB    float64
	sizeKnown bool
	sizeErr   error
}

type stageFunc func(*run) CheckResult

// Validate runs every stage against path and returns the report.
// targetModel may be empty, in which case the model is inferred from the
// filename. Expected validation failures are recorded in the report.
func (v *Validator) Validate(path, targetModel string) *Report {
	start := v.now()
	runID := uuid.NewString()

	log := v.logger.With("path", path, "run-id", runID)
	log.Debug("starting validation", "model", targetModel, "algorithm", v.algorithm)

	st := &run{path: path, targetModel: targetModel}
	pipeline := []struct {
		stage Stage
		fn    stageFunc
	}{
		{StageExistence, v.checkExistence},
		{StageFilenameConvention, v.checkFilename},
		{StageFileSize, v.checkFileSize},
		{StageChecksum, v.checkChecksum},
		{StageVersionExtraction, v.checkVersion},
		{StageModelCompatibility, v.checkModel},
	}

	report := &Report{
		TargetPath:  path,
		TargetModel: targetModel,
		Results:     make([]CheckResult, 0, len(pipeline)),
	}

	for _, p := range pipeline {
		stageStart := v.now()
		cr := p.fn(st)
		cr.Duration = v.now().Sub(stageStart)
		report.Results = append(report.Results, cr)

		recordStage(cr)
		switch {
		case cr.Passed:
			log.Debug("stage passed", "stage", p.stage, "duration", cr.Duration)
		case cr.Advisory:
			log.Warn("stage failed (advisory)", "stage", p.stage, "code", cr.Code, "error", cr.Error)
		default:
			log.Error("stage failed", "stage", p.stage, "code", cr.Code, "error", cr.Error)
		}

		if p.stage == StageExistence && !cr.Passed {
			break
		}
	}

	end := v.now()
	report.Summary = summarize(report.Results, len(pipeline))
	report.Summary.GeneratedAt = end
	report.Summary.Duration = end.Sub(start)

	report.Init(header.KindValidationReport, APIVersion, v.Version, end)
	report.Metadata[header.MetadataRunID] = runID

	recordValidation(report.Summary)
	log.Info("validation completed",
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed,
		"warnings", report.Summary.Warnings,
		"skipped", report.Summary.Skipped,
		"overall", report.Summary.OverallPassed,
		"duration", report.Summary.Duration)

	return report
}

func summarize(results []CheckResult, total int) Summary {
	s := Summary{
		Total:         total,
		Ran:           len(results),
		Skipped:       total - len(results),
		OverallPassed: true,
	}
	for _, cr := range results {
		switch {
		case cr.Passed:
			s.Passed++
		case cr.Advisory:
			s.Warnings++
		default:
			s.Failed++
			s.OverallPassed = false
		}
	}
	return s
}

// statFile confirms path names a regular file.
func statFile(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), err)
		}
		return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("file not accessible: %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("path is not a regular file: %s", path))
	}
	return info, nil
}

func (v *Validator) checkExistence(st *run) CheckResult {
	if _, err := statFile(st.path); err != nil {
		return failed(StageExistence, err)
	}
	return passed(ExistenceDetail{Path: st.path})
}

func (v *Validator) checkFilename(st *run) CheckResult {
	if err := naming.ConventionError(st.path); err != nil {
		return failed(StageFilenameConvention, err)
	}
	return passed(FilenameDetail{Filename: filepath.Base(st.path)})
}

// roundMB converts a byte count to megabytes rounded to one decimal.
func roundMB(bytes int64) float64 {
	return math.Round(float64(bytes)/bytesPerMB*10) / 10
}

func (v *Validator) checkFileSize(st *run) CheckResult {
	info, err := os.Stat(st.path)
	if err != nil {
		st.sizeErr = errors.Wrap(errors.ErrCodeIO, "failed to check file size", err)
		return failed(StageFileSize, st.sizeErr)
	}

	sizeBytes := info.Size()
	st.sizeMB = roundMB(sizeBytes)
	st.sizeKnown = true

	switch {
	case st.sizeMB < v.minMB:
		return failed(StageFileSize, model.SizeError(model.DirectionTooSmall,
			fmt.Sprintf("file too small: %.1fMB (minimum: %gMB)", st.sizeMB, v.minMB)))
	case st.sizeMB > v.maxMB:
		return failed(StageFileSize, model.SizeError(model.DirectionTooLarge,
			fmt.Sprintf("file too large: %.1fMB (maximum: %gMB)", st.sizeMB, v.maxMB)))
	}

	return passed(SizeDetail{SizeBytes: sizeBytes, SizeMB: st.sizeMB})
}

func (v *Validator) checkChecksum(st *run) CheckResult {
	sum, err := digest.File(st.path, v.algorithm)
	if err != nil {
		return failed(StageChecksum, err)
	}
	return passed(ChecksumDetail{Algorithm: sum.Algorithm, Checksum: sum.Hex})
}

func (v *Validator) checkVersion(st *run) CheckResult {
	m, ok := naming.ExtractVersion(st.path)
	if !ok {
		cr := failed(StageVersionExtraction, errors.New(errors.ErrCodePatternMismatch,
			fmt.Sprintf("unable to extract version from filename: %s", filepath.Base(st.path))))
		cr.Advisory = !v.strictVersion
		return cr
	}
	d := VersionDetail{
		Version:          m.Version,
		Pattern:          m.Pattern,
		PlaceholderTrain: m.PlaceholderTrain,
	}
	if rel, err := naming.ParseVersion(m.Version); err == nil {
		d.Release = &rel
	}
	return passed(d)
}

func (v *Validator) checkModel(st *run) CheckResult {
	id, inferred := st.targetModel, false
	if id == "" {
		id, inferred = v.table.Infer(filepath.Base(st.path))
	}

	if id == "" {
		return passed(ModelDetail{Note: "no model detected, generic validation applied"})
	}

	c, ok := v.table.Lookup(id)
	if !ok {
		return failed(StageModelCompatibility, v.table.UnsupportedError(id))
	}

	if !st.sizeKnown {
		err := errors.New(errors.ErrCodeIO, "file size unavailable")
		err.Cause = st.sizeErr
		return failed(StageModelCompatibility, err)
	}

	if err := v.table.Check(id, st.sizeMB); err != nil {
		return failed(StageModelCompatibility, err)
	}

	return passed(ModelDetail{
		Model:    id,
		Inferred: inferred,
		SizeMB:   st.sizeMB,
		MinMB:    c.MinMB,
		MaxMB:    c.MaxMB,
	})
}
