/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"time"

	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/errors"
	"github.com/arubamgr/fwvalidate/pkg/header"
	"github.com/arubamgr/fwvalidate/pkg/model"
	"github.com/arubamgr/fwvalidate/pkg/naming"
)

// Stage identifies one check in the validation pipeline.
type Stage string

const (
	StageExistence          Stage = "existence"
	StageFilenameConvention Stage = "filename_convention"
	StageFileSize           Stage = "file_size"
	StageChecksum           Stage = "checksum"
	StageVersionExtraction  Stage = "version_extraction"
	StageModelCompatibility Stage = "model_compatibility"
)

// Stages returns all stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageExistence,
		StageFilenameConvention,
		StageFileSize,
		StageChecksum,
		StageVersionExtraction,
		StageModelCompatibility,
	}
}

// String returns the stage name.
func (s Stage) String() string {
	return string(s)
}

// Detail carries the stage-specific data of a passed check.
// The set of implementations is closed.
type Detail interface {
	stage() Stage
}

// ExistenceDetail is recorded when the path is a regular file.
type ExistenceDetail struct {
	Path string `json:"path" yaml:"path"`
}

// FilenameDetail is recorded when the name follows the convention.
type FilenameDetail struct {
	Filename string `json:"filename" yaml:"filename"`
}

// SizeDetail is recorded when the size lies within the generic envelope.
type SizeDetail struct {
	SizeBytes int64   `json:"sizeBytes" yaml:"sizeBytes"`
	SizeMB    float64 `json:"sizeMB" yaml:"sizeMB"`
}

// ChecksumDetail is recorded when the digest was computed.
type ChecksumDetail struct {
	Algorithm digest.Algorithm `json:"algorithm" yaml:"algorithm"`
	Checksum  string           `json:"checksum" yaml:"checksum"`
}

// VersionDetail is recorded when a version was extracted from the filename.
type VersionDetail struct {
	Version          string             `json:"version" yaml:"version"`
	Pattern          naming.PatternName `json:"pattern" yaml:"pattern"`
	PlaceholderTrain bool               `json:"placeholderTrain,omitempty" yaml:"placeholderTrain,omitempty"`

	// Release is the parsed version; nil when Version is not in canonical
	// LL.NN.NN.NNNN form.
	Release *naming.Version `json:"release,omitempty" yaml:"release,omitempty"`
}

// ModelDetail is recorded when the size fits the model envelope, or when no
// model could be determined.
type ModelDetail struct {
	Model    string  `json:"model,omitempty" yaml:"model,omitempty"`
	Inferred bool    `json:"inferred,omitempty" yaml:"inferred,omitempty"`
	SizeMB   float64 `json:"sizeMB,omitempty" yaml:"sizeMB,omitempty"`
	MinMB    float64 `json:"minMB,omitempty" yaml:"minMB,omitempty"`
	MaxMB    float64 `json:"maxMB,omitempty" yaml:"maxMB,omitempty"`
	Note     string  `json:"note,omitempty" yaml:"note,omitempty"`
}

func (ExistenceDetail) stage() Stage { return StageExistence }
func (FilenameDetail) stage() Stage  { return StageFilenameConvention }
func (SizeDetail) stage() Stage      { return StageFileSize }
func (ChecksumDetail) stage() Stage  { return StageChecksum }
func (VersionDetail) stage() Stage   { return StageVersionExtraction }
func (ModelDetail) stage() Stage     { return StageModelCompatibility }

// CheckResult is the outcome of one stage. Exactly one of Detail and Error
// is set.
type CheckResult struct {
	Stage  Stage            `json:"stage" yaml:"stage"`
	Passed bool             `json:"passed" yaml:"passed"`
	Detail Detail           `json:"detail,omitempty" yaml:"detail,omitempty"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
	Code   errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`

	// Direction is set on SIZE_OUT_OF_RANGE failures.
	Direction model.Direction `json:"direction,omitempty" yaml:"direction,omitempty"`

	// Advisory marks a failure that does not count against the overall verdict.
	Advisory bool `json:"advisory,omitempty" yaml:"advisory,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Blocking reports whether the result fails the overall verdict.
func (r CheckResult) Blocking() bool {
	return !r.Passed && !r.Advisory
}

func passed(d Detail) CheckResult {
	return CheckResult{
		Stage:  d.stage(),
		Passed: true,
		Detail: d,
	}
}

func failed(stage Stage, err error) CheckResult {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	dir, _ := model.DirectionOf(err)
	return CheckResult{
		Stage:     stage,
		Error:     errors.MessageOf(err),
		Code:      code,
		Direction: dir,
	}
}

// Summary aggregates the results of one run.
type Summary struct {
	// Total is the number of stages the pipeline defines.
	Total int `json:"total" yaml:"total"`

	// Ran is the number of stages that produced a result.
	Ran int `json:"ran" yaml:"ran"`

	Passed int `json:"passed" yaml:"passed"`

	// Failed counts blocking failures; Warnings counts advisory ones.
	Failed   int `json:"failed" yaml:"failed"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Skipped  int `json:"skipped" yaml:"skipped"`

	// OverallPassed is true iff no stage that ran failed with a blocking result.
	OverallPassed bool `json:"overallPassed" yaml:"overallPassed"`

	GeneratedAt time.Time     `json:"generatedAt" yaml:"generatedAt"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Report is the complete output of one pipeline run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	TargetPath  string `json:"targetPath" yaml:"targetPath"`
	TargetModel string `json:"targetModel,omitempty" yaml:"targetModel,omitempty"`

	// Results holds one entry per stage that ran, in pipeline order.
	Results []CheckResult `json:"results" yaml:"results"`

	Summary Summary `json:"summary" yaml:"summary"`
}

// Result returns the result recorded for stage, if that stage ran.
func (r *Report) Result(stage Stage) (CheckResult, bool) {
	for _, cr := range r.Results {
		if cr.Stage == stage {
			return cr, true
		}
	}
	return CheckResult{}, false
}

// Errors returns the error messages of all failed stages, in order.
func (r *Report) Errors() []string {
	var out []string
	for _, cr := range r.Results {
		if !cr.Passed {
			out = append(out, cr.Error)
		}
	}
	return out
}

// ChecksumResult is the output of the checksum-only entry point.
type ChecksumResult struct {
	header.Header `json:",inline" yaml:",inline"`

	File      string           `json:"file" yaml:"file"`
	Algorithm digest.Algorithm `json:"algorithm" yaml:"algorithm"`
	Checksum  string           `json:"checksum" yaml:"checksum"`
}

// BatchReport aggregates the reports of a multi-file run.
type BatchReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Reports []*Report `json:"reports" yaml:"reports"`
	Passed  int       `json:"passed" yaml:"passed"`
	Failed  int       `json:"failed" yaml:"failed"`
}
