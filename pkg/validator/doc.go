/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator provides the firmware image validation pipeline.
//
// # Overview
//
// The validator runs a fixed, ordered list of stages against a candidate
// AOS-CX firmware file and combines their results into a single verdict:
//
//	existence -> filename_convention -> file_size -> checksum ->
//	version_extraction -> model_compatibility
//
// Existence is the only gating stage. When it fails the remaining stages
// are skipped and the report holds a single result. Every other stage runs
// regardless of earlier failures so one invocation surfaces every problem.
//
// # Usage
//
// Basic validation:
//
//	v := validator.New(validator.WithVersion(version))
//	report := v.Validate("/srv/fw/ArubaOS-CX_6200_10_13_1000.swi", "6200")
//	if !report.Summary.OverallPassed {
//	    for _, msg := range report.Errors() {
//	        fmt.Println(msg)
//	    }
//	}
//
// Checksum only:
//
//	res, err := v.Checksum(path, digest.SHA256)
//
// Batch:
//
//	batch, err := v.ValidateAll(ctx, paths, "", 4)
//
// # Result Structure
//
// Report contains:
//   - Results: one CheckResult per stage that ran, in pipeline order
//   - Summary: pass/fail/warning counts and the overall verdict
//
// A passed CheckResult carries a stage-specific Detail; a failed one carries
// an error message and code. A failed version extraction is advisory unless
// WithStrictVersion is set.
//
// # Model Compatibility
//
// The target model defaults to the first model id in table order that
// appears in the filename. Sizes are compared using the rounded megabyte
// figure computed by the file_size stage.
package validator
