// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the fwvalidate tool.
//
// # Overview
//
// fwvalidate checks AOS-CX switch firmware images (.swi) before they are pushed
// to a fleet. It runs a fixed pipeline of checks against one image and reports
// every problem at once instead of stopping at the first.
//
// # Commands
//
// validate - Run the full pipeline against one image:
//
//	fwvalidate validate [--model ID] [--strict-version] [--format text|json|yaml|table|msgpack|pdf] FILE
//	fwvalidate validate --checksum-only FILE
//
// checksum - Compute the digest of one image:
//
//	fwvalidate checksum [--algorithm sha256|sha512|sha1|md5] FILE
//
// batch - Validate several images in parallel:
//
//	fwvalidate batch [--concurrency N] FILE...
//
// watch - Validate images as they land in a staging directory:
//
//	fwvalidate watch [--pattern GLOB]... [--settle 2s] [--rate N] [--existing] DIR
//
// models - Print the model compatibility table:
//
//	fwvalidate models [--format text|json|yaml]
//
// render - Re-render a saved report, e.g. as a PDF certificate:
//
//	fwvalidate render --format pdf --output cert.pdf report.json
//
// # Environment Variables
//
// Defaults are read through beaver-kit/config using the BEAVER_ prefix:
//
//	BEAVER_FWVALIDATE_LOG_LEVEL      Logging verbosity (debug, info, warn, error)
//	LOG_LEVEL                        Logging verbosity when the above is unset
//	BEAVER_FWVALIDATE_FORMAT         Default output format
//	BEAVER_FWVALIDATE_ALGORITHM      Default checksum algorithm
//	BEAVER_FWVALIDATE_CONCURRENCY    Default batch concurrency
//	BEAVER_FWVALIDATE_METRICS_FILE   Prometheus textfile output path
//	BEAVER_FWVALIDATE_WATCH_PATTERN  Default watch filename pattern
//	BEAVER_FWVALIDATE_WATCH_RATE     Default watch validations per second
//
// Command-line flags (--debug, --quiet) override the environment.
//
// # Exit Codes
//
//	0  Validation passed
//	1  Validation failed (including a missing or unreadable image)
//	2  Usage or runtime error (unknown flag value, unknown model, output failure)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/arubamgr/fwvalidate/pkg/cli.version=1.0.0'"
package cli
