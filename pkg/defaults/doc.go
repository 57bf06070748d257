// Package defaults provides centralized configuration constants for fwvalidate.
//
// This package defines size envelopes, buffer sizes, concurrency limits and
// watch-mode pacing used across the codebase. Centralizing these values keeps
// the pipeline stages, the CLI and the watcher consistent with each other.
//
// # Categories
//
//   - Digest: chunk size used when streaming a file through a hash
//   - Size envelope: generic accepted firmware image size, in megabytes
//   - Batch: default number of files validated in parallel
//   - Watch: settle delay and rate limits for staging-directory validation
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/arubamgr/fwvalidate/pkg/defaults"
//
//	buf := make([]byte, defaults.DigestChunkSize)
//
// # Guidelines
//
// The generic size envelope is intentionally wider than any single model's
// envelope. Model-specific bounds live in the model compatibility table.
package defaults
