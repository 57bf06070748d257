package defaults

import "time"

// Digest settings.
const (
	// DigestChunkSize is the read buffer size used when hashing a file.
	DigestChunkSize = 8192
)

// Generic firmware image size envelope, in megabytes (inclusive).
const (
	GlobalMinSizeMB = 400.0
	GlobalMaxSizeMB = 2000.0
)

// Batch validation settings.
const (
	// BatchConcurrency is the default number of files validated in parallel.
	BatchConcurrency = 4
)

// Watch mode settings.
const (
	// WatchSettleDelay is how long a file must go without write events
	// before it is validated.
	WatchSettleDelay = 2 * time.Second

	// WatchRateLimit is the sustained number of validations started per second.
	WatchRateLimit = 2

	// WatchRateBurst is the number of validations that may start back to back.
	WatchRateBurst = 4

	// WatchPattern is the default filename filter for watch mode.
	WatchPattern = "ArubaOS-CX_*.swi"
)
