package inference

import "errors"

// Sentinel kinds for inference failures. All are non-fatal to the session;
// the HTTP layer maps each cause to its own response.
var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrEmptyBatch       = errors.New("empty input batch")
	ErrBadVector        = errors.New("input vector mismatch")
)
