package artifact

import "errors"

// Sentinel kinds for artifact loading and evaluation.
var (
	ErrNotFound   = errors.New("model artifact not found")
	ErrUnreadable = errors.New("model artifact unreadable")
	ErrMalformed  = errors.New("model artifact malformed")
	ErrBadInput   = errors.New("input width mismatch")
	ErrWrongTask  = errors.New("unsupported task")
)
