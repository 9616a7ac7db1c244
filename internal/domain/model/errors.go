package model

import "errors"

// Sentinel kinds for domain model validation.
var (
	ErrOutOfRange = errors.New("value out of range")
)
