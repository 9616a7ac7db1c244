package ingest

import "errors"

// Sentinel kinds for upload parsing. All leave the stored batch untouched.
var (
	ErrMalformed     = errors.New("malformed upload")
	ErrMissingColumn = errors.New("missing feature column")
	ErrTooLarge      = errors.New("upload too large")
)
