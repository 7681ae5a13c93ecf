package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnknownRating   = errors.New("unknown rating label")
	ErrMissingResource = errors.New("missing resource")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
