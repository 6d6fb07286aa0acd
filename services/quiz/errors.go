package quiz

import "errors"

// Sentinel errors mapped by the HTTP layer: ErrNotFound -> 404,
// ErrPermissionDenied -> 403, ErrValidation -> 422.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
)
