package utils

import "errors"

// Domain sentinels. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can map them to HTTP codes with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
)
