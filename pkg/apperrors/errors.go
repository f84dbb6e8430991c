package apperrors

import "errors"

// Sentinel errors for the error taxonomy used across services and repositories.
// Handlers translate these into HTTP status codes; anything that does not match
// is treated as an internal error.
var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates a missing or invalid credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates the caller is authenticated but not entitled to act.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
	// ErrInvalidOperation indicates a valid target in the wrong state,
	// e.g. responding to an already processed friend request.
	ErrInvalidOperation = errors.New("invalid operation")
)
