// internal/services/errors.go
package services

import "errors"

var (
	// ErrUnauthorized is returned when a mutating catalog operation is
	// attempted without an active session.
	ErrUnauthorized = errors.New("you must be logged in")

	// ErrNotConfigured is returned by operations that need a live backend
	// while the service runs in demo mode.
	ErrNotConfigured = errors.New("backend not configured")

	// ErrInvalidCredentials is returned on sign-in failure.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
