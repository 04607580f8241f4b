package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is a generic version of the entity-specific not found
	// errors (e.g., ErrCaptureNotFound, ErrDraftNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist.
	ErrUpdateFailed = errors.New("update failed")

	// Entity-specific "not found" errors

	// ErrCaptureNotFound indicates that the requested capture does not exist in the store.
	ErrCaptureNotFound = fmt.Errorf("%w: capture", ErrNotFound)

	// ErrDraftNotFound indicates that the requested draft does not exist in the store.
	ErrDraftNotFound = fmt.Errorf("%w: draft", ErrNotFound)

	// ErrCardNotFound indicates that the requested card does not exist in the store.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrSessionNotFound indicates that the requested study session does not exist in the store.
	ErrSessionNotFound = fmt.Errorf("%w: study session", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
