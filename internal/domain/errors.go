package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidVerdict is returned when a grading verdict is not valid.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrInvalidDraftStatus is returned when a draft status is not valid.
	ErrInvalidDraftStatus = errors.New("invalid draft status")
)
