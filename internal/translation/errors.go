package translation

import "errors"

// Common errors returned by translation backends
var (
	// ErrNotConfigured is returned when a backend is missing its credential
	// or configuration. The orchestrator treats this as fatal for the whole
	// batch: every remaining sentence degrades without further backend calls.
	ErrNotConfigured = errors.New("translation backend is not configured")

	// ErrInvalidResponse is returned when the backend response cannot be
	// parsed or contains no translation.
	ErrInvalidResponse = errors.New("invalid response from translation backend")

	// ErrEchoedInput is returned when the backend parroted the source text
	// back instead of translating it, which is treated as a failure signal.
	ErrEchoedInput = errors.New("backend echoed the source text")
)
