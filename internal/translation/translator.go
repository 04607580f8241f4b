package translation

import (
	"context"
	"time"
)

// Translator defines the interface for translating a single English sentence
// into Japanese. This interface serves as a boundary between the application
// core and external translation/LLM services: a low-accuracy free engine and
// a higher-accuracy paid engine are interchangeable without changing
// orchestration logic.
type Translator interface {
	// Translate translates one sentence. It returns the translated text or
	// an error describing the failure; errors are wrapped around the
	// package sentinels so the orchestrator can classify them.
	Translate(ctx context.Context, text string) (string, error)

	// Throttle returns the fixed delay the orchestrator waits between
	// consecutive calls. Paid backends report a longer delay than free-tier
	// backends.
	Throttle() time.Duration

	// Name identifies the backend in logs and error markers.
	Name() string
}
