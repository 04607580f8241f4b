package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tkondo/kioku-api/internal/config"
	"github.com/tkondo/kioku-api/internal/translation"
	"google.golang.org/genai"
)

// throttleDelay is the fixed inter-call delay the orchestrator waits between
// consecutive calls against the free tier.
const throttleDelay = 500 * time.Millisecond

// promptFormat asks for the bare translation so the response needs no
// parsing beyond trimming.
const promptFormat = "Translate the following English sentence into natural Japanese. " +
	"Respond with only the Japanese translation, nothing else.\n\n%s"

// Translator implements the translation.Translator interface using Google's
// Gemini API as the free-tier backend.
type Translator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests; nil when no API
	// key is configured, in which case every call degrades via
	// translation.ErrNotConfigured
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewTranslator creates a new instance of Translator with the provided
// dependencies.
//
// A missing API key is not a construction error: the backend is created in
// an unconfigured state and reports translation.ErrNotConfigured on use, so
// the orchestrator can degrade the batch in-band instead of the application
// failing to start.
func NewTranslator(ctx context.Context, logger *slog.Logger, cfg config.TranslationConfig) (*Translator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	t := &Translator{
		logger: logger,
		model:  cfg.GeminiModel,
	}

	if cfg.GeminiAPIKey == "" {
		logger.WarnContext(ctx, "gemini API key not configured, backend will degrade on use")
		return t, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	t.client = client
	return t, nil
}

// Translate sends one sentence to the Gemini API and returns the Japanese
// translation.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("%w: gemini API key missing", translation.ErrNotConfigured)
	}

	prompt := fmt.Sprintf(promptFormat, text)

	t.logger.DebugContext(ctx, "making Gemini API call",
		"model", t.model,
		"text_length", len(text))

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", translation.ErrInvalidResponse)
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			out.WriteString(part.Text)
		}
	}

	translated := strings.TrimSpace(out.String())
	if translated == "" {
		return "", fmt.Errorf("%w: empty candidate text", translation.ErrInvalidResponse)
	}

	return translated, nil
}

// Throttle returns the free-tier inter-call delay.
func (t *Translator) Throttle() time.Duration {
	return throttleDelay
}

// Name identifies the backend in logs and error markers.
func (t *Translator) Name() string {
	return "gemini"
}
