package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tkondo/kioku-api/internal/config"
	"github.com/tkondo/kioku-api/internal/translation"
)

// throttleDelay is the fixed inter-call delay for the paid backend. Longer
// than the free tier to stay well inside the account's rate limits.
const throttleDelay = 1500 * time.Millisecond

// Translator implements the translation.Translator interface using the
// OpenAI chat completion API as the premium backend.
type Translator struct {
	logger *slog.Logger
	apiKey string
	client *openai.Client
	model  string
}

// NewTranslator creates a new premium translator instance. A missing API key
// is not a construction error: the backend reports
// translation.ErrNotConfigured on use so the orchestrator can degrade the
// batch in-band.
func NewTranslator(logger *slog.Logger, cfg config.TranslationConfig) (*Translator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	t := &Translator{
		logger: logger,
		apiKey: cfg.OpenAIAPIKey,
		model:  cfg.OpenAIModel,
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("openai API key not configured, backend will degrade on use")
		return t, nil
	}

	t.client = openai.NewClient(cfg.OpenAIAPIKey)
	return t, nil
}

// Translate sends one sentence to the chat completion API and returns the
// Japanese translation.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("%w: openai API key missing", translation.ErrNotConfigured)
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"Translate the following English sentence into natural Japanese. "+
						"Respond with only the Japanese translation, nothing else.\n\n%s",
					text,
				),
			},
		},
		MaxTokens:   200,
		Temperature: 0.3,
	}

	t.logger.DebugContext(ctx, "making OpenAI API call",
		"model", t.model,
		"text_length", len(text))

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", translation.ErrInvalidResponse)
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("%w: empty choice content", translation.ErrInvalidResponse)
	}

	return translated, nil
}

// Throttle returns the paid-tier inter-call delay.
func (t *Translator) Throttle() time.Duration {
	return throttleDelay
}

// Name identifies the backend in logs and error markers.
func (t *Translator) Name() string {
	return "openai"
}
