package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkondo/kioku-api/internal/config"
	"github.com/tkondo/kioku-api/internal/translation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTranslatorRequiresLogger(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, err := NewTranslator(context.Background(), nil, config.TranslationConfig{})
	assert.Error(t, err)
}

func TestTranslateWithoutAPIKeyDegrades(t *testing.T) {
	t.Parallel() // Enable parallel execution

	cfg := config.TranslationConfig{GeminiModel: "gemini-2.0-flash"}
	translator, err := NewTranslator(context.Background(), testLogger(), cfg)
	require.NoError(t, err)

	_, err = translator.Translate(context.Background(), "Hello world.")
	assert.ErrorIs(t, err, translation.ErrNotConfigured)
}

func TestBackendIdentity(t *testing.T) {
	t.Parallel() // Enable parallel execution

	translator, err := NewTranslator(context.Background(), testLogger(), config.TranslationConfig{})
	require.NoError(t, err)

	assert.Equal(t, "gemini", translator.Name())
	assert.Equal(t, 500*time.Millisecond, translator.Throttle())
}
