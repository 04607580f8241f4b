package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a scriptable Translator for orchestrator tests. A zero
// throttle keeps the tests fast.
type fakeBackend struct {
	translate func(ctx context.Context, text string) (string, error)
	calls     int
}

func (f *fakeBackend) Translate(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.translate(ctx, text)
}

func (f *fakeBackend) Throttle() time.Duration { return 0 }
func (f *fakeBackend) Name() string            { return "fake" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestTranslateAllHappyPath(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, text string) (string, error) {
			return "訳: " + text, nil
		},
	}

	sentences := []string{"One.", "Two.", "Three."}
	results := TranslateAll(context.Background(), sentences, backend, testLogger(), nil)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, "訳: "+sentences[i], r)
		assert.False(t, IsErrorMarker(r))
	}
	assert.Equal(t, 3, backend.calls)
}

func TestTranslateAllSingleFailureDoesNotBlockOthers(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, text string) (string, error) {
			if text == "Two." {
				return "", fmt.Errorf("%w: status 500", ErrInvalidResponse)
			}
			return "訳: " + text, nil
		},
	}

	results := TranslateAll(
		context.Background(), []string{"One.", "Two.", "Three."}, backend, testLogger(), nil,
	)

	require.Len(t, results, 3)
	assert.False(t, IsErrorMarker(results[0]))
	assert.True(t, IsErrorMarker(results[1]))
	assert.False(t, IsErrorMarker(results[2]))
	assert.Equal(t, 3, backend.calls)
}

func TestTranslateAllMissingConfigDegradesRemainder(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, text string) (string, error) {
			if text == "One." {
				return "訳: " + text, nil
			}
			return "", fmt.Errorf("%w: API key missing", ErrNotConfigured)
		},
	}

	results := TranslateAll(
		context.Background(), []string{"One.", "Two.", "Three.", "Four."}, backend, testLogger(), nil,
	)

	require.Len(t, results, 4)
	assert.False(t, IsErrorMarker(results[0]))
	for _, r := range results[1:] {
		assert.True(t, IsErrorMarker(r))
	}
	// The backend must not be called again once configuration is known bad.
	assert.Equal(t, 2, backend.calls)
}

func TestTranslateAllEchoedOutputIsFailure(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, text string) (string, error) {
			return text, nil
		},
	}

	results := TranslateAll(context.Background(), []string{"Hello."}, backend, testLogger(), nil)

	require.Len(t, results, 1)
	assert.True(t, IsErrorMarker(results[0]))
	assert.Contains(t, results[0], ErrEchoedInput.Error())
}

func TestTranslateAllEmptyOutputIsFailure(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, _ string) (string, error) {
			return "   ", nil
		},
	}

	results := TranslateAll(context.Background(), []string{"Hello."}, backend, testLogger(), nil)

	require.Len(t, results, 1)
	assert.True(t, IsErrorMarker(results[0]))
}

func TestTranslateAllProgressReporting(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, text string) (string, error) {
			if text == "Two." {
				return "", errors.New("boom")
			}
			return "訳", nil
		},
	}

	var reported [][2]int
	TranslateAll(
		context.Background(),
		[]string{"One.", "Two.", "Three."},
		backend,
		testLogger(),
		func(current, total int) {
			reported = append(reported, [2]int{current, total})
		},
	)

	// Progress fires once per sentence, including degraded ones.
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, reported)
}

func TestTranslateAllEmptyBatch(t *testing.T) {
	t.Parallel() // Enable parallel execution

	backend := &fakeBackend{
		translate: func(_ context.Context, _ string) (string, error) {
			t.Fatal("backend must not be called for an empty batch")
			return "", nil
		},
	}

	results := TranslateAll(context.Background(), nil, backend, testLogger(), nil)
	assert.Empty(t, results)
}

func TestErrorMarker(t *testing.T) {
	t.Parallel() // Enable parallel execution

	marker := ErrorMarker("some reason")
	assert.Equal(t, "[translation error: some reason]", marker)
	assert.True(t, IsErrorMarker(marker))
	assert.False(t, IsErrorMarker("普通の訳"))
	assert.False(t, IsErrorMarker(""))
}
