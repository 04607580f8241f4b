package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// markerPrefix is the prefix of the in-band degradation marker. The closing
// bracket is appended after the reason.
const markerPrefix = "[translation error: "

// ProgressFunc reports batch progress. It is invoked once per completed
// sentence with the 1-based count of finished sentences and the batch total.
type ProgressFunc func(current, total int)

// ErrorMarker formats the in-band marker that replaces a failed translation.
func ErrorMarker(reason string) string {
	return fmt.Sprintf("%s%s]", markerPrefix, reason)
}

// IsErrorMarker reports whether s is a degradation marker rather than a
// real translation.
func IsErrorMarker(s string) bool {
	return strings.HasPrefix(s, markerPrefix)
}

// TranslateAll translates sentences one at a time through the backend,
// strictly sequentially, waiting the backend's throttle delay between calls.
// The result always has exactly one entry per input sentence, in input
// order; failures never propagate to the caller and instead appear in-band
// as bracketed marker strings.
//
// A configuration failure (missing credential) poisons the remainder of the
// batch: every sentence from that point on is marked without touching the
// backend again. Any other failure marks only its own sentence. No retries
// are attempted; a single failed call degrades immediately to bound
// worst-case latency.
func TranslateAll(
	ctx context.Context,
	sentences []string,
	backend Translator,
	logger *slog.Logger,
	progress ProgressFunc,
) []string {
	total := len(sentences)
	results := make([]string, 0, total)

	var configFailure error

	for i, sentence := range sentences {
		if configFailure != nil {
			results = append(results, ErrorMarker(configFailure.Error()))
			if progress != nil {
				progress(i+1, total)
			}
			continue
		}

		translated, err := translateOne(ctx, backend, sentence)
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				configFailure = err
				logger.WarnContext(ctx, "backend not configured, degrading remainder of batch",
					"backend", backend.Name(),
					"sentence_index", i,
					"error", err)
			} else {
				logger.WarnContext(ctx, "translation degraded to error marker",
					"backend", backend.Name(),
					"sentence_index", i,
					"error", err)
			}
			results = append(results, ErrorMarker(err.Error()))
		} else {
			results = append(results, translated)
		}

		if progress != nil {
			progress(i+1, total)
		}

		// Fixed inter-call delay, skipped after the last sentence and once
		// the batch has degraded to markers only.
		if i < total-1 && configFailure == nil {
			time.Sleep(backend.Throttle())
		}
	}

	return results
}

// translateOne performs a single backend call and applies the orchestrator's
// failure classification: backend errors pass through, empty output is an
// invalid response, and output equal to the input is treated as an echo
// failure rather than a real translation.
func translateOne(ctx context.Context, backend Translator, sentence string) (string, error) {
	translated, err := backend.Translate(ctx, sentence)
	if err != nil {
		return "", err
	}

	translated = strings.TrimSpace(translated)
	if translated == "" {
		return "", fmt.Errorf("%w: empty translation", ErrInvalidResponse)
	}

	if strings.EqualFold(translated, strings.TrimSpace(sentence)) {
		return "", ErrEchoedInput
	}

	return translated, nil
}
