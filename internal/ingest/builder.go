package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/tkondo/kioku-api/internal/domain"
	"github.com/tkondo/kioku-api/internal/segment"
	"github.com/tkondo/kioku-api/internal/translation"
)

// Phase names the coarse stages a draft build passes through. Progress
// reporting walks them in order with a monotonically non-decreasing
// fraction in [0,1].
type Phase string

// Build phases in order
const (
	PhaseCleaning    Phase = "cleaning"
	PhaseSegmenting  Phase = "segmenting"
	PhaseTranslating Phase = "translating"
	PhaseAssembling  Phase = "assembling"
	PhaseDone        Phase = "done"
)

// Fractions reported at each phase boundary. Translation owns the span
// between translateStart and translateEnd, scaled by per-sentence progress.
const (
	cleaningFraction   = 0.05
	segmentingFraction = 0.15
	translateStart     = 0.15
	translateEnd       = 0.90
	assemblingFraction = 0.95
	doneFraction       = 1.0
)

// largeBatchThreshold is the sentence count above which the builder warns
// that translation will take a while. A signal for the reviewer, not an
// error.
const largeBatchThreshold = 50

// warnNoSentences is emitted when segmentation finds nothing to translate.
const warnNoSentences = "no sentences detected"

// ProgressFunc reports a named build phase together with the overall
// progress fraction.
type ProgressFunc func(phase Phase, fraction float64)

// Result is the outcome of one ingestion run: the candidate cards plus the
// warnings and detection metadata that belong on the draft.
type Result struct {
	Cards    []domain.DraftCard
	Warnings []string
	Detected domain.Detection
}

// Builder assembles draft cards from raw captured text. It holds no state
// between builds; each call is independent and idempotent given the same
// inputs and backend behavior.
type Builder struct {
	backend translation.Translator
	logger  *slog.Logger
}

// NewBuilder creates a Builder that translates through the given backend.
func NewBuilder(backend translation.Translator, logger *slog.Logger) *Builder {
	return &Builder{
		backend: backend,
		logger:  logger,
	}
}

// BuildDraft runs the full ingestion pipeline for one capture: clean,
// segment, translate, assemble. It never fails; translation problems
// degrade to flagged cards and warnings.
func (b *Builder) BuildDraft(ctx context.Context, rawText string, progress ProgressFunc) Result {
	report := func(phase Phase, fraction float64) {
		if progress != nil {
			progress(phase, fraction)
		}
	}

	cleaned := Clean(rawText)
	report(PhaseCleaning, cleaningFraction)

	sentences := segment.Split(cleaned)
	report(PhaseSegmenting, segmentingFraction)

	result := Result{
		Cards: []domain.DraftCard{},
		Detected: domain.Detection{
			SentenceCount: len(sentences),
			Language:      detectLanguage(cleaned),
		},
	}

	if len(sentences) == 0 {
		b.logger.InfoContext(ctx, "no sentences detected, skipping translation")
		result.Warnings = append(result.Warnings, warnNoSentences)
		report(PhaseAssembling, assemblingFraction)
		report(PhaseDone, doneFraction)
		return result
	}

	if len(sentences) > largeBatchThreshold {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("large batch: %d sentences may take a while to translate", len(sentences)))
	}

	translations := translation.TranslateAll(ctx, sentences, b.backend, b.logger,
		func(current, total int) {
			fraction := translateStart +
				(translateEnd-translateStart)*float64(current)/float64(total)
			report(PhaseTranslating, fraction)
		})

	report(PhaseAssembling, assemblingFraction)

	failures := 0
	for i, sentence := range sentences {
		flagged := translation.IsErrorMarker(translations[i])
		if flagged {
			failures++
		}
		result.Cards = append(result.Cards, domain.NewDraftCard(sentence, translations[i], flagged))
	}

	if failures > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d translations failed and need manual correction",
				failures, len(sentences)))
	}

	b.logger.InfoContext(ctx, "draft build completed",
		"sentence_count", len(sentences),
		"failed_translations", failures,
		"warnings", len(result.Warnings))

	report(PhaseDone, doneFraction)
	return result
}

// Clean normalizes raw OCR output before segmentation: whitespace runs and
// newlines collapse to single spaces, and common look-alike artifacts are
// folded (a standalone '|' token becomes 'I').
func Clean(raw string) string {
	fields := strings.Fields(raw)
	for i, field := range fields {
		if field == "|" {
			fields[i] = "I"
		}
	}
	return strings.Join(fields, " ")
}

// detectLanguage reports "en" for ASCII-letter-dominant text and "unknown"
// otherwise. Good enough for routing drafts; not a general detector.
func detectLanguage(text string) string {
	var letters, ascii int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if r < 128 {
				ascii++
			}
		}
	}

	if letters == 0 || ascii*2 < letters {
		return "unknown"
	}
	return "en"
}
