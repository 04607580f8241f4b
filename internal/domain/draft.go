package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DraftStatus represents the processing state of a draft
type DraftStatus string

// Possible draft status values
const (
	DraftStatusPending    DraftStatus = "pending"
	DraftStatusProcessing DraftStatus = "processing"
	DraftStatusCompleted  DraftStatus = "completed"
	DraftStatusFailed     DraftStatus = "failed"
)

// FlagTranslationError marks a draft card whose translation degraded to an
// in-band error marker instead of a real translation.
const FlagTranslationError = "translation_error"

// Confidence levels assigned by the card candidate builder. A flagged card
// always gets the low value; a clean card always gets the high value.
const (
	ConfidenceFlagged = 0.3
	ConfidenceClean   = 0.8
)

// Common validation errors for Draft
var (
	ErrDraftIDEmpty        = errors.New("draft ID cannot be empty")
	ErrDraftCaptureIDEmpty = errors.New("draft capture ID cannot be empty")
	ErrDraftCardReviewFlag = errors.New("draft card review flag is inconsistent with its flags")
)

// DraftCard is an unconfirmed, machine-generated study card awaiting human
// review. The English side is the segmented source sentence; the Japanese
// side is either a real translation or an in-band error marker.
type DraftCard struct {
	EN             string   `json:"en"`
	JP             string   `json:"jp"`
	Confidence     float64  `json:"confidence"`
	NeedsReview    bool     `json:"needs_review"`
	Flags          []string `json:"flags,omitempty"`
	SourceSentence string   `json:"source_sentence"`
	Notes          string   `json:"notes,omitempty"`
}

// NewDraftCard builds a DraftCard for the given sentence/translation pair.
// The flagged argument states that the translation is a degraded error
// marker; it drives the needs-review bit, the translation_error flag, and
// the confidence level, keeping the three in lockstep.
func NewDraftCard(sentence, translation string, flagged bool) DraftCard {
	card := DraftCard{
		EN:             sentence,
		JP:             translation,
		Confidence:     ConfidenceClean,
		SourceSentence: sentence,
	}

	if flagged {
		card.Confidence = ConfidenceFlagged
		card.NeedsReview = true
		card.Flags = []string{FlagTranslationError}
	}

	return card
}

// HasFlag reports whether the card carries the given flag.
func (c DraftCard) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Validate checks the card's internal consistency: needs_review must be set
// whenever the translation_error flag is present, and flagged cards must
// carry the low confidence value.
func (c DraftCard) Validate() error {
	if c.HasFlag(FlagTranslationError) != c.NeedsReview {
		return ErrDraftCardReviewFlag
	}
	return nil
}

// Detection summarizes what the builder observed about the capture text.
type Detection struct {
	SentenceCount int    `json:"sentence_count"`
	Language      string `json:"language"`
}

// Draft batches the draft cards produced from a single capture, together
// with builder warnings and detection metadata. One draft exists per
// ingestion run; it is never mutated after the build completes, only
// discarded or accepted.
type Draft struct {
	ID        uuid.UUID   `json:"id"`
	CaptureID uuid.UUID   `json:"capture_id"`
	Status    DraftStatus `json:"status"`
	Cards     []DraftCard `json:"cards"`
	Warnings  []string    `json:"warnings,omitempty"`
	Detected  Detection   `json:"detected"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewDraft creates a pending Draft for the given capture. Cards, warnings,
// and detection metadata are filled in by the card candidate builder when
// the background build runs.
func NewDraft(captureID uuid.UUID) (*Draft, error) {
	draft := &Draft{
		ID:        uuid.New(),
		CaptureID: captureID,
		Status:    DraftStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	return draft, nil
}

// Validate checks if the Draft has valid data.
// Returns an error if any field fails validation.
func (d *Draft) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDraftIDEmpty
	}

	if d.CaptureID == uuid.Nil {
		return ErrDraftCaptureIDEmpty
	}

	switch d.Status {
	case DraftStatusPending, DraftStatusProcessing, DraftStatusCompleted, DraftStatusFailed:
	default:
		return ErrInvalidDraftStatus
	}

	for _, card := range d.Cards {
		if err := card.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// UpdateStatus transitions the draft to the given status and bumps the
// updated timestamp. Returns an error if the status is not valid.
func (d *Draft) UpdateStatus(status DraftStatus) error {
	switch status {
	case DraftStatusPending, DraftStatusProcessing, DraftStatusCompleted, DraftStatusFailed:
	default:
		return ErrInvalidDraftStatus
	}

	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	return nil
}
