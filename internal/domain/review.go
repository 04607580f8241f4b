package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	ErrReviewCardIDEmpty      = errors.New("review card ID cannot be empty")
	ErrReviewIntervalNegative = errors.New("review interval must be greater than or equal to 0")
)

// Review tracks the scheduling state of a card. It is mutated by the
// external scheduling collaborator after each grading event; the auto-grader
// only produces the verdict recorded here.
type Review struct {
	CardID       uuid.UUID `json:"card_id"`
	DueDate      time.Time `json:"due_date"`
	IntervalDays int       `json:"interval_days"`
	LastResult   Verdict   `json:"last_result"`
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.CardID == uuid.Nil {
		return ErrReviewCardIDEmpty
	}

	if r.IntervalDays < 0 {
		return ErrReviewIntervalNegative
	}

	if !r.LastResult.IsValid() {
		return ErrInvalidVerdict
	}

	return nil
}
