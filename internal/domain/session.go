package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudySession
var (
	ErrSessionIDEmpty          = errors.New("study session ID cannot be empty")
	ErrSessionDateZero         = errors.New("study session date cannot be zero")
	ErrSessionCountNegative    = errors.New("study session counts must be greater than or equal to 0")
	ErrSessionCountsExceed     = errors.New("study session outcome counts cannot exceed the card count")
	ErrSessionDurationNegative = errors.New("study session duration must be greater than or equal to 0")
)

// StudySession records one completed practice run. Sessions are immutable
// after creation and are the sole input to the statistics engine.
// DurationSeconds is optional; zero means the duration was not recorded.
type StudySession struct {
	ID              uuid.UUID `json:"id"`
	Date            time.Time `json:"date"`
	CardCount       int       `json:"card_count"`
	CorrectCount    int       `json:"correct_count"`
	MaybeCount      int       `json:"maybe_count"`
	IncorrectCount  int       `json:"incorrect_count"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
}

// NewStudySession creates a StudySession for a completed practice run.
// It generates a new UUID for the session ID.
// Returns an error if validation fails.
func NewStudySession(
	date time.Time,
	cardCount, correctCount, maybeCount, incorrectCount, durationSeconds int,
) (*StudySession, error) {
	session := &StudySession{
		ID:              uuid.New(),
		Date:            date,
		CardCount:       cardCount,
		CorrectCount:    correctCount,
		MaybeCount:      maybeCount,
		IncorrectCount:  incorrectCount,
		DurationSeconds: durationSeconds,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data. The statistics engine
// assumes well-formed sessions, so malformed records must be rejected here
// at the persistence boundary.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.Date.IsZero() {
		return ErrSessionDateZero
	}

	if s.CardCount < 0 || s.CorrectCount < 0 || s.MaybeCount < 0 || s.IncorrectCount < 0 {
		return ErrSessionCountNegative
	}

	if s.CorrectCount+s.MaybeCount+s.IncorrectCount > s.CardCount {
		return ErrSessionCountsExceed
	}

	if s.DurationSeconds < 0 {
		return ErrSessionDurationNegative
	}

	return nil
}
