package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardENEmpty is returned when a card's English side is empty.
	ErrCardENEmpty = errors.New("card English side cannot be empty")

	// ErrCardJPEmpty is returned when a card's Japanese side is empty.
	ErrCardJPEmpty = errors.New("card Japanese side cannot be empty")
)

// Card represents a permanent study card, promoted from a reviewed draft
// card. Unlike a DraftCard it has no quality flags: promotion implies a
// human confirmed both sides.
type Card struct {
	ID             uuid.UUID `json:"id"`
	DraftID        uuid.UUID `json:"draft_id"`
	EN             string    `json:"en"`
	JP             string    `json:"jp"`
	SourceSentence string    `json:"source_sentence"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCard creates a permanent Card from a reviewed draft card. It generates
// a new UUID for the card ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCard(draftID uuid.UUID, draftCard DraftCard) (*Card, error) {
	card := &Card{
		ID:             uuid.New(),
		DraftID:        draftID,
		EN:             draftCard.EN,
		JP:             draftCard.JP,
		SourceSentence: draftCard.SourceSentence,
		Notes:          draftCard.Notes,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.EN == "" {
		return ErrCardENEmpty
	}

	if c.JP == "" {
		return ErrCardJPEmpty
	}

	return nil
}
