package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Capture-specific validation errors
var (
	// ErrCaptureIDEmpty is returned when a capture ID is empty or nil.
	ErrCaptureIDEmpty = errors.New("capture ID cannot be empty")

	// ErrCaptureTextEmpty is returned when a capture's extracted text is empty.
	ErrCaptureTextEmpty = errors.New("capture text cannot be empty")
)

// RawCapture represents a block of recognized text handed over by the OCR
// collaborator. It is immutable once created: the text is stored exactly as
// extracted, and all cleaning happens downstream during draft building.
type RawCapture struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRawCapture creates a new RawCapture with the given source identifier and
// extracted text. It generates a new UUID for the capture ID and sets the
// creation timestamp. Returns an error if validation fails.
func NewRawCapture(source, text string) (*RawCapture, error) {
	capture := &RawCapture{
		ID:        uuid.New(),
		Source:    source,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := capture.Validate(); err != nil {
		return nil, err
	}

	return capture, nil
}

// Validate checks if the RawCapture has valid data.
// Returns an error if any field fails validation.
func (c *RawCapture) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCaptureIDEmpty
	}

	if c.Text == "" {
		return ErrCaptureTextEmpty
	}

	return nil
}
