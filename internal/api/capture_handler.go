package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tkondo/kioku-api/internal/api/shared"
	"github.com/tkondo/kioku-api/internal/domain"
	"github.com/tkondo/kioku-api/internal/ingest"
	"github.com/tkondo/kioku-api/internal/store"
)

// CaptureService defines the ingestion operations the capture handler needs.
type CaptureService interface {
	SubmitCapture(ctx context.Context, source, text string) (*domain.RawCapture, *domain.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	AcceptDraft(ctx context.Context, draftID uuid.UUID, indices []int) ([]*domain.Card, error)
}

// CreateCaptureRequest represents the request body for submitting captured text
type CreateCaptureRequest struct {
	Source string `json:"source" validate:"required,min=1"`
	Text   string `json:"text"   validate:"required,min=1"`
}

// CreateCaptureResponse represents the response for an accepted capture.
// The draft builds asynchronously; clients poll the draft endpoint.
type CreateCaptureResponse struct {
	CaptureID string `json:"capture_id"`
	DraftID   string `json:"draft_id"`
	Status    string `json:"status"`
}

// DraftResponse represents the response data for a draft
type DraftResponse struct {
	ID        string             `json:"id"`
	CaptureID string             `json:"capture_id"`
	Status    string             `json:"status"`
	Cards     []domain.DraftCard `json:"cards"`
	Warnings  []string           `json:"warnings,omitempty"`
	Detected  domain.Detection   `json:"detected"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AcceptDraftRequest represents the request body for accepting draft cards.
// Indices selects which draft cards become permanent; empty means every
// card that does not need manual review.
type AcceptDraftRequest struct {
	Indices []int `json:"indices"`
}

// AcceptDraftResponse represents the response for an accepted draft
type AcceptDraftResponse struct {
	Cards []CardResponse `json:"cards"`
}

// CardResponse represents the response data for a permanent card
type CardResponse struct {
	ID             string    `json:"id"`
	DraftID        string    `json:"draft_id"`
	EN             string    `json:"en"`
	JP             string    `json:"jp"`
	SourceSentence string    `json:"source_sentence"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CaptureHandler handles capture and draft HTTP requests
type CaptureHandler struct {
	service CaptureService
	logger  *slog.Logger
}

// NewCaptureHandler creates a new CaptureHandler
func NewCaptureHandler(service CaptureService, logger *slog.Logger) *CaptureHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CaptureHandler{
		service: service,
		logger:  logger,
	}
}

// CreateCapture handles POST /api/captures requests
func (h *CaptureHandler) CreateCapture(w http.ResponseWriter, r *http.Request) {
	var req CreateCaptureRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	capture, draft, err := h.service.SubmitCapture(r.Context(), req.Source, req.Text)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to submit capture", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to submit capture")
		return
	}

	response := CreateCaptureResponse{
		CaptureID: capture.ID.String(),
		DraftID:   draft.ID.String(),
		Status:    string(draft.Status),
	}

	// 202 Accepted since the draft builds asynchronously
	shared.RespondWithJSON(w, r, http.StatusAccepted, response)
}

// GetDraft handles GET /api/drafts/{id} requests
func (h *CaptureHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	draft, err := h.service.GetDraft(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Draft not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load draft", "error", err, "draft_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load draft")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, draftToResponse(draft))
}

// AcceptDraft handles POST /api/drafts/{id}/accept requests
func (h *CaptureHandler) AcceptDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	var req AcceptDraftRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	cards, err := h.service.AcceptDraft(r.Context(), id, req.Indices)
	if err != nil {
		switch {
		case store.IsNotFoundError(err):
			shared.RespondWithError(w, r, http.StatusNotFound, "Draft not found")
		case errors.Is(err, ingest.ErrDraftNotReady):
			shared.RespondWithError(w, r, http.StatusConflict, "Draft build has not completed")
		case errors.Is(err, ingest.ErrCardIndexOutOfRange):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Card index out of range")
		default:
			h.logger.ErrorContext(r.Context(), "failed to accept draft", "error", err, "draft_id", id)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to accept draft")
		}
		return
	}

	response := AcceptDraftResponse{Cards: make([]CardResponse, 0, len(cards))}
	for _, card := range cards {
		response.Cards = append(response.Cards, cardToResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// draftToResponse converts a domain.Draft to a DraftResponse
func draftToResponse(draft *domain.Draft) DraftResponse {
	cards := draft.Cards
	if cards == nil {
		cards = []domain.DraftCard{}
	}

	return DraftResponse{
		ID:        draft.ID.String(),
		CaptureID: draft.CaptureID.String(),
		Status:    string(draft.Status),
		Cards:     cards,
		Warnings:  draft.Warnings,
		Detected:  draft.Detected,
		CreatedAt: draft.CreatedAt,
		UpdatedAt: draft.UpdatedAt,
	}
}

// cardToResponse converts a domain.Card to a CardResponse
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:             card.ID.String(),
		DraftID:        card.DraftID.String(),
		EN:             card.EN,
		JP:             card.JP,
		SourceSentence: card.SourceSentence,
		Notes:          card.Notes,
		CreatedAt:      card.CreatedAt,
	}
}
