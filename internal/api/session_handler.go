package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkondo/kioku-api/internal/api/shared"
	"github.com/tkondo/kioku-api/internal/domain"
	"github.com/tkondo/kioku-api/internal/stats"
	"github.com/tkondo/kioku-api/internal/store"
)

// SessionStore defines the persistence operations the session handler needs.
type SessionStore interface {
	Create(ctx context.Context, session *domain.StudySession) error
	List(ctx context.Context) ([]domain.StudySession, error)
}

// CreateSessionRequest represents the request body for recording a completed
// study session
type CreateSessionRequest struct {
	Date            time.Time `json:"date"             validate:"required"`
	CardCount       int       `json:"card_count"       validate:"gte=0"`
	CorrectCount    int       `json:"correct_count"    validate:"gte=0"`
	MaybeCount      int       `json:"maybe_count"      validate:"gte=0"`
	IncorrectCount  int       `json:"incorrect_count"  validate:"gte=0"`
	DurationSeconds int       `json:"duration_seconds" validate:"gte=0"`
}

// SessionResponse represents the response data for a stored study session
type SessionResponse struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	CardCount       int       `json:"card_count"`
	CorrectCount    int       `json:"correct_count"`
	MaybeCount      int       `json:"maybe_count"`
	IncorrectCount  int       `json:"incorrect_count"`
	DurationSeconds int       `json:"duration_seconds"`
}

// SessionHandler handles study session and statistics HTTP requests
type SessionHandler struct {
	sessions SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions SessionStore, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSession handles POST /api/sessions requests
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := domain.NewStudySession(
		req.Date,
		req.CardCount,
		req.CorrectCount,
		req.MaybeCount,
		req.IncorrectCount,
		req.DurationSeconds,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session: "+err.Error())
		return
	}

	if err := h.sessions.Create(r.Context(), session); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to save study session", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to save session")
		return
	}

	response := SessionResponse{
		ID:              session.ID.String(),
		Date:            session.Date,
		CardCount:       session.CardCount,
		CorrectCount:    session.CorrectCount,
		MaybeCount:      session.MaybeCount,
		IncorrectCount:  session.IncorrectCount,
		DurationSeconds: session.DurationSeconds,
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// GetStats handles GET /api/stats requests. The summary is recomputed from
// the full session history on every call rather than persisted.
func (h *SessionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load study sessions", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	summary := stats.Summarize(sessions, h.now())

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
