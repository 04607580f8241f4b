package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkondo/kioku-api/internal/domain"
	"github.com/tkondo/kioku-api/internal/ingest"
	"github.com/tkondo/kioku-api/internal/store"
)

// fakeCaptureService implements CaptureService for handler tests.
type fakeCaptureService struct {
	capture    *domain.RawCapture
	draft      *domain.Draft
	cards      []*domain.Card
	submitErr  error
	getErr     error
	acceptErr  error
	gotSource  string
	gotText    string
	gotIndices []int
}

func (f *fakeCaptureService) SubmitCapture(
	ctx context.Context,
	source, text string,
) (*domain.RawCapture, *domain.Draft, error) {
	f.gotSource = source
	f.gotText = text
	if f.submitErr != nil {
		return nil, nil, f.submitErr
	}
	return f.capture, f.draft, nil
}

func (f *fakeCaptureService) GetDraft(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.draft, nil
}

func (f *fakeCaptureService) AcceptDraft(
	ctx context.Context,
	draftID uuid.UUID,
	indices []int,
) ([]*domain.Card, error) {
	f.gotIndices = indices
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	return f.cards, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCaptureAndDraft(t *testing.T) (*domain.RawCapture, *domain.Draft) {
	t.Helper()

	capture, err := domain.NewRawCapture("test", "Hello world.")
	require.NoError(t, err)
	draft, err := domain.NewDraft(capture.ID)
	require.NoError(t, err)
	return capture, draft
}

// draftRequest routes the request through a chi router so URL parameters
// resolve the way they do in production.
func draftRequest(handler http.HandlerFunc, method, path string, body []byte) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	switch method {
	case http.MethodGet:
		router.Get("/api/drafts/{id}", handler)
	default:
		router.Post("/api/drafts/{id}/accept", handler)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCapture(t *testing.T) {
	t.Parallel() // Enable parallel execution

	capture, draft := testCaptureAndDraft(t)
	service := &fakeCaptureService{capture: capture, draft: draft}
	handler := NewCaptureHandler(service, testLogger())

	body, err := json.Marshal(CreateCaptureRequest{Source: "ocr", Text: "Hello world."})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/captures", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.CreateCapture(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "ocr", service.gotSource)
	assert.Equal(t, "Hello world.", service.gotText)

	var resp CreateCaptureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, capture.ID.String(), resp.CaptureID)
	assert.Equal(t, draft.ID.String(), resp.DraftID)
	assert.Equal(t, string(domain.DraftStatusPending), resp.Status)
}

func TestCreateCaptureValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution

	handler := NewCaptureHandler(&fakeCaptureService{}, testLogger())

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"source": "ocr"`},
		{name: "missing text", body: `{"source": "ocr"}`},
		{name: "missing source", body: `{"text": "Hello."}`},
		{name: "empty text", body: `{"source": "ocr", "text": ""}`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution

			req := httptest.NewRequest(
				http.MethodPost, "/api/captures", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()
			handler.CreateCapture(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetDraft(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, draft := testCaptureAndDraft(t)
	draft.Cards = []domain.DraftCard{domain.NewDraftCard("Hello world.", "こんにちは世界。", false)}
	require.NoError(t, draft.UpdateStatus(domain.DraftStatusCompleted))

	handler := NewCaptureHandler(&fakeCaptureService{draft: draft}, testLogger())

	rec := draftRequest(handler.GetDraft, http.MethodGet, "/api/drafts/"+draft.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp DraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, draft.ID.String(), resp.ID)
	assert.Equal(t, string(domain.DraftStatusCompleted), resp.Status)
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, "こんにちは世界。", resp.Cards[0].JP)
}

func TestGetDraftErrors(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("invalid ID", func(t *testing.T) {
		t.Parallel() // Enable parallel execution

		handler := NewCaptureHandler(&fakeCaptureService{}, testLogger())
		rec := draftRequest(handler.GetDraft, http.MethodGet, "/api/drafts/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel() // Enable parallel execution

		handler := NewCaptureHandler(
			&fakeCaptureService{getErr: store.ErrDraftNotFound}, testLogger())
		rec := draftRequest(
			handler.GetDraft, http.MethodGet, "/api/drafts/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAcceptDraft(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, draft := testCaptureAndDraft(t)
	card, err := domain.NewCard(draft.ID, domain.NewDraftCard("Hello world.", "こんにちは世界。", false))
	require.NoError(t, err)

	service := &fakeCaptureService{draft: draft, cards: []*domain.Card{card}}
	handler := NewCaptureHandler(service, testLogger())

	body := []byte(`{"indices": [0]}`)
	rec := draftRequest(
		handler.AcceptDraft, http.MethodPost, "/api/drafts/"+draft.ID.String()+"/accept", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []int{0}, service.gotIndices)

	var resp AcceptDraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, card.ID.String(), resp.Cards[0].ID)
	assert.Equal(t, "こんにちは世界。", resp.Cards[0].JP)
}

func TestAcceptDraftErrors(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name       string
		acceptErr  error
		wantStatus int
	}{
		{name: "not found", acceptErr: store.ErrDraftNotFound, wantStatus: http.StatusNotFound},
		{name: "not ready", acceptErr: ingest.ErrDraftNotReady, wantStatus: http.StatusConflict},
		{
			name:       "index out of range",
			acceptErr:  ingest.ErrCardIndexOutOfRange,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution

			handler := NewCaptureHandler(&fakeCaptureService{acceptErr: tc.acceptErr}, testLogger())
			rec := draftRequest(
				handler.AcceptDraft,
				http.MethodPost,
				"/api/drafts/"+uuid.NewString()+"/accept",
				[]byte(`{}`))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
