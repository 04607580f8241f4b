package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkondo/kioku-api/internal/domain"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err, "Open(\":memory:\") should succeed")
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCaptureStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	captures := NewCaptureStore(db, testLogger())
	ctx := context.Background()

	capture, err := domain.NewRawCapture("ocr-import", "Hello world. How are you?")
	require.NoError(t, err)

	require.NoError(t, captures.Create(ctx, capture))

	got, err := captures.GetByID(ctx, capture.ID)
	require.NoError(t, err)

	assert.Equal(t, capture.ID, got.ID)
	assert.Equal(t, "ocr-import", got.Source)
	assert.Equal(t, "Hello world. How are you?", got.Text)
	assert.WithinDuration(t, capture.CreatedAt, got.CreatedAt, time.Second)
}

func TestCaptureStoreNotFound(t *testing.T) {
	db := testDB(t)
	captures := NewCaptureStore(db, testLogger())

	_, err := captures.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCaptureNotFound)
	assert.True(t, IsNotFoundError(err))
}

func TestCaptureStoreRejectsInvalid(t *testing.T) {
	db := testDB(t)
	captures := NewCaptureStore(db, testLogger())

	invalid := &domain.RawCapture{ID: uuid.New(), Source: "test", Text: ""}
	err := captures.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, ErrInvalidEntity)
}

func TestDraftStoreLifecycle(t *testing.T) {
	db := testDB(t)
	captures := NewCaptureStore(db, testLogger())
	drafts := NewDraftStore(db, testLogger())
	ctx := context.Background()

	capture, err := domain.NewRawCapture("test", "Some text.")
	require.NoError(t, err)
	require.NoError(t, captures.Create(ctx, capture))

	draft, err := domain.NewDraft(capture.ID)
	require.NoError(t, err)
	require.NoError(t, drafts.Create(ctx, draft))

	// A freshly created draft is pending with no cards.
	got, err := drafts.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftStatusPending, got.Status)
	assert.Empty(t, got.Cards)

	// Complete the draft with build results and reload.
	got.Cards = []domain.DraftCard{
		domain.NewDraftCard("Hello world.", "こんにちは世界。", false),
		domain.NewDraftCard("Bad one.", "[translation error: empty response]", true),
	}
	got.Warnings = []string{"1 of 2 translations failed and need manual correction"}
	got.Detected = domain.Detection{SentenceCount: 2, Language: "en"}
	require.NoError(t, got.UpdateStatus(domain.DraftStatusCompleted))
	require.NoError(t, drafts.Update(ctx, got))

	reloaded, err := drafts.GetByID(ctx, draft.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.DraftStatusCompleted, reloaded.Status)
	require.Len(t, reloaded.Cards, 2)
	assert.Equal(t, "こんにちは世界。", reloaded.Cards[0].JP)
	assert.False(t, reloaded.Cards[0].NeedsReview)
	assert.True(t, reloaded.Cards[1].NeedsReview)
	assert.Contains(t, reloaded.Cards[1].Flags, domain.FlagTranslationError)
	assert.Equal(t, []string{"1 of 2 translations failed and need manual correction"}, reloaded.Warnings)
	assert.Equal(t, 2, reloaded.Detected.SentenceCount)
	assert.Equal(t, "en", reloaded.Detected.Language)
}

func TestDraftStoreUpdateMissing(t *testing.T) {
	db := testDB(t)
	drafts := NewDraftStore(db, testLogger())

	draft, err := domain.NewDraft(uuid.New())
	require.NoError(t, err)

	err = drafts.Update(context.Background(), draft)
	assert.ErrorIs(t, err, ErrUpdateFailed)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCardStoreCreateMultipleAndList(t *testing.T) {
	db := testDB(t)
	captures := NewCaptureStore(db, testLogger())
	drafts := NewDraftStore(db, testLogger())
	cards := NewCardStore(db, testLogger())
	ctx := context.Background()

	capture, err := domain.NewRawCapture("test", "First. Second.")
	require.NoError(t, err)
	require.NoError(t, captures.Create(ctx, capture))

	draft, err := domain.NewDraft(capture.ID)
	require.NoError(t, err)
	require.NoError(t, drafts.Create(ctx, draft))

	first, err := domain.NewCard(draft.ID, domain.NewDraftCard("First.", "最初。", false))
	require.NoError(t, err)
	second, err := domain.NewCard(draft.ID, domain.NewDraftCard("Second.", "二番目。", false))
	require.NoError(t, err)

	require.NoError(t, cards.CreateMultiple(ctx, []*domain.Card{first, second}))

	got, err := cards.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First.", got.EN)
	assert.Equal(t, "最初。", got.JP)
	assert.Equal(t, draft.ID, got.DraftID)

	listed, err := cards.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestCardStoreEmptyBatch(t *testing.T) {
	db := testDB(t)
	cards := NewCardStore(db, testLogger())

	assert.NoError(t, cards.CreateMultiple(context.Background(), nil))
}

func TestCardStoreNotFound(t *testing.T) {
	db := testDB(t)
	cards := NewCardStore(db, testLogger())

	_, err := cards.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSessionStoreCreateAndList(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db, testLogger())
	ctx := context.Background()

	older, err := domain.NewStudySession(
		time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC), 10, 8, 1, 1, 300)
	require.NoError(t, err)
	newer, err := domain.NewStudySession(
		time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), 5, 5, 0, 0, 120)
	require.NoError(t, err)

	// Insert newest first to verify ordering comes from the query.
	require.NoError(t, sessions.Create(ctx, newer))
	require.NoError(t, sessions.Create(ctx, older))

	listed, err := sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, older.ID, listed[0].ID)
	assert.Equal(t, newer.ID, listed[1].ID)
	assert.Equal(t, 10, listed[0].CardCount)
	assert.Equal(t, 300, listed[0].DurationSeconds)
}

func TestSessionStoreGetByID(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db, testLogger())
	ctx := context.Background()

	session, err := domain.NewStudySession(
		time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC), 10, 8, 1, 1, 300)
	require.NoError(t, err)
	require.NoError(t, sessions.Create(ctx, session))

	loaded, err := sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, 8, loaded.CorrectCount)

	_, err = sessions.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreRejectsInvalid(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db, testLogger())

	invalid := &domain.StudySession{
		ID:             uuid.New(),
		Date:           time.Now().UTC(),
		CardCount:      5,
		CorrectCount:   4,
		MaybeCount:     2,
		IncorrectCount: 2, // 4+2+2 > 5
	}
	err := sessions.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, ErrInvalidEntity)

	listed, err := sessions.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
