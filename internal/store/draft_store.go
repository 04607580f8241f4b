package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tkondo/kioku-api/internal/domain"
)

// DraftStore persists drafts in SQLite. A draft's cards, warnings, and
// detection result are stored as JSON documents; the API only ever loads a
// draft whole, so nothing inside them needs its own column.
type DraftStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewDraftStore creates a SQLite-backed draft store.
// If logger is nil, the default logger is used.
func NewDraftStore(db *sqlx.DB, logger *slog.Logger) *DraftStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DraftStore{
		db:     db,
		logger: logger.With(slog.String("component", "draft_store")),
	}
}

// draftRow maps a drafts table row.
type draftRow struct {
	ID        string    `db:"id"`
	CaptureID string    `db:"capture_id"`
	Status    string    `db:"status"`
	Cards     string    `db:"cards"`
	Warnings  string    `db:"warnings"`
	Detected  string    `db:"detected"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Create saves a new draft, validating it first.
// Returns store.ErrInvalidEntity wrapping the validation error on bad data.
func (s *DraftStore) Create(ctx context.Context, draft *domain.Draft) error {
	if err := draft.Validate(); err != nil {
		s.logger.WarnContext(ctx, "draft validation failed during create",
			slog.String("error", err.Error()),
			slog.String("draft_id", draft.ID.String()))
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	row, err := draftToRow(draft)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO drafts (id, capture_id, status, cards, warnings, detected, created_at, updated_at)
		VALUES (:id, :capture_id, :status, :cards, :warnings, :detected, :created_at, :updated_at)
	`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert draft: %w", err)
	}

	return nil
}

// Update saves changes to an existing draft.
// Returns store.ErrUpdateFailed wrapping store.ErrDraftNotFound if the draft
// does not exist.
func (s *DraftStore) Update(ctx context.Context, draft *domain.Draft) error {
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	draft.UpdatedAt = time.Now().UTC()

	row, err := draftToRow(draft)
	if err != nil {
		return err
	}

	query := `
		UPDATE drafts
		SET status = :status, cards = :cards, warnings = :warnings,
		    detected = :detected, updated_at = :updated_at
		WHERE id = :id
	`
	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %w", ErrUpdateFailed, ErrDraftNotFound)
	}

	return nil
}

// GetByID retrieves a draft by its unique ID.
// Returns store.ErrDraftNotFound if no draft exists with that ID.
func (s *DraftStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	var row draftRow
	query := `
		SELECT id, capture_id, status, cards, warnings, detected, created_at, updated_at
		FROM drafts WHERE id = ?
	`

	err := s.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to query draft: %w", err)
	}

	return row.toDomain()
}

func draftToRow(draft *domain.Draft) (*draftRow, error) {
	cards, err := json.Marshal(draft.Cards)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft cards: %w", err)
	}
	warnings, err := json.Marshal(draft.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft warnings: %w", err)
	}
	detected, err := json.Marshal(draft.Detected)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft detection: %w", err)
	}

	return &draftRow{
		ID:        draft.ID.String(),
		CaptureID: draft.CaptureID.String(),
		Status:    string(draft.Status),
		Cards:     string(cards),
		Warnings:  string(warnings),
		Detected:  string(detected),
		CreatedAt: draft.CreatedAt,
		UpdatedAt: draft.UpdatedAt,
	}, nil
}

func (r *draftRow) toDomain() (*domain.Draft, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid draft ID in store: %w", err)
	}
	captureID, err := uuid.Parse(r.CaptureID)
	if err != nil {
		return nil, fmt.Errorf("invalid capture ID in store: %w", err)
	}

	draft := &domain.Draft{
		ID:        id,
		CaptureID: captureID,
		Status:    domain.DraftStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}

	if err := json.Unmarshal([]byte(r.Cards), &draft.Cards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft cards: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Warnings), &draft.Warnings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft warnings: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Detected), &draft.Detected); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft detection: %w", err)
	}

	return draft, nil
}
