package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tkondo/kioku-api/internal/domain"
)

// CardStore persists accepted study cards in SQLite.
type CardStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewCardStore creates a SQLite-backed card store.
// If logger is nil, the default logger is used.
func NewCardStore(db *sqlx.DB, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// cardRow maps a cards table row.
type cardRow struct {
	ID             string    `db:"id"`
	DraftID        string    `db:"draft_id"`
	EN             string    `db:"en"`
	JP             string    `db:"jp"`
	SourceSentence string    `db:"source_sentence"`
	Notes          string    `db:"notes"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// CreateMultiple saves a batch of cards accepted from a draft in a single
// transaction, so a mid-batch failure never leaves a half-accepted draft.
func (s *CardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.ErrorContext(ctx, "failed to rollback card insert", slog.String("error", err.Error()))
		}
	}()

	query := `
		INSERT INTO cards (id, draft_id, en, jp, source_sentence, notes, created_at, updated_at)
		VALUES (:id, :draft_id, :en, :jp, :source_sentence, :notes, :created_at, :updated_at)
	`
	for _, card := range cards {
		if _, err := tx.NamedExecContext(ctx, query, cardToRow(card)); err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card insert: %w", err)
	}

	return nil
}

// GetByID retrieves a card by its unique ID.
// Returns store.ErrCardNotFound if no card exists with that ID.
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var row cardRow
	query := `
		SELECT id, draft_id, en, jp, source_sentence, notes, created_at, updated_at
		FROM cards WHERE id = ?
	`

	err := s.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to query card: %w", err)
	}

	return row.toDomain()
}

// List retrieves all cards ordered by creation time, oldest first.
func (s *CardStore) List(ctx context.Context) ([]*domain.Card, error) {
	var rows []cardRow
	query := `
		SELECT id, draft_id, en, jp, source_sentence, notes, created_at, updated_at
		FROM cards ORDER BY created_at ASC
	`

	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}

	cards := make([]*domain.Card, 0, len(rows))
	for i := range rows {
		card, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func cardToRow(card *domain.Card) *cardRow {
	return &cardRow{
		ID:             card.ID.String(),
		DraftID:        card.DraftID.String(),
		EN:             card.EN,
		JP:             card.JP,
		SourceSentence: card.SourceSentence,
		Notes:          card.Notes,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

func (r *cardRow) toDomain() (*domain.Card, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid card ID in store: %w", err)
	}
	draftID, err := uuid.Parse(r.DraftID)
	if err != nil {
		return nil, fmt.Errorf("invalid draft ID in store: %w", err)
	}

	return &domain.Card{
		ID:             id,
		DraftID:        draftID,
		EN:             r.EN,
		JP:             r.JP,
		SourceSentence: r.SourceSentence,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}, nil
}
