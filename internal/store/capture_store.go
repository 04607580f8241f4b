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

// CaptureStore persists raw captures in SQLite.
type CaptureStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewCaptureStore creates a SQLite-backed capture store.
// If logger is nil, the default logger is used.
func NewCaptureStore(db *sqlx.DB, logger *slog.Logger) *CaptureStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CaptureStore{
		db:     db,
		logger: logger.With(slog.String("component", "capture_store")),
	}
}

// captureRow maps a captures table row. The sqlite3 driver round-trips
// time.Time on TIMESTAMP columns.
type captureRow struct {
	ID        string    `db:"id"`
	Source    string    `db:"source"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

// Create saves a new capture, validating it first.
// Returns store.ErrInvalidEntity wrapping the validation error on bad data.
func (s *CaptureStore) Create(ctx context.Context, capture *domain.RawCapture) error {
	if err := capture.Validate(); err != nil {
		s.logger.WarnContext(ctx, "capture validation failed during create",
			slog.String("error", err.Error()),
			slog.String("capture_id", capture.ID.String()))
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO captures (id, source, text, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		capture.ID.String(),
		capture.Source,
		capture.Text,
		capture.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert capture: %w", err)
	}

	return nil
}

// GetByID retrieves a capture by its unique ID.
// Returns store.ErrCaptureNotFound if no capture exists with that ID.
func (s *CaptureStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.RawCapture, error) {
	var row captureRow
	query := `SELECT id, source, text, created_at FROM captures WHERE id = ?`

	err := s.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCaptureNotFound
		}
		return nil, fmt.Errorf("failed to query capture: %w", err)
	}

	return row.toDomain()
}

func (r *captureRow) toDomain() (*domain.RawCapture, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid capture ID in store: %w", err)
	}

	return &domain.RawCapture{
		ID:        id,
		Source:    r.Source,
		Text:      r.Text,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}
