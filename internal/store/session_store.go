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

// SessionStore persists completed study sessions in SQLite. The statistics
// engine recomputes its summary from the full session history on demand, so
// the store only has to append and list.
type SessionStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSessionStore creates a SQLite-backed study session store.
// If logger is nil, the default logger is used.
func NewSessionStore(db *sqlx.DB, logger *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// sessionRow maps a study_sessions table row.
type sessionRow struct {
	ID              string    `db:"id"`
	Date            time.Time `db:"date"`
	CardCount       int       `db:"card_count"`
	CorrectCount    int       `db:"correct_count"`
	MaybeCount      int       `db:"maybe_count"`
	IncorrectCount  int       `db:"incorrect_count"`
	DurationSeconds int       `db:"duration_seconds"`
}

// Create saves a completed study session, validating it first.
// Returns store.ErrInvalidEntity wrapping the validation error on bad data.
func (s *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		s.logger.WarnContext(ctx, "session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions
			(id, date, card_count, correct_count, maybe_count, incorrect_count, duration_seconds)
		VALUES (:id, :date, :card_count, :correct_count, :maybe_count, :incorrect_count, :duration_seconds)
	`
	row := &sessionRow{
		ID:              session.ID.String(),
		Date:            session.Date,
		CardCount:       session.CardCount,
		CorrectCount:    session.CorrectCount,
		MaybeCount:      session.MaybeCount,
		IncorrectCount:  session.IncorrectCount,
		DurationSeconds: session.DurationSeconds,
	}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert study session: %w", err)
	}

	return nil
}

// GetByID retrieves a study session by its unique ID.
// Returns store.ErrSessionNotFound if no session exists with that ID.
func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	var row sessionRow
	query := `
		SELECT id, date, card_count, correct_count, maybe_count, incorrect_count, duration_seconds
		FROM study_sessions WHERE id = ?
	`

	err := s.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query study session: %w", err)
	}

	session, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// List retrieves the full study session history ordered by date, oldest
// first.
func (s *SessionStore) List(ctx context.Context) ([]domain.StudySession, error) {
	var rows []sessionRow
	query := `
		SELECT id, date, card_count, correct_count, maybe_count, incorrect_count, duration_seconds
		FROM study_sessions ORDER BY date ASC
	`

	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query study sessions: %w", err)
	}

	sessions := make([]domain.StudySession, 0, len(rows))
	for i := range rows {
		session, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *sessionRow) toDomain() (domain.StudySession, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.StudySession{}, fmt.Errorf("invalid session ID in store: %w", err)
	}

	return domain.StudySession{
		ID:              id,
		Date:            r.Date.UTC(),
		CardCount:       r.CardCount,
		CorrectCount:    r.CorrectCount,
		MaybeCount:      r.MaybeCount,
		IncorrectCount:  r.IncorrectCount,
		DurationSeconds: r.DurationSeconds,
	}, nil
}
