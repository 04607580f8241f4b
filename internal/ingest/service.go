package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tkondo/kioku-api/internal/domain"
)

// Service errors
var (
	// ErrDraftNotReady is returned when a caller tries to accept a draft
	// whose background build has not completed.
	ErrDraftNotReady = errors.New("draft build has not completed")

	// ErrCardIndexOutOfRange is returned when an accept request references
	// a card index the draft does not have.
	ErrCardIndexOutOfRange = errors.New("card index out of range")
)

// CaptureStore defines the persistence interface the service needs for
// captures.
type CaptureStore interface {
	// Create saves a new capture to the store
	Create(ctx context.Context, capture *domain.RawCapture) error

	// GetByID retrieves a capture by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RawCapture, error)
}

// DraftStore defines the persistence interface the service needs for drafts.
type DraftStore interface {
	// Create saves a new draft to the store
	Create(ctx context.Context, draft *domain.Draft) error

	// Update saves changes to an existing draft
	Update(ctx context.Context, draft *domain.Draft) error

	// GetByID retrieves a draft by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
}

// CardStore defines the persistence interface the service needs for
// accepted cards.
type CardStore interface {
	// CreateMultiple saves a batch of cards atomically
	CreateMultiple(ctx context.Context, cards []*domain.Card) error
}

// TaskSubmitter defines the interface for enqueueing background work.
type TaskSubmitter interface {
	// Submit adds a task to the processing queue
	Submit(ctx context.Context, task Task) error
}

// Task is the unit of background work the service submits. Declared here so
// the service depends on the capability, not on the task runner package.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskFactory creates draft build tasks for submitted captures.
type TaskFactory interface {
	// CreateTask creates a background task that builds the given draft from
	// the given capture's text
	CreateTask(capture *domain.RawCapture, draftID uuid.UUID) (Task, error)
}

// Service accepts raw captures and kicks off asynchronous draft builds. The
// draft row is created up front in the pending state so callers can poll it
// while the build runs.
type Service struct {
	captures CaptureStore
	drafts   DraftStore
	cards    CardStore
	runner   TaskSubmitter
	factory  TaskFactory
	logger   *slog.Logger
}

// NewService creates an ingestion Service with the given dependencies.
func NewService(
	captures CaptureStore,
	drafts DraftStore,
	cards CardStore,
	runner TaskSubmitter,
	factory TaskFactory,
	logger *slog.Logger,
) *Service {
	return &Service{
		captures: captures,
		drafts:   drafts,
		cards:    cards,
		runner:   runner,
		factory:  factory,
		logger:   logger,
	}
}

// SubmitCapture stores the capture, creates a pending draft for it, and
// enqueues the background build. It returns the capture and the pending
// draft so the caller can hand back both IDs for polling.
func (s *Service) SubmitCapture(
	ctx context.Context,
	source, text string,
) (*domain.RawCapture, *domain.Draft, error) {
	capture, err := domain.NewRawCapture(source, text)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid capture: %w", err)
	}

	if err := s.captures.Create(ctx, capture); err != nil {
		return nil, nil, fmt.Errorf("failed to save capture: %w", err)
	}

	draft, err := domain.NewDraft(capture.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create draft: %w", err)
	}

	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, nil, fmt.Errorf("failed to save draft: %w", err)
	}

	buildTask, err := s.factory.CreateTask(capture, draft.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create build task: %w", err)
	}

	if err := s.runner.Submit(ctx, buildTask); err != nil {
		return nil, nil, fmt.Errorf("failed to submit build task: %w", err)
	}

	s.logger.InfoContext(ctx, "capture submitted",
		"capture_id", capture.ID,
		"draft_id", draft.ID,
		"task_id", buildTask.ID(),
		"text_length", len(text))

	return capture, draft, nil
}

// GetDraft retrieves a draft by ID for polling.
func (s *Service) GetDraft(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	return s.drafts.GetByID(ctx, id)
}

// AcceptDraft turns the selected draft cards into permanent study cards.
// A nil or empty indices slice accepts every card that does not need manual
// review; explicit indices may include flagged cards the user has corrected
// upstream. The draft must have finished building.
func (s *Service) AcceptDraft(
	ctx context.Context,
	draftID uuid.UUID,
	indices []int,
) ([]*domain.Card, error) {
	draft, err := s.drafts.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Status != domain.DraftStatusCompleted {
		return nil, fmt.Errorf("%w: draft is %s", ErrDraftNotReady, draft.Status)
	}

	if len(indices) == 0 {
		for i, card := range draft.Cards {
			if !card.NeedsReview {
				indices = append(indices, i)
			}
		}
	}

	cards := make([]*domain.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(draft.Cards) {
			return nil, fmt.Errorf("%w: %d", ErrCardIndexOutOfRange, idx)
		}
		card, err := domain.NewCard(draft.ID, draft.Cards[idx])
		if err != nil {
			return nil, fmt.Errorf("failed to build card from draft: %w", err)
		}
		cards = append(cards, card)
	}

	if err := s.cards.CreateMultiple(ctx, cards); err != nil {
		return nil, fmt.Errorf("failed to save accepted cards: %w", err)
	}

	s.logger.InfoContext(ctx, "draft accepted",
		"draft_id", draftID,
		"accepted_cards", len(cards),
		"draft_cards", len(draft.Cards))

	return cards, nil
}
