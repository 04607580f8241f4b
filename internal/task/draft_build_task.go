package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tkondo/kioku-api/internal/domain"
	"github.com/tkondo/kioku-api/internal/ingest"
)

// Common errors
var (
	ErrNilBuilder    = errors.New("builder cannot be nil")
	ErrNilDraftStore = errors.New("draft store cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
	ErrNilCapture    = errors.New("capture cannot be nil")
	ErrEmptyDraftID  = errors.New("draft ID cannot be empty")
)

// DraftStore defines the persistence interface the task needs for drafts
type DraftStore interface {
	// GetByID retrieves a draft by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error)

	// Update saves changes to an existing draft
	Update(ctx context.Context, draft *domain.Draft) error
}

// DraftBuildTask implements the Task interface for building a draft of
// candidate cards from a capture's text
type DraftBuildTask struct {
	id      uuid.UUID
	capture *domain.RawCapture
	draftID uuid.UUID
	builder *ingest.Builder
	drafts  DraftStore
	logger  *slog.Logger
}

// NewDraftBuildTask creates a new draft build task
func NewDraftBuildTask(
	capture *domain.RawCapture,
	draftID uuid.UUID,
	builder *ingest.Builder,
	drafts DraftStore,
	logger *slog.Logger,
) (*DraftBuildTask, error) {
	if capture == nil {
		return nil, ErrNilCapture
	}
	if draftID == uuid.Nil {
		return nil, ErrEmptyDraftID
	}
	if builder == nil {
		return nil, ErrNilBuilder
	}
	if drafts == nil {
		return nil, ErrNilDraftStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &DraftBuildTask{
		id:      uuid.New(),
		capture: capture,
		draftID: draftID,
		builder: builder,
		drafts:  drafts,
		logger:  logger,
	}, nil
}

// ID returns the task's unique identifier
func (t *DraftBuildTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *DraftBuildTask) Type() string {
	return TaskTypeDraftBuild
}

// Execute builds the draft. The build itself cannot fail — translation
// problems degrade in-band — so the only error paths are around loading and
// saving the draft row.
func (t *DraftBuildTask) Execute(ctx context.Context) error {
	draft, err := t.drafts.GetByID(ctx, t.draftID)
	if err != nil {
		return fmt.Errorf("failed to load draft %s: %w", t.draftID, err)
	}

	if err := draft.UpdateStatus(domain.DraftStatusProcessing); err != nil {
		return fmt.Errorf("failed to mark draft processing: %w", err)
	}
	if err := t.drafts.Update(ctx, draft); err != nil {
		return fmt.Errorf("failed to save draft status: %w", err)
	}

	result := t.builder.BuildDraft(ctx, t.capture.Text, func(phase ingest.Phase, fraction float64) {
		t.logger.DebugContext(ctx, "draft build progress",
			"draft_id", t.draftID,
			"phase", string(phase),
			"fraction", fraction)
	})

	draft.Cards = result.Cards
	draft.Warnings = result.Warnings
	draft.Detected = result.Detected
	if err := draft.UpdateStatus(domain.DraftStatusCompleted); err != nil {
		return fmt.Errorf("failed to mark draft completed: %w", err)
	}

	if err := t.drafts.Update(ctx, draft); err != nil {
		// The build finished but the result could not be stored; mark the
		// draft failed so the UI does not poll forever.
		if draft.UpdateStatus(domain.DraftStatusFailed) == nil {
			if saveErr := t.drafts.Update(ctx, draft); saveErr != nil {
				t.logger.ErrorContext(ctx, "failed to mark draft failed",
					"draft_id", t.draftID,
					"error", saveErr)
			}
		}
		return fmt.Errorf("failed to save draft result: %w", err)
	}

	return nil
}

// DraftBuildTaskFactory creates DraftBuildTask instances with shared
// dependencies
type DraftBuildTaskFactory struct {
	builder *ingest.Builder
	drafts  DraftStore
	logger  *slog.Logger
}

// NewDraftBuildTaskFactory creates a new task factory
func NewDraftBuildTaskFactory(
	builder *ingest.Builder,
	drafts DraftStore,
	logger *slog.Logger,
) *DraftBuildTaskFactory {
	return &DraftBuildTaskFactory{
		builder: builder,
		drafts:  drafts,
		logger:  logger,
	}
}

// CreateTask creates a new DraftBuildTask for the given capture and draft
func (f *DraftBuildTaskFactory) CreateTask(
	capture *domain.RawCapture,
	draftID uuid.UUID,
) (ingest.Task, error) {
	return NewDraftBuildTask(capture, draftID, f.builder, f.drafts, f.logger)
}
