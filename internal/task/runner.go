package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages background task processing. Task outcomes are recorded by
// the tasks themselves (a draft build updates its draft row), so the runner
// keeps no persistent state; a restart simply loses queued-but-unstarted
// work, whose drafts stay in the pending state for the UI to surface.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewRunner creates a new Runner
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount < 1 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize < 1 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue
func (r *Runner) Submit(ctx context.Context, task Task) error {
	select {
	case r.taskChan <- task:
		return nil
	default:
		// Queue is full, return error
		return fmt.Errorf("task queue is full, try again later")
	}
}

// Start initializes the worker pool and begins processing tasks
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop gracefully shuts down the task runner. The task channel is left open
// so a late Submit cannot panic; queued tasks are simply never picked up.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// worker processes tasks from the queue
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			// Context cancelled, stop worker
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task := <-r.taskChan:
			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *Runner) processTask(task Task, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	logger.Info("processing task")

	if err := task.Execute(ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed successfully")
}
