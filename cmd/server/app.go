package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tkondo/kioku-api/internal/config"
	"github.com/tkondo/kioku-api/internal/ingest"
	"github.com/tkondo/kioku-api/internal/platform/gemini"
	"github.com/tkondo/kioku-api/internal/platform/logger"
	"github.com/tkondo/kioku-api/internal/platform/openai"
	"github.com/tkondo/kioku-api/internal/store"
	"github.com/tkondo/kioku-api/internal/task"
	"github.com/tkondo/kioku-api/internal/translation"
)

const shutdownTimeout = 10 * time.Second

// taskSubmitter adapts the task runner to the ingestion service's submitter
// interface.
type taskSubmitter struct {
	runner *task.Runner
}

func (s taskSubmitter) Submit(ctx context.Context, t ingest.Task) error {
	return s.runner.Submit(ctx, t)
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	captureStore *store.CaptureStore
	draftStore   *store.DraftStore
	cardStore    *store.CardStore
	sessionStore *store.SessionStore

	taskRunner    *task.Runner
	ingestService *ingest.Service
}

// newApplication loads configuration and builds the full dependency graph.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path,
		"translation_backend", cfg.Translation.Backend)

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &application{
		config: cfg,
		logger: appLogger,
		db:     db,

		captureStore: store.NewCaptureStore(db, appLogger),
		draftStore:   store.NewDraftStore(db, appLogger),
		cardStore:    store.NewCardStore(db, appLogger),
		sessionStore: store.NewSessionStore(db, appLogger),
	}

	backend, err := app.setupTranslationBackend()
	if err != nil {
		db.Close()
		return nil, err
	}

	builder := ingest.NewBuilder(backend, appLogger)

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, appLogger)

	factory := task.NewDraftBuildTaskFactory(builder, app.draftStore, appLogger)

	app.ingestService = ingest.NewService(
		app.captureStore,
		app.draftStore,
		app.cardStore,
		taskSubmitter{runner: app.taskRunner},
		factory,
		appLogger,
	)

	return app, nil
}

// setupTranslationBackend constructs the configured translation backend.
// A backend whose API key is missing still constructs; it degrades to
// in-band error markers instead of failing startup.
func (app *application) setupTranslationBackend() (translation.Translator, error) {
	switch app.config.Translation.Backend {
	case "gemini":
		backend, err := gemini.NewTranslator(
			context.Background(), app.logger, app.config.Translation)
		if err != nil {
			return nil, fmt.Errorf("failed to set up gemini backend: %w", err)
		}
		return backend, nil
	case "openai":
		backend, err := openai.NewTranslator(app.logger, app.config.Translation)
		if err != nil {
			return nil, fmt.Errorf("failed to set up openai backend: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown translation backend %q", app.config.Translation.Backend)
	}
}

// Run starts the task runner and the HTTP server, then blocks until the
// process receives an interrupt or the server fails. Shutdown drains
// in-flight requests and running tasks before returning.
func (app *application) Run() error {
	app.taskRunner.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		app.shutdown(nil)
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-stop:
		app.logger.Info("shutdown signal received", "signal", sig.String())
	}

	return app.shutdown(server)
}

// shutdown stops the HTTP server, the task runner, and the database, in
// that order so queued work can still reach the store.
func (app *application) shutdown(server *http.Server) error {
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			app.logger.Error("HTTP server shutdown failed", "error", err)
		}
	}

	app.taskRunner.Stop()

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	app.logger.Info("shutdown complete")
	return nil
}
