package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tkondo/kioku-api/internal/api"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	captureHandler := api.NewCaptureHandler(app.ingestService, app.logger)
	gradeHandler := api.NewGradeHandler(app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionStore, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Capture ingestion and draft polling
		r.Post("/captures", captureHandler.CreateCapture)
		r.Get("/drafts/{id}", captureHandler.GetDraft)
		r.Post("/drafts/{id}/accept", captureHandler.AcceptDraft)

		// Answer grading
		r.Post("/grade", gradeHandler.Grade)

		// Study sessions and statistics
		r.Post("/sessions", sessionHandler.CreateSession)
		r.Get("/stats", sessionHandler.GetStats)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
