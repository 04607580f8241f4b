// Package main implements the entry point for the kioku API server, which
// turns captured text into draft flashcards, grades typed answers, and
// reports study statistics.
package main

import (
	"log"
)

// main is the entry point for the kioku-api server. Configuration loading,
// logging, database setup, dependency wiring, and the HTTP server lifecycle
// all live in the application type; main only reports a fatal startup error.
func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
