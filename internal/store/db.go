package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// Open connects to the SQLite database at the given path, configures the
// connection for single-writer use, and creates the schema if needed.
// The special path ":memory:" opens an in-memory database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// createSchema creates the tables if they don't exist. Drafts persist their
// cards, warnings, and detection result as JSON documents; everything the
// API filters or joins on gets its own column.
func createSchema(db *sqlx.DB) error {
	statements := []struct {
		name  string
		query string
	}{
		{
			name: "captures",
			query: `
				CREATE TABLE IF NOT EXISTS captures (
					id TEXT PRIMARY KEY,
					source TEXT NOT NULL,
					text TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL
				)
			`,
		},
		{
			name: "drafts",
			query: `
				CREATE TABLE IF NOT EXISTS drafts (
					id TEXT PRIMARY KEY,
					capture_id TEXT NOT NULL,
					status TEXT NOT NULL,
					cards TEXT NOT NULL,
					warnings TEXT NOT NULL,
					detected TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					FOREIGN KEY (capture_id) REFERENCES captures(id)
				)
			`,
		},
		{
			name: "cards",
			query: `
				CREATE TABLE IF NOT EXISTS cards (
					id TEXT PRIMARY KEY,
					draft_id TEXT NOT NULL,
					en TEXT NOT NULL,
					jp TEXT NOT NULL,
					source_sentence TEXT NOT NULL,
					notes TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					FOREIGN KEY (draft_id) REFERENCES drafts(id)
				)
			`,
		},
		{
			name: "study_sessions",
			query: `
				CREATE TABLE IF NOT EXISTS study_sessions (
					id TEXT PRIMARY KEY,
					date TIMESTAMP NOT NULL,
					card_count INTEGER NOT NULL,
					correct_count INTEGER NOT NULL,
					maybe_count INTEGER NOT NULL,
					incorrect_count INTEGER NOT NULL,
					duration_seconds INTEGER NOT NULL
				)
			`,
		},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.query); err != nil {
			return fmt.Errorf("failed to create %s table: %w", stmt.name, err)
		}
	}

	return nil
}
