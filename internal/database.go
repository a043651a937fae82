package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schemaStatements create the evidence database tables
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS evidence (
		id TEXT NOT NULL,
		type TEXT NOT NULL,
		timestamp TEXT,
		data JSON NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (type, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evidence_type_timestamp ON evidence (type, timestamp)`,
	`CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		hours REAL NOT NULL,
		activity_category TEXT,
		description TEXT,
		rate REAL,
		billable REAL,
		data JSON NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS saved_prompts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		template TEXT NOT NULL,
		system_prompt TEXT,
		description TEXT,
		goal TEXT NOT NULL DEFAULT 'time_entries',
		tags JSON,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// OpenDatabase opens (creating if needed) a SQLite evidence database
func OpenDatabase(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	return db, nil
}

// OpenDatabaseReadOnly opens an existing SQLite database in read-only mode
func OpenDatabaseReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	return db, nil
}

// EnsureSchema creates any missing tables
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return &StorageError{Op: "schema", Err: err}
		}
	}
	return nil
}
