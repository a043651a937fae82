package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an empty in-memory SQLite database for testing.
// Every :memory: connection is its own database, so the pool is pinned to
// one connection. Callers create the schema they need.
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping in-memory database: %v", err)
	}
	return db
}

// InsertEvidenceRow writes a raw row into the evidence table, bypassing
// validation so tests can seed malformed data
func InsertEvidenceRow(t *testing.T, db *sql.DB, id, evidenceType, timestamp, data string) {
	t.Helper()
	insertSQL := "INSERT INTO evidence (id, type, timestamp, data) VALUES (?, ?, ?, ?)"
	if _, err := db.Exec(insertSQL, id, evidenceType, timestamp, data); err != nil {
		t.Fatalf("Failed to insert evidence row %s: %v", id, err)
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
