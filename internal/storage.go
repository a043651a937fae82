package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EvidenceStore supplies evidence records by category. The engine only reads.
type EvidenceStore interface {
	LoadCategory(ctx context.Context, cat Category) ([]EvidenceRecord, error)
}

// Store is the SQLite-backed evidence store
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertEvidence writes records in one transaction, replacing records with
// the same category and id. Records without an id get a generated one;
// records without a resolvable timestamp are rejected.
func (s *Store) InsertEvidence(records []EvidenceRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if err := r.Validate(); err != nil {
			return 0, &ParseError{Source: "evidence", Key: r.ID, Err: err}
		}
		data, err := json.Marshal(r)
		if err != nil {
			return 0, &ParseError{Source: "evidence", Key: r.ID, Err: err}
		}

		if r.Category == CategoryTimeEntry {
			_, err = tx.Exec(`INSERT OR REPLACE INTO time_entries
				(id, date, hours, activity_category, description, rate, billable, data)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.rawTimestamp(), r.Hours, r.ActivityCategory, r.Description, r.Rate, r.Billable, string(data))
		} else {
			_, err = tx.Exec(`INSERT OR REPLACE INTO evidence (id, type, timestamp, data) VALUES (?, ?, ?, ?)`,
				r.ID, string(r.Category), r.rawTimestamp(), string(data))
		}
		if err != nil {
			return 0, &StorageError{Op: "insert", Err: fmt.Errorf("record %s: %w", r.ID, err)}
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}
	return count, nil
}

// LoadCategory loads one category's records in insertion order. Rows that
// fail to parse are skipped.
func (s *Store) LoadCategory(ctx context.Context, cat Category) ([]EvidenceRecord, error) {
	query := `SELECT id, data FROM evidence WHERE type = ? ORDER BY rowid`
	args := []any{string(cat)}
	if cat == CategoryDocketEntry {
		// older exports stored docket entries as "docket"
		query = `SELECT id, data FROM evidence WHERE type IN (?, 'docket') ORDER BY rowid`
	}
	if cat == CategoryTimeEntry {
		query = `SELECT id, data FROM time_entries ORDER BY rowid`
		args = nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: fmt.Errorf("load %s: %w", cat, err)}
	}
	defer rows.Close()

	records := make([]EvidenceRecord, 0)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, &StorageError{Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
		}
		rec, err := ParseEvidenceRecord([]byte(data), cat)
		if err != nil {
			LogWarn("Skipping %s record %s: %v", cat, id, err)
			continue
		}
		rec.Category = cat
		if rec.ID == "" {
			rec.ID = id
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: fmt.Errorf("rows iteration error: %w", err)}
	}

	return records, nil
}

// GetByID returns a single record
func (s *Store) GetByID(ctx context.Context, cat Category, id string) (*EvidenceRecord, error) {
	query := `SELECT data FROM evidence WHERE type = ? AND id = ?`
	args := []any{string(cat), id}
	if cat == CategoryDocketEntry {
		query = `SELECT data FROM evidence WHERE type IN (?, 'docket') AND id = ? ORDER BY rowid LIMIT 1`
	}
	if cat == CategoryTimeEntry {
		query = `SELECT data FROM time_entries WHERE id = ?`
		args = []any{id}
	}

	var data string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s record not found: %s", cat, id)
		}
		return nil, &StorageError{Op: "query", Err: err}
	}
	rec, err := ParseEvidenceRecord([]byte(data), cat)
	if err != nil {
		return nil, &ParseError{Source: "evidence", Key: id, Err: err}
	}
	rec.Category = cat
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}

// Counts returns the number of stored records per category
func (s *Store) Counts(ctx context.Context) (map[Category]int, error) {
	counts := make(map[Category]int, len(Categories))
	rows, err := s.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM evidence GROUP BY type`)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, &StorageError{Op: "query", Err: err}
		}
		if cat, err := ParseCategory(name); err == nil {
			counts[cat] += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}

	var entries int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_entries`).Scan(&entries); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	counts[CategoryTimeEntry] = entries
	return counts, nil
}

// SavePrompt inserts or replaces a saved prompt
func (s *Store) SavePrompt(p Prompt) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = "Unnamed Prompt"
	}
	if p.Goal == "" {
		p.Goal = GoalTimeEntries
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO saved_prompts
		(id, name, template, system_prompt, description, goal, tags, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Template, p.SystemPrompt, p.Description, string(p.Goal), string(tags),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", &StorageError{Op: "insert", Err: fmt.Errorf("prompt %s: %w", p.Name, err)}
	}
	return p.ID, nil
}

// ListPrompts returns saved prompts, most recently updated first
func (s *Store) ListPrompts(ctx context.Context) ([]Prompt, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, template, system_prompt, description, goal, tags, updated_at
		FROM saved_prompts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	var prompts []Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	return prompts, nil
}

// GetPrompt returns a saved prompt by id
func (s *Store) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, template, system_prompt, description, goal, tags, updated_at
		FROM saved_prompts WHERE id = ?`, id)
	p, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prompt not found: %s", id)
		}
		return nil, err
	}
	return &p, nil
}

// DeletePrompt removes a saved prompt by id
func (s *Store) DeletePrompt(id string) error {
	res, err := s.db.Exec(`DELETE FROM saved_prompts WHERE id = ?`, id)
	if err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("prompt not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row rowScanner) (Prompt, error) {
	var (
		p                        Prompt
		system, desc, tags, goal sql.NullString
		updated                  sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Template, &system, &desc, &goal, &tags, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, &StorageError{Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
	}
	p.SystemPrompt = system.String
	p.Description = desc.String
	p.Goal = Goal(goal.String)
	if p.Goal == "" {
		p.Goal = GoalTimeEntries
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &p.Tags); err != nil {
			LogDebug("Ignoring malformed tags on prompt %s: %v", p.ID, err)
		}
	}
	if updated.Valid {
		if t, ok := ParseTimestamp(updated.String); ok {
			p.UpdatedAt = t
		}
	}
	return p, nil
}
