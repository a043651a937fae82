package internal

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/case-evidence/testutil"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	db := testutil.CreateInMemoryDB(t)
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return NewStore(db), db
}

func flattenCollection(c EvidenceCollection) []EvidenceRecord {
	var out []EvidenceRecord
	for _, cat := range Categories {
		out = append(out, c[cat]...)
	}
	return out
}

func TestStore_InsertAndLoad(t *testing.T) {
	store, db := newTestStore(t)
	collection := CreateTestCollection()

	n, err := store.InsertEvidence(flattenCollection(collection))
	if err != nil {
		t.Fatalf("InsertEvidence() error = %v", err)
	}
	if n != 5 {
		t.Errorf("InsertEvidence() = %d, want 5", n)
	}
	if got := testutil.CountRows(t, db, "evidence"); got != 4 {
		t.Errorf("evidence rows = %d, want 4", got)
	}
	if got := testutil.CountRows(t, db, "time_entries"); got != 1 {
		t.Errorf("time_entries rows = %d, want 1", got)
	}

	for _, cat := range Categories {
		t.Run(string(cat), func(t *testing.T) {
			got, err := store.LoadCategory(context.Background(), cat)
			if err != nil {
				t.Fatalf("LoadCategory() error = %v", err)
			}
			if diff := cmp.Diff(collection[cat], got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_InsertReplacesAndAssignsIDs(t *testing.T) {
	store, db := newTestStore(t)

	first := CreateTestEmail("email-1", "2024-03-01T09:00:00Z", "a@example.com", "b@example.com")
	updated := first
	updated.Subject = "Updated"
	noID := CreateTestEmail("", "2024-03-02T09:00:00Z", "a@example.com", "b@example.com")

	if _, err := store.InsertEvidence([]EvidenceRecord{first, updated, noID}); err != nil {
		t.Fatalf("InsertEvidence() error = %v", err)
	}
	if got := testutil.CountRows(t, db, "evidence"); got != 2 {
		t.Fatalf("evidence rows = %d, want 2", got)
	}

	rec, err := store.GetByID(context.Background(), CategoryEmail, "email-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if rec.Subject != "Updated" {
		t.Errorf("Subject = %q, want Updated", rec.Subject)
	}
	if _, err := store.GetByID(context.Background(), CategoryEmail, "missing"); err == nil {
		t.Error("GetByID(missing) should fail")
	}
}

func TestStore_InsertRejectsInvalidRecords(t *testing.T) {
	store, db := newTestStore(t)

	tests := []struct {
		name   string
		record EvidenceRecord
	}{
		{"no timestamp", EvidenceRecord{ID: "sms-1", Category: CategorySMS}},
		{"unknown category", EvidenceRecord{ID: "fax-1", Category: "fax", Timestamp: "2024-03-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := CreateTestSMS("sms-ok", "2024-03-01T10:00:00Z", "incoming", "ok")
			_, err := store.InsertEvidence([]EvidenceRecord{valid, tt.record})
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("InsertEvidence() error = %v, want ParseError", err)
			}
			if got := testutil.CountRows(t, db, "evidence"); got != 0 {
				t.Errorf("evidence rows = %d, want 0 after rollback", got)
			}
		})
	}
}

func TestStore_LoadCategoryToleratesLegacyAndMalformedRows(t *testing.T) {
	store, db := newTestStore(t)

	testutil.InsertEvidenceRow(t, db, "docket-legacy", "docket", "2024-02-01", `{"id":"docket-legacy","type":"docket","date":"2024-02-01","event_type":"Hearing Set"}`)
	testutil.InsertEvidenceRow(t, db, "docket-1", "docket_entry", "2024-02-02", `{"id":"docket-1","type":"docket_entry","date":"2024-02-02"}`)
	testutil.InsertEvidenceRow(t, db, "docket-bad", "docket_entry", "2024-02-03", `not json`)
	testutil.InsertEvidenceRow(t, db, "docket-noid", "docket_entry", "2024-02-04", `{"date":"2024-02-04"}`)

	records, err := store.LoadCategory(context.Background(), CategoryDocketEntry)
	if err != nil {
		t.Fatalf("LoadCategory() error = %v", err)
	}
	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
		if r.Category != CategoryDocketEntry {
			t.Errorf("%s has category %q", r.ID, r.Category)
		}
	}
	if diff := cmp.Diff([]string{"docket-legacy", "docket-1", "docket-noid"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	counts, err := store.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts[CategoryDocketEntry] != 4 || counts[CategoryTimeEntry] != 0 {
		t.Errorf("Counts() = %v", counts)
	}
}

func TestStore_GetByIDDocketEntries(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	testutil.InsertEvidenceRow(t, db, "docket-legacy", "docket", "2024-02-01", `{"id":"docket-legacy","type":"docket","date":"2024-02-01","event_type":"Hearing Set"}`)
	testutil.InsertEvidenceRow(t, db, "docket-noid", "docket_entry", "2024-02-04", `{"date":"2024-02-04","event_type":"Order Entered"}`)

	tests := []struct {
		id        string
		wantEvent string
	}{
		{"docket-legacy", "Hearing Set"},
		{"docket-noid", "Order Entered"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec, err := store.GetByID(ctx, CategoryDocketEntry, tt.id)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if rec.ID != tt.id || rec.Category != CategoryDocketEntry || rec.EventType != tt.wantEvent {
				t.Errorf("GetByID() = {ID:%q Category:%q EventType:%q}", rec.ID, rec.Category, rec.EventType)
			}
		})
	}

	if _, err := store.GetByID(ctx, CategoryEmail, "docket-legacy"); err == nil {
		t.Error("GetByID(email, docket-legacy) should fail")
	}
}

func TestStore_Prompts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.SavePrompt(Prompt{Name: "Weekly Billing", Template: "Bill {start_date}", Tags: []string{"billing"}})
	if err != nil {
		t.Fatalf("SavePrompt() error = %v", err)
	}
	if _, err := store.SavePrompt(Prompt{ID: "fixed", Name: "Outline", Goal: "deposition_outline", Template: "Outline"}); err != nil {
		t.Fatalf("SavePrompt() error = %v", err)
	}

	got, err := store.GetPrompt(ctx, id)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if got.Goal != GoalTimeEntries || got.UpdatedAt.IsZero() {
		t.Errorf("GetPrompt() = %+v", got)
	}
	if diff := cmp.Diff([]string{"billing"}, got.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	prompts, err := store.ListPrompts(ctx)
	if err != nil {
		t.Fatalf("ListPrompts() error = %v", err)
	}
	if len(prompts) != 2 {
		t.Fatalf("ListPrompts() = %d prompts, want 2", len(prompts))
	}

	if err := store.DeletePrompt("fixed"); err != nil {
		t.Fatalf("DeletePrompt() error = %v", err)
	}
	if err := store.DeletePrompt("fixed"); err == nil {
		t.Error("second DeletePrompt() should fail")
	}
	if _, err := store.GetPrompt(ctx, "fixed"); err == nil {
		t.Error("GetPrompt() after delete should fail")
	}
}

func TestOpenDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "evidence.db")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	// idempotent
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}
	db.Close()

	ro, err := OpenDatabaseReadOnly(path)
	if err != nil {
		t.Fatalf("OpenDatabaseReadOnly() error = %v", err)
	}
	defer ro.Close()
	if _, err := NewStore(ro).Counts(context.Background()); err != nil {
		t.Errorf("Counts() on read-only db error = %v", err)
	}
}
