package internal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestStateManager_SaveAndLoad(t *testing.T) {
	sm := NewStateManager(t.TempDir())

	tracker := NewSelectionTracker(CreateTestCollection())
	tracker.SetDateRange(NewDateRange("2024-03-01", "2024-03-31"))
	tracker.ToggleSelectAll(CategoryEmail)
	history := []RunHistoryEntry{{
		ID:            "run-1",
		PromptName:    "Time Entries",
		Goal:          GoalTimeEntries,
		Timestamp:     time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		EvidenceCount: 1,
		DateRange:     tracker.DateRange(),
	}}

	if err := sm.SaveState("/data/case.db", tracker.Snapshot(), history); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	state := sm.LoadStateFor("/data/case.db")
	if diff := cmp.Diff(tracker.Snapshot(), state.Selection); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(history, state.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if state.Metadata.StateVersion != StateVersion || state.Metadata.CreatedAt.IsZero() {
		t.Errorf("metadata = %+v", state.Metadata)
	}
}

func TestStateManager_KeepsCreatedAt(t *testing.T) {
	sm := NewStateManager(t.TempDir())
	empty := SelectionSnapshot{Selected: map[Category][]string{}}

	if err := sm.SaveState("a.db", empty, nil); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	first, _ := sm.LoadState()
	time.Sleep(10 * time.Millisecond)
	if err := sm.SaveState("a.db", empty, nil); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	second, _ := sm.LoadState()

	if !second.Metadata.CreatedAt.Equal(first.Metadata.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", first.Metadata.CreatedAt, second.Metadata.CreatedAt)
	}
	if !second.Metadata.UpdatedAt.After(first.Metadata.UpdatedAt) {
		t.Error("UpdatedAt did not advance")
	}
}

func TestStateManager_LoadStateFor(t *testing.T) {
	sm := NewStateManager(t.TempDir())

	tests := []struct {
		name   string
		setup  func(t *testing.T)
		dbPath string
	}{
		{name: "no state file", setup: func(*testing.T) {}, dbPath: "a.db"},
		{
			name: "state for another database",
			setup: func(t *testing.T) {
				snap := SelectionSnapshot{Selected: map[Category][]string{CategoryEmail: {"email-1"}}}
				if err := sm.SaveState("other.db", snap, []RunHistoryEntry{{ID: "run-1"}}); err != nil {
					t.Fatal(err)
				}
			},
			dbPath: "a.db",
		},
		{
			name: "corrupt state file",
			setup: func(t *testing.T) {
				if err := os.WriteFile(sm.GetStatePath(), []byte("selection: [\n"), 0644); err != nil {
					t.Fatal(err)
				}
			},
			dbPath: "a.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			state := sm.LoadStateFor(tt.dbPath)
			if len(state.Selection.Selected) != 0 || len(state.History) != 0 {
				t.Errorf("expected empty state, got %+v", state)
			}
			if state.Metadata.DatabasePath != tt.dbPath {
				t.Errorf("DatabasePath = %q, want %q", state.Metadata.DatabasePath, tt.dbPath)
			}
		})
	}
}

func TestStateManager_Artifacts(t *testing.T) {
	sm := NewStateManager(t.TempDir())
	d := NewDeriver(DefaultBillingPolicy(), nil)
	artifact, err := d.Derive(context.Background(), DeriveRequest{Goal: GoalEvidenceSummary, Evidence: CreateTestCollection(), Now: deriveNow})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if err := sm.SaveArtifact("run-1", artifact); err != nil {
		t.Fatalf("SaveArtifact() error = %v", err)
	}
	raw, err := sm.LoadArtifact("run-1")
	if err != nil {
		t.Fatalf("LoadArtifact() error = %v", err)
	}
	decoded, err := DecodeArtifact(raw)
	if err != nil {
		t.Fatalf("DecodeArtifact() error = %v", err)
	}
	if diff := cmp.Diff(artifact, decoded); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}

	if err := sm.ClearState(); err != nil {
		t.Fatalf("ClearState() error = %v", err)
	}
	if _, err := sm.LoadArtifact("run-1"); !os.IsNotExist(err) {
		t.Errorf("LoadArtifact() after clear error = %v, want not exist", err)
	}
}
