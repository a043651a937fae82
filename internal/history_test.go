package internal

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunHistory_RecordIsMostRecentFirst(t *testing.T) {
	h := NewRunHistory()
	for i := 1; i <= 3; i++ {
		h.Record(RunHistoryEntry{ID: fmt.Sprintf("run-%d", i)})
	}

	var ids []string
	for _, e := range h.Entries() {
		ids = append(ids, e.ID)
	}
	if diff := cmp.Diff([]string{"run-3", "run-2", "run-1"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestRunHistory_EntriesReturnsCopy(t *testing.T) {
	h := NewRunHistory(RunHistoryEntry{ID: "run-1", PromptName: "Time Entries"})
	entries := h.Entries()
	entries[0].PromptName = "changed"

	got, ok := h.Find("run-1")
	if !ok || got.PromptName != "Time Entries" {
		t.Errorf("Find() = %+v, %v; history was mutated through Entries()", got, ok)
	}
	if _, ok := h.Find("missing"); ok {
		t.Error("Find() found a missing entry")
	}
}

func TestRunHistory_SeedIsCopied(t *testing.T) {
	seed := []RunHistoryEntry{{ID: "run-2"}, {ID: "run-1"}}
	h := NewRunHistory(seed...)
	seed[0].ID = "changed"

	if got := h.Entries()[0].ID; got != "run-2" {
		t.Errorf("first entry = %q, want run-2", got)
	}
}

func TestRunHistory_ConcurrentRecord(t *testing.T) {
	h := NewRunHistory()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Record(RunHistoryEntry{ID: fmt.Sprintf("run-%d", i)})
			_ = h.Entries()
		}(i)
	}
	wg.Wait()

	if h.Len() != 20 {
		t.Errorf("Len() = %d, want 20", h.Len())
	}
}
