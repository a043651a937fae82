package internal

import (
	"sync"
	"time"
)

// RunHistoryEntry records one derivation invocation
type RunHistoryEntry struct {
	ID            string    `json:"id" yaml:"id"`
	PromptName    string    `json:"prompt_name" yaml:"prompt_name"`
	Goal          Goal      `json:"goal" yaml:"goal"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	EvidenceCount int       `json:"evidence_count" yaml:"evidence_count"`
	DateRange     DateRange `json:"date_range" yaml:"date_range"`
	Fingerprint   string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// RunHistory is an append-only, most-recent-first log of runs
type RunHistory struct {
	mu      sync.RWMutex
	entries []RunHistoryEntry
}

// NewRunHistory creates a history seeded with entries, most recent first
func NewRunHistory(entries ...RunHistoryEntry) *RunHistory {
	h := &RunHistory{entries: make([]RunHistoryEntry, len(entries))}
	copy(h.entries, entries)
	return h
}

// Record prepends an entry
func (h *RunHistory) Record(entry RunHistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]RunHistoryEntry{entry}, h.entries...)
}

// Entries returns a copy of the log, most recent first
func (h *RunHistory) Entries() []RunHistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]RunHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries
func (h *RunHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Find returns the entry with the given id
func (h *RunHistory) Find(id string) (RunHistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return RunHistoryEntry{}, false
}
