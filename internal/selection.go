package internal

import (
	"sort"
	"sync"
)

// SelectionSnapshot is the persisted form of the operator's selection
type SelectionSnapshot struct {
	DateRange DateRange             `json:"date_range" yaml:"date_range"`
	Selected  map[Category][]string `json:"selected" yaml:"selected"`
}

// Capture is an immutable copy of the tracker state taken at invocation
// time. Evidence holds only records that are both selected and visible
// under the active filter.
type Capture struct {
	Evidence       EvidenceCollection
	SelectionCount int
	DateRange      DateRange
	Snapshot       SelectionSnapshot
}

// SelectionTracker holds per-category selection sets and the active date
// range filter over an evidence collection.
type SelectionTracker struct {
	mu         sync.RWMutex
	source     EvidenceCollection
	dateRange  DateRange
	selections map[Category]map[string]struct{}
	allFlags   map[Category]bool
}

// NewSelectionTracker creates a tracker over the given collection
func NewSelectionTracker(source EvidenceCollection) *SelectionTracker {
	t := &SelectionTracker{
		selections: make(map[Category]map[string]struct{}, len(Categories)),
		allFlags:   make(map[Category]bool, len(Categories)),
	}
	for _, cat := range Categories {
		t.selections[cat] = make(map[string]struct{})
	}
	t.source = source.Clone()
	return t
}

// SetCollection replaces the source data. Selections are kept; ids that
// no longer exist are tolerated and never reach derivation.
func (t *SelectionTracker) SetCollection(source EvidenceCollection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.source = source.Clone()
	t.refreshFlagsLocked()
}

// SetDateRange replaces the active filter. Unparseable bounds are dropped.
func (t *SelectionTracker) SetDateRange(r DateRange) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dateRange = r.Sanitized()
	t.refreshFlagsLocked()
	LogDebug("date range set to %s", t.dateRange)
}

// DateRange returns the active filter
func (t *SelectionTracker) DateRange() DateRange {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dateRange
}

// ToggleItem flips membership of id in the category's selection and
// reports whether the id is now selected.
func (t *SelectionTracker) ToggleItem(cat Category, id string) bool {
	if !cat.Valid() {
		LogWarn("ignoring toggle for unknown category %q", cat)
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	set := t.selections[cat]
	_, selected := set[id]
	if selected {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
	t.allFlags[cat] = t.allSelectedLocked(cat)
	return !selected
}

// ToggleSelectAll enters or leaves the "all selected" state. Entering
// replaces the selection with exactly the visible ids; leaving clears it.
// It reports whether the category is now in the "all selected" state.
func (t *SelectionTracker) ToggleSelectAll(cat Category) bool {
	if !cat.Valid() {
		LogWarn("ignoring select-all for unknown category %q", cat)
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.allFlags[cat] {
		t.selections[cat] = make(map[string]struct{})
		t.allFlags[cat] = false
		return false
	}

	visible := t.visibleLocked(cat)
	set := make(map[string]struct{}, len(visible))
	for _, r := range visible {
		set[r.ID] = struct{}{}
	}
	t.selections[cat] = set
	t.allFlags[cat] = true
	return true
}

// IsAllSelected reports the category's select-all flag
func (t *SelectionTracker) IsAllSelected(cat Category) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.allFlags[cat]
}

// IsSelected reports whether id is in the category's selection set
func (t *SelectionTracker) IsSelected(cat Category, id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.selections[cat][id]
	return ok
}

// FilteredView returns each category's records that pass the active filter.
// It is recomputed on every call.
func (t *SelectionTracker) FilteredView() EvidenceCollection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dateRange.Apply(t.source)
}

// SelectionCount returns the sum of selection set sizes across categories
func (t *SelectionTracker) SelectionCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectionCountLocked()
}

// CategoryCount returns the size of one category's selection set
func (t *SelectionTracker) CategoryCount(cat Category) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.selections[cat])
}

// Selection returns the selected ids of a category, sorted
func (t *SelectionTracker) Selection(cat Category) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedIDs(t.selections[cat])
}

// SelectedEvidence returns the filtered view intersected with the selection
func (t *SelectionTracker) SelectedEvidence() EvidenceCollection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectedEvidenceLocked()
}

// Capture takes a consistent copy of selection and filtered view so a
// later selection change cannot alter an in-flight run.
func (t *SelectionTracker) Capture() Capture {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Capture{
		Evidence:       t.selectedEvidenceLocked(),
		SelectionCount: t.selectionCountLocked(),
		DateRange:      t.dateRange,
		Snapshot:       t.snapshotLocked(),
	}
}

// Snapshot returns the persisted form of the tracker state
func (t *SelectionTracker) Snapshot() SelectionSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

// Restore replaces selection sets and filter from a snapshot
func (t *SelectionTracker) Restore(s SelectionSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dateRange = s.DateRange.Sanitized()
	for _, cat := range Categories {
		set := make(map[string]struct{}, len(s.Selected[cat]))
		for _, id := range s.Selected[cat] {
			set[id] = struct{}{}
		}
		t.selections[cat] = set
	}
	t.refreshFlagsLocked()
}

// Clear drops every selection and the active filter
func (t *SelectionTracker) Clear() {
	t.Restore(SelectionSnapshot{})
}

func (t *SelectionTracker) visibleLocked(cat Category) []EvidenceRecord {
	records := t.source[cat]
	visible := make([]EvidenceRecord, 0, len(records))
	for _, r := range records {
		if t.dateRange.Includes(r) {
			visible = append(visible, r)
		}
	}
	return visible
}

func (t *SelectionTracker) allSelectedLocked(cat Category) bool {
	visible := len(t.visibleLocked(cat))
	return visible > 0 && len(t.selections[cat]) == visible
}

func (t *SelectionTracker) refreshFlagsLocked() {
	for _, cat := range Categories {
		t.allFlags[cat] = t.allSelectedLocked(cat)
	}
}

func (t *SelectionTracker) selectionCountLocked() int {
	total := 0
	for _, cat := range Categories {
		total += len(t.selections[cat])
	}
	return total
}

func (t *SelectionTracker) selectedEvidenceLocked() EvidenceCollection {
	out := make(EvidenceCollection, len(Categories))
	for _, cat := range Categories {
		set := t.selections[cat]
		if len(set) == 0 {
			continue
		}
		var picked []EvidenceRecord
		for _, r := range t.visibleLocked(cat) {
			if _, ok := set[r.ID]; ok {
				picked = append(picked, r)
			}
		}
		if len(picked) > 0 {
			out[cat] = picked
		}
	}
	return out
}

func (t *SelectionTracker) snapshotLocked() SelectionSnapshot {
	s := SelectionSnapshot{
		DateRange: t.dateRange,
		Selected:  make(map[Category][]string),
	}
	for _, cat := range Categories {
		if ids := sortedIDs(t.selections[cat]); len(ids) > 0 {
			s.Selected[cat] = ids
		}
	}
	return s
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
