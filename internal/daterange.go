package internal

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// DateRange is an optional inclusive [Start, End] filter. Either bound may
// be empty, meaning unbounded on that side. Date-only bounds compare by
// UTC calendar day so an End of 2024-06-01 includes the whole of that day.
type DateRange struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

// ParseDateRangeSpec parses "all", "<start>_to_<end>", or "<start>..<end>"
func ParseDateRangeSpec(spec string) DateRange {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		return DateRange{}
	}
	for _, sep := range []string{"_to_", ".."} {
		if start, end, found := strings.Cut(spec, sep); found {
			return NewDateRange(start, end)
		}
	}
	return NewDateRange(spec, "")
}

// NewDateRange builds a range, silently dropping bounds that do not parse
func NewDateRange(start, end string) DateRange {
	return DateRange{Start: sanitizeBound(start), End: sanitizeBound(end)}
}

func sanitizeBound(v string) string {
	v = strings.TrimSpace(v)
	if _, ok := ParseTimestamp(v); !ok {
		return ""
	}
	return v
}

// Sanitized returns a copy with unparseable bounds removed
func (r DateRange) Sanitized() DateRange {
	return NewDateRange(r.Start, r.End)
}

// IsZero reports whether the range is unbounded on both sides
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

func (r DateRange) String() string {
	if r.IsZero() {
		return "all"
	}
	start, end := r.Start, r.End
	if start == "" {
		start = "…"
	}
	if end == "" {
		end = "…"
	}
	return start + " to " + end
}

func isDateOnly(v string) bool {
	_, err := time.Parse(dayLayout, strings.TrimSpace(v))
	return err == nil
}

// Contains reports whether t falls inside the range, bounds inclusive
func (r DateRange) Contains(t time.Time) bool {
	if !afterStart(r.Start, t) {
		return false
	}
	return beforeEnd(r.End, t)
}

func afterStart(bound string, t time.Time) bool {
	b, ok := ParseTimestamp(bound)
	if !ok {
		return true
	}
	if isDateOnly(bound) {
		return utcDay(t) >= utcDay(b)
	}
	return !t.Before(b)
}

func beforeEnd(bound string, t time.Time) bool {
	b, ok := ParseTimestamp(bound)
	if !ok {
		return true
	}
	if isDateOnly(bound) {
		return utcDay(t) <= utcDay(b)
	}
	return !t.After(b)
}

// Includes reports whether the record's resolved timestamp is in range.
// Records without a resolvable timestamp only pass an unbounded range;
// a range whose bounds all fail to parse is unbounded.
func (r DateRange) Includes(rec EvidenceRecord) bool {
	if r.Sanitized().IsZero() {
		return true
	}
	t, ok := rec.Time()
	if !ok {
		return false
	}
	return r.Contains(t)
}

// Apply returns the per-category subsequences that fall inside the range
func (r DateRange) Apply(c EvidenceCollection) EvidenceCollection {
	r = r.Sanitized()
	out := make(EvidenceCollection, len(Categories))
	for _, cat := range Categories {
		records := c[cat]
		kept := make([]EvidenceRecord, 0, len(records))
		for _, rec := range records {
			if r.Includes(rec) {
				kept = append(kept, rec)
			}
		}
		out[cat] = kept
	}
	return out
}
