package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EvidenceRecord is one atomic unit of case material. Only the fields
// belonging to the record's category are populated.
type EvidenceRecord struct {
	ID        string   `json:"id" yaml:"id"`
	Category  Category `json:"type" yaml:"type"`
	Timestamp string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Date      string   `json:"date,omitempty" yaml:"date,omitempty"`

	// email
	From            string `json:"from,omitempty" yaml:"from,omitempty"`
	To              string `json:"to,omitempty" yaml:"to,omitempty"`
	CC              string `json:"cc,omitempty" yaml:"cc,omitempty"`
	Subject         string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Body            string `json:"body,omitempty" yaml:"body,omitempty"`
	HasAttachment   bool   `json:"has_attachment,omitempty" yaml:"has_attachment,omitempty"`
	AttachmentNames string `json:"attachment_names,omitempty" yaml:"attachment_names,omitempty"`

	// sms
	Direction   string `json:"direction,omitempty" yaml:"direction,omitempty"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	SenderName  string `json:"sender_name,omitempty" yaml:"sender_name,omitempty"`
	ChatSession string `json:"chat_session,omitempty" yaml:"chat_session,omitempty"`

	// phone_call
	Contact         string `json:"contact,omitempty" yaml:"contact,omitempty"`
	Number          string `json:"number,omitempty" yaml:"number,omitempty"`
	CallType        string `json:"call_type,omitempty" yaml:"call_type,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	Service         string `json:"service,omitempty" yaml:"service,omitempty"`

	// docket_entry
	EventType string `json:"event_type,omitempty" yaml:"event_type,omitempty"`
	FiledBy   string `json:"filed_by,omitempty" yaml:"filed_by,omitempty"`
	Memo      string `json:"memo,omitempty" yaml:"memo,omitempty"`

	// time_entry
	Hours            float64 `json:"hours,omitempty" yaml:"hours,omitempty"`
	Rate             float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Billable         float64 `json:"billable,omitempty" yaml:"billable,omitempty"`
	ActivityCategory string  `json:"activity_category,omitempty" yaml:"activity_category,omitempty"`
	Description      string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// timestampLayouts are tried in order when resolving record timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTimestamp parses a timestamp in any of the layouts seen in evidence exports
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rawTimestamp returns the field that carries the record's time
func (r EvidenceRecord) rawTimestamp() string {
	if r.Timestamp != "" {
		return r.Timestamp
	}
	return r.Date
}

// Time returns the resolved timestamp of the record
func (r EvidenceRecord) Time() (time.Time, bool) {
	return ParseTimestamp(r.rawTimestamp())
}

// Day returns the UTC calendar day (YYYY-MM-DD) of the resolved timestamp.
// Offsets are normalized so day keys order the same way as instants.
func (r EvidenceRecord) Day() string {
	t, ok := r.Time()
	if !ok {
		return ""
	}
	return utcDay(t)
}

func utcDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Validate checks the invariants the upstream parser guarantees
func (r EvidenceRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record has no id")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("record %s has unknown category %q", r.ID, r.Category)
	}
	if _, ok := r.Time(); !ok {
		return fmt.Errorf("record %s has no resolvable timestamp", r.ID)
	}
	return nil
}

// EvidenceCollection groups records by category, preserving insertion order
type EvidenceCollection map[Category][]EvidenceRecord

// NewEvidenceCollection builds a collection from a flat list of records
func NewEvidenceCollection(records ...EvidenceRecord) EvidenceCollection {
	c := make(EvidenceCollection)
	for _, r := range records {
		c[r.Category] = append(c[r.Category], r)
	}
	return c
}

// Get returns the records of a category
func (c EvidenceCollection) Get(cat Category) []EvidenceRecord {
	return c[cat]
}

// Total returns the number of records across all categories
func (c EvidenceCollection) Total() int {
	total := 0
	for _, cat := range Categories {
		total += len(c[cat])
	}
	return total
}

// IDs returns the record ids of a category in collection order
func (c EvidenceCollection) IDs(cat Category) []string {
	ids := make([]string, 0, len(c[cat]))
	for _, r := range c[cat] {
		ids = append(ids, r.ID)
	}
	return ids
}

// Clone returns a deep copy; records are values so copying slices suffices
func (c EvidenceCollection) Clone() EvidenceCollection {
	out := make(EvidenceCollection, len(c))
	for cat, records := range c {
		cp := make([]EvidenceRecord, len(records))
		copy(cp, records)
		out[cat] = cp
	}
	return out
}

// ParseEvidenceRecord decodes a loosely-typed JSON object into a record.
// Field types are coerced where exports disagree (numbers as strings,
// booleans as "true"/"yes", call durations as "m:ss").
func ParseEvidenceRecord(data []byte, fallback Category) (*EvidenceRecord, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse evidence JSON: %w", err)
	}
	return RecordFromMap(raw, fallback)
}

// RecordFromMap converts a decoded object into a record
func RecordFromMap(raw map[string]any, fallback Category) (*EvidenceRecord, error) {
	cat := fallback
	if name := stringField(raw, "type", "category", "evidence_type"); name != "" {
		parsed, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		cat = parsed
	}
	if !cat.Valid() {
		return nil, fmt.Errorf("record has no category")
	}

	r := &EvidenceRecord{
		ID:        stringField(raw, "id", "ID"),
		Category:  cat,
		Timestamp: stringField(raw, "timestamp"),
		Date:      stringField(raw, "date"),
	}

	switch cat {
	case CategoryEmail:
		r.From = stringField(raw, "from")
		r.To = stringField(raw, "to")
		r.CC = stringField(raw, "cc")
		r.Subject = stringField(raw, "subject")
		r.Body = stringField(raw, "body")
		r.HasAttachment = boolField(raw, "has_attachment")
		r.AttachmentNames = stringField(raw, "attachment_names")
	case CategorySMS:
		r.Direction = strings.ToLower(stringField(raw, "direction"))
		r.Text = stringField(raw, "text")
		r.SenderName = stringField(raw, "sender_name")
		r.ChatSession = stringField(raw, "chat_session")
		r.HasAttachment = boolField(raw, "has_attachment")
	case CategoryPhoneCall:
		r.Contact = stringField(raw, "contact")
		r.Number = stringField(raw, "number")
		r.CallType = stringField(raw, "call_type")
		r.DurationSeconds = durationField(raw, "duration_seconds", "duration")
		r.Service = stringField(raw, "service")
	case CategoryDocketEntry:
		r.EventType = stringField(raw, "event_type")
		r.FiledBy = stringField(raw, "filed_by")
		r.Memo = stringField(raw, "memo")
	case CategoryTimeEntry:
		r.Hours = floatField(raw, "hours", "quantity")
		r.Rate = floatField(raw, "rate")
		r.Billable = floatField(raw, "billable", "price")
		r.ActivityCategory = stringField(raw, "activity_category")
		r.Description = stringField(raw, "description", "note")
	}

	return r, nil
}

func lookup(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw map[string]any, keys ...string) string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func boolField(raw map[string]any, keys ...string) bool {
	v, ok := lookup(raw, keys...)
	if !ok {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "y", "1":
			return true
		}
	}
	return false
}

func floatField(raw map[string]any, keys ...string) float64 {
	v, ok := lookup(raw, keys...)
	if !ok {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(val, "$")), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

// durationField reads seconds as a number, a numeric string or "m:ss"
func durationField(raw map[string]any, keys ...string) int {
	v, ok := lookup(raw, keys...)
	if !ok {
		return 0
	}
	var secs int
	switch val := v.(type) {
	case float64:
		secs = int(val)
	case int:
		secs = val
	case string:
		val = strings.TrimSpace(val)
		if m, s, found := strings.Cut(val, ":"); found {
			mins, err1 := strconv.Atoi(m)
			rest, err2 := strconv.Atoi(s)
			if err1 == nil && err2 == nil {
				secs = mins*60 + rest
			}
		} else if n, err := strconv.Atoi(val); err == nil {
			secs = n
		}
	}
	if secs < 0 {
		return 0
	}
	return secs
}
