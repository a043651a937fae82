package internal

import (
	"fmt"
	"strings"
)

const (
	defaultSubject = "No Subject"
	defaultUnknown = "Unknown"
)

// Normalizer derives display fields from records, substituting
// category-specific defaults for absent optional fields. It never
// modifies the record itself.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Title returns a one-line label for the record
func (n *Normalizer) Title(r EvidenceRecord) string {
	switch r.Category {
	case CategoryEmail:
		return orDefault(r.Subject, defaultSubject)
	case CategorySMS:
		return fmt.Sprintf("SMS %s: %s", n.Direction(r), truncate(r.Text, 50))
	case CategoryPhoneCall:
		return fmt.Sprintf("Call with %s (%d min)", orDefault(r.Contact, defaultUnknown), r.DurationSeconds/60)
	case CategoryDocketEntry:
		return orDefault(r.EventType, defaultUnknown)
	case CategoryTimeEntry:
		return orDefault(r.Description, orDefault(r.ActivityCategory, "Time entry"))
	}
	return r.ID
}

// Actor returns who originated the record
func (n *Normalizer) Actor(r EvidenceRecord) string {
	switch r.Category {
	case CategoryEmail:
		return orDefault(r.From, defaultUnknown)
	case CategorySMS:
		return orDefault(r.SenderName, defaultUnknown)
	case CategoryPhoneCall:
		return orDefault(r.Contact, defaultUnknown)
	case CategoryDocketEntry:
		return orDefault(r.FiledBy, defaultUnknown)
	}
	return ""
}

// Content returns the main text of the record
func (n *Normalizer) Content(r EvidenceRecord) string {
	switch r.Category {
	case CategoryEmail:
		return r.Body
	case CategorySMS:
		return r.Text
	case CategoryDocketEntry:
		return r.Memo
	case CategoryTimeEntry:
		return r.Description
	}
	return ""
}

// Direction returns the sms direction, defaulting to incoming
func (n *Normalizer) Direction(r EvidenceRecord) string {
	if strings.EqualFold(r.Direction, "outgoing") {
		return "outgoing"
	}
	return "incoming"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
