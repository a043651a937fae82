package internal

import (
	"fmt"
	"strings"
)

// Category identifies the kind of an evidence record
type Category string

const (
	CategoryEmail       Category = "email"
	CategorySMS         Category = "sms"
	CategoryPhoneCall   Category = "phone_call"
	CategoryDocketEntry Category = "docket_entry"
	CategoryTimeEntry   Category = "time_entry"
)

// Categories lists every category in precedence order
var Categories = []Category{
	CategoryEmail,
	CategorySMS,
	CategoryPhoneCall,
	CategoryDocketEntry,
	CategoryTimeEntry,
}

// categoryAliases maps the names used by upstream exports and the UI
// collection keys onto the closed category set.
var categoryAliases = map[string]Category{
	"email":          CategoryEmail,
	"emails":         CategoryEmail,
	"sms":            CategorySMS,
	"phone_call":     CategoryPhoneCall,
	"phone_calls":    CategoryPhoneCall,
	"call":           CategoryPhoneCall,
	"docket":         CategoryDocketEntry,
	"docket_entry":   CategoryDocketEntry,
	"docket_entries": CategoryDocketEntry,
	"time_entry":     CategoryTimeEntry,
	"time_entries":   CategoryTimeEntry,
}

// ParseCategory resolves a category name or one of its aliases
func ParseCategory(name string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category: %q (supported: email, sms, phone_call, docket_entry, time_entry)", name)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryEmail, CategorySMS, CategoryPhoneCall, CategoryDocketEntry, CategoryTimeEntry:
		return true
	}
	return false
}

// CollectionKey returns the plural key used for the category in exports
func (c Category) CollectionKey() string {
	switch c {
	case CategoryEmail:
		return "emails"
	case CategorySMS:
		return "sms"
	case CategoryPhoneCall:
		return "phone_calls"
	case CategoryDocketEntry:
		return "docket_entries"
	case CategoryTimeEntry:
		return "time_entries"
	}
	return string(c)
}

// Label returns a short human-readable name
func (c Category) Label() string {
	switch c {
	case CategoryEmail:
		return "Emails"
	case CategorySMS:
		return "SMS"
	case CategoryPhoneCall:
		return "Phone Calls"
	case CategoryDocketEntry:
		return "Docket Entries"
	case CategoryTimeEntry:
		return "Time Entries"
	}
	return string(c)
}
