package internal

import (
	"strings"
	"testing"
)

func TestNormalizer_Title(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name   string
		record EvidenceRecord
		want   string
	}{
		{"email subject", CreateTestEmail("email-1", "2024-03-01", "a", "b"), "Re: email-1"},
		{"email without subject", EvidenceRecord{Category: CategoryEmail}, "No Subject"},
		{"sms", CreateTestSMS("sms-1", "2024-03-01", "OUTGOING", "On my way"), "SMS outgoing: On my way"},
		{"sms defaults to incoming", EvidenceRecord{Category: CategorySMS, Text: "hi"}, "SMS incoming: hi"},
		{"call", CreateTestCall("call-1", "2024-03-01", 125), "Call with Opposing Counsel (2 min)"},
		{"call without contact", EvidenceRecord{Category: CategoryPhoneCall}, "Call with Unknown (0 min)"},
		{"docket", CreateTestDocket("d1", "2024-03-01", "Hearing Set"), "Hearing Set"},
		{"time entry", CreateTestTimeEntry("te-1", "2024-03-01", 1), "Draft motion"},
		{"time entry fallback", EvidenceRecord{Category: CategoryTimeEntry, ActivityCategory: "research"}, "research"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Title(tt.record); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizer_ActorAndContent(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		record      EvidenceRecord
		wantActor   string
		wantContent string
	}{
		{CreateTestEmail("e", "2024-03-01", "client@example.com", "b"), "client@example.com", "Please see the attached correspondence."},
		{CreateTestSMS("s", "2024-03-01", "incoming", "hello"), "Client", "hello"},
		{CreateTestCall("c", "2024-03-01", 60), "Opposing Counsel", ""},
		{CreateTestDocket("d", "2024-03-01", "Order"), "Petitioner", "Filed with the clerk."},
		{EvidenceRecord{Category: CategoryDocketEntry}, "Unknown", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.record.Category), func(t *testing.T) {
			if got := n.Actor(tt.record); got != tt.wantActor {
				t.Errorf("Actor() = %q, want %q", got, tt.wantActor)
			}
			if got := n.Content(tt.record); got != tt.wantContent {
				t.Errorf("Content() = %q, want %q", got, tt.wantContent)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 60)
	got := truncate(long, 50)
	if n := len([]rune(got)); n != 50 {
		t.Errorf("truncate() rune length = %d, want 50", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q, want ellipsis", got)
	}
	if truncate("short", 50) != "short" {
		t.Error("short strings should be unchanged")
	}
}
