package internal

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{name: "rfc3339", input: "2024-03-01T09:00:00Z", want: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), wantOK: true},
		{name: "offset", input: "2024-03-01T09:00:00-05:00", want: time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), wantOK: true},
		{name: "no zone", input: "2024-03-01T09:00:00", want: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), wantOK: true},
		{name: "space separated", input: "2024-03-01 09:00:00", want: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), wantOK: true},
		{name: "date only", input: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "us date", input: "03/01/2024", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "garbage", input: "yesterday", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEvidenceRecord(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		fallback Category
		want     EvidenceRecord
		wantErr  bool
	}{
		{
			name: "email",
			data: `{"id":"e1","type":"email","timestamp":"2024-03-01T09:00:00Z","from":"a@x.com","to":"b@x.com","subject":"Hi","has_attachment":"yes"}`,
			want: EvidenceRecord{ID: "e1", Category: CategoryEmail, Timestamp: "2024-03-01T09:00:00Z", From: "a@x.com", To: "b@x.com", Subject: "Hi", HasAttachment: true},
		},
		{
			name: "sms direction is lowercased",
			data: `{"id":"s1","type":"sms","timestamp":"2024-03-01T09:00:00Z","direction":"Outgoing","text":"ok"}`,
			want: EvidenceRecord{ID: "s1", Category: CategorySMS, Timestamp: "2024-03-01T09:00:00Z", Direction: "outgoing", Text: "ok"},
		},
		{
			name: "call duration as m:ss",
			data: `{"id":"c1","type":"phone_call","timestamp":"2024-03-01T09:00:00Z","duration":"2:30"}`,
			want: EvidenceRecord{ID: "c1", Category: CategoryPhoneCall, Timestamp: "2024-03-01T09:00:00Z", DurationSeconds: 150},
		},
		{
			name: "negative duration clamps to zero",
			data: `{"id":"c2","type":"phone_call","timestamp":"2024-03-01T09:00:00Z","duration_seconds":-30}`,
			want: EvidenceRecord{ID: "c2", Category: CategoryPhoneCall, Timestamp: "2024-03-01T09:00:00Z"},
		},
		{
			name:     "fallback category and numeric id",
			data:     `{"id":42,"date":"2024-03-03","event_type":"Hearing"}`,
			fallback: CategoryDocketEntry,
			want:     EvidenceRecord{ID: "42", Category: CategoryDocketEntry, Date: "2024-03-03", EventType: "Hearing"},
		},
		{
			name: "time entry aliases",
			data: `{"id":"t1","type":"time_entry","date":"2024-03-03","quantity":"1.5","price":"$712.50","note":"Draft"}`,
			want: EvidenceRecord{ID: "t1", Category: CategoryTimeEntry, Date: "2024-03-03", Hours: 1.5, Billable: 712.5, Description: "Draft"},
		},
		{
			name:    "unknown type",
			data:    `{"id":"x","type":"fax"}`,
			wantErr: true,
		},
		{
			name:    "no type and no fallback",
			data:    `{"id":"x"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			data:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvidenceRecord([]byte(tt.data), tt.fallback)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEvidenceRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("ParseEvidenceRecord() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvidenceRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  EvidenceRecord
		wantErr bool
	}{
		{name: "valid", record: CreateTestEmail("e1", "2024-03-01T09:00:00Z", "a", "b")},
		{name: "date fallback", record: CreateTestDocket("d1", "2024-03-01", "Hearing")},
		{name: "no id", record: EvidenceRecord{Category: CategoryEmail, Timestamp: "2024-03-01"}, wantErr: true},
		{name: "bad category", record: EvidenceRecord{ID: "x", Category: "fax", Timestamp: "2024-03-01"}, wantErr: true},
		{name: "no timestamp", record: EvidenceRecord{ID: "x", Category: CategorySMS}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.record.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvidenceCollection(t *testing.T) {
	c := CreateTestCollection()

	if got := c.Total(); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
	if diff := cmp.Diff([]string{"email-1"}, c.IDs(CategoryEmail)); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}

	clone := c.Clone()
	clone[CategoryEmail][0].Subject = "changed"
	if c[CategoryEmail][0].Subject == "changed" {
		t.Error("Clone() shares record storage with the original")
	}

	if got := c.Get(CategorySMS)[0].Day(); got != "2024-03-01" {
		t.Errorf("Day() = %q, want 2024-03-01", got)
	}
}

func TestEvidenceRecord_DayIsUTC(t *testing.T) {
	tests := []struct {
		name string
		rec  EvidenceRecord
		want string
	}{
		{"negative offset rolls forward", EvidenceRecord{Timestamp: "2024-03-01T23:30:00-05:00"}, "2024-03-02"},
		{"positive offset rolls back", EvidenceRecord{Timestamp: "2024-03-02T01:00:00+03:00"}, "2024-03-01"},
		{"utc unchanged", EvidenceRecord{Timestamp: "2024-03-01T23:30:00Z"}, "2024-03-01"},
		{"date only", EvidenceRecord{Date: "2024-03-03"}, "2024-03-03"},
		{"unparseable", EvidenceRecord{Timestamp: "yesterday"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Day(); got != tt.want {
				t.Errorf("Day() = %q, want %q", got, tt.want)
			}
		})
	}
}
