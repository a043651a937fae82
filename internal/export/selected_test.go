package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/case-evidence/internal"
)

func TestSelectedRows_OrderedByDate(t *testing.T) {
	evidence := internal.NewEvidenceCollection(
		internal.CreateTestDocket("docket-1", "2024-03-03", "Motion Filed"),
		internal.CreateTestCall("call-1", "2024-03-02T15:00:00Z", 125),
		internal.CreateTestEmail("email-1", "2024-03-01T09:00:00Z", "a@example.com", "b@example.com"),
		internal.CreateTestSMS("sms-1", "2024-03-01T12:30:00Z", "outgoing", "On my way"),
	)

	rows := SelectedRows(evidence)
	var ids []string
	for _, r := range rows {
		ids = append(ids, r["id"])
	}
	if diff := cmp.Diff([]string{"email-1", "sms-1", "call-1", "docket-1"}, ids); diff != "" {
		t.Errorf("SelectedRows() order mismatch (-want +got):\n%s", diff)
	}

	if got := rows[2]["duration_mins"]; got != "2" {
		t.Errorf("duration_mins = %q, want %q", got, "2")
	}
	if got := rows[1]["direction"]; got != "outgoing" {
		t.Errorf("direction = %q, want %q", got, "outgoing")
	}
	if got := rows[3]["content"]; got != "Filed with the clerk." {
		t.Errorf("docket content = %q", got)
	}
}

func TestWriteSelectedCSV(t *testing.T) {
	tests := []struct {
		name     string
		evidence internal.EvidenceCollection
		wantRows int
		wantErr  error
	}{
		{
			name:     "full collection",
			evidence: internal.CreateTestCollection(),
			wantRows: 5,
		},
		{
			name:     "empty selection",
			evidence: internal.NewEvidenceCollection(),
			wantErr:  internal.ErrInsufficientSelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := WriteSelectedCSV(tt.evidence, &buf)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("WriteSelectedCSV() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("WriteSelectedCSV() error = %v", err)
			}
			if n != tt.wantRows {
				t.Errorf("WriteSelectedCSV() = %d rows, want %d", n, tt.wantRows)
			}

			records, err := csv.NewReader(&buf).ReadAll()
			if err != nil {
				t.Fatalf("output is not valid CSV: %v", err)
			}
			if diff := cmp.Diff(SelectedColumns, records[0]); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
			if len(records) != tt.wantRows+1 {
				t.Errorf("got %d CSV records, want %d", len(records), tt.wantRows+1)
			}
		})
	}
}
