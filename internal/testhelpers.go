package internal

import (
	"context"
	"fmt"
	"time"
)

// CreateTestEmail creates a test email record
func CreateTestEmail(id, timestamp, from, to string) EvidenceRecord {
	return EvidenceRecord{
		ID:        id,
		Category:  CategoryEmail,
		Timestamp: timestamp,
		From:      from,
		To:        to,
		Subject:   "Re: " + id,
		Body:      "Please see the attached correspondence.",
	}
}

// CreateTestSMS creates a test text message record
func CreateTestSMS(id, timestamp, direction, text string) EvidenceRecord {
	return EvidenceRecord{
		ID:         id,
		Category:   CategorySMS,
		Timestamp:  timestamp,
		Direction:  direction,
		Text:       text,
		SenderName: "Client",
	}
}

// CreateTestCall creates a test phone call record
func CreateTestCall(id, timestamp string, durationSeconds int) EvidenceRecord {
	return EvidenceRecord{
		ID:              id,
		Category:        CategoryPhoneCall,
		Timestamp:       timestamp,
		Contact:         "Opposing Counsel",
		Number:          "+15555550100",
		CallType:        "outgoing",
		DurationSeconds: durationSeconds,
	}
}

// CreateTestDocket creates a test docket entry record
func CreateTestDocket(id, date, eventType string) EvidenceRecord {
	return EvidenceRecord{
		ID:        id,
		Category:  CategoryDocketEntry,
		Date:      date,
		EventType: eventType,
		FiledBy:   "Petitioner",
		Memo:      "Filed with the clerk.",
	}
}

// CreateTestTimeEntry creates a test recorded time entry
func CreateTestTimeEntry(id, date string, hours float64) EvidenceRecord {
	return EvidenceRecord{
		ID:               id,
		Category:         CategoryTimeEntry,
		Date:             date,
		Hours:            hours,
		Rate:             DefaultHourlyRate,
		Billable:         hours * DefaultHourlyRate,
		ActivityCategory: "drafting",
		Description:      "Draft motion",
	}
}

// CreateTestEmails creates n emails, one per minute from start
func CreateTestEmails(n int, start time.Time) []EvidenceRecord {
	records := make([]EvidenceRecord, n)
	for i := range records {
		ts := start.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
		records[i] = CreateTestEmail(fmt.Sprintf("email-%d", i+1), ts, "client@example.com", "counsel@example.com")
	}
	return records
}

// CreateTestCollection creates a collection with one record per category
// spread over three days in March 2024
func CreateTestCollection() EvidenceCollection {
	return NewEvidenceCollection(
		CreateTestEmail("email-1", "2024-03-01T09:00:00Z", "client@example.com", "counsel@example.com"),
		CreateTestSMS("sms-1", "2024-03-01T12:30:00Z", "incoming", "Running late to the hearing"),
		CreateTestCall("call-1", "2024-03-02T15:00:00Z", 1800),
		CreateTestDocket("docket-1", "2024-03-03", "Motion Filed"),
		CreateTestTimeEntry("te-1", "2024-03-03", 1.5),
	)
}

// MemoryStore is an in-memory EvidenceStore for tests
type MemoryStore struct {
	Collection EvidenceCollection
	Err        error
}

// LoadCategory returns the category's records or the configured error
func (m *MemoryStore) LoadCategory(ctx context.Context, cat Category) ([]EvidenceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Collection.Get(cat), nil
}
