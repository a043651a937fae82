package testutil

import (
	"strings"
	"testing"
)

// SampleEvidenceJSONL is an upstream export with one record per category
// plus a docket entry stored under the legacy "docket" type
var SampleEvidenceJSONL = strings.Join([]string{
	`{"id":"email-1","type":"email","timestamp":"2024-03-01T09:00:00Z","from":"client@example.com","to":"counsel@example.com, paralegal@example.com","subject":"Custody schedule","body":"Can we move the exchange?"}`,
	`{"id":"sms-1","type":"sms","timestamp":"2024-03-01T12:30:00Z","direction":"outgoing","text":"Confirmed for Friday","sender_name":"Client"}`,
	`{"id":"call-1","type":"phone_call","timestamp":"2024-03-02 15:00:00","contact":"Opposing Counsel","number":"+15555550100","call_type":"outgoing","duration":"30:00"}`,
	`{"id":"docket-1","type":"docket","date":"2024-03-03","event_type":"Motion Filed","filed_by":"Petitioner","memo":"Motion to modify"}`,
	`{"id":"te-1","type":"time_entry","date":"2024-03-03","hours":1.5,"activity_category":"drafting","description":"Draft reply"}`,
}, "\n") + "\n"

// CreateEvidenceFile writes SampleEvidenceJSONL to a temp dir and returns its path
func CreateEvidenceFile(t *testing.T) string {
	t.Helper()
	return WriteFile(t, CreateTempDir(t), "evidence.jsonl", []byte(SampleEvidenceJSONL))
}

// CreatePromptCatalogFile writes a prompt catalog YAML fixture and returns its path
func CreatePromptCatalogFile(t *testing.T, yamlData string) string {
	t.Helper()
	return WriteFile(t, CreateTempDir(t), "prompts.yaml", []byte(yamlData))
}
