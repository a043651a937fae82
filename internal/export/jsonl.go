package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/case-evidence/internal"
)

// JSONLExporter writes one JSON object per line: one per row for time
// entries, one per item for timelines, and the whole payload otherwise.
type JSONLExporter struct{}

// Export exports an artifact to JSONL format
func (e *JSONLExporter) Export(artifact *internal.Artifact, w io.Writer) error {
	enc := json.NewEncoder(w)

	var lines []any
	switch p := artifact.Payload.(type) {
	case *internal.TimeEntries:
		for _, row := range p.Rows {
			lines = append(lines, row)
		}
	case *internal.Timeline:
		for _, day := range p.Days {
			for _, item := range day.Items {
				lines = append(lines, map[string]any{
					"day":       day.Date,
					"category":  item.Category,
					"id":        item.ID,
					"timestamp": item.Timestamp,
					"title":     item.Title,
				})
			}
		}
	default:
		lines = append(lines, artifact)
	}

	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode line: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
