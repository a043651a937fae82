package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/iksnae/case-evidence/internal"
)

// CSVExporter writes tabular artifacts as CSV. Only time entries and
// timelines have a tabular shape.
type CSVExporter struct{}

// Export exports an artifact to CSV format
func (e *CSVExporter) Export(artifact *internal.Artifact, w io.Writer) error {
	cw := csv.NewWriter(w)

	switch p := artifact.Payload.(type) {
	case *internal.TimeEntries:
		_ = cw.Write([]string{"id", "date", "category", "activity_category", "description", "hours", "rate", "billable", "item_count"})
		for _, row := range p.Rows {
			_ = cw.Write([]string{
				row.ID,
				row.Date,
				string(row.Category),
				row.ActivityCategory,
				row.Description,
				strconv.FormatFloat(row.Hours, 'f', 1, 64),
				strconv.FormatFloat(row.Rate, 'f', 2, 64),
				strconv.FormatFloat(row.Billable, 'f', 2, 64),
				strconv.Itoa(row.ItemCount),
			})
		}
	case *internal.Timeline:
		_ = cw.Write([]string{"day", "timestamp", "category", "id", "title"})
		for _, day := range p.Days {
			for _, item := range day.Items {
				_ = cw.Write([]string{day.Date, item.Timestamp, string(item.Category), item.ID, item.Title})
			}
		}
	default:
		return &internal.ExportError{Format: "csv", Err: fmt.Errorf("goal %q has no tabular form", artifact.Goal)}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
