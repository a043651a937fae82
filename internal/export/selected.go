package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/iksnae/case-evidence/internal"
)

// SelectedColumns is the header of the flattened selection export
var SelectedColumns = []string{
	"id", "evidence_type", "date",
	"subject", "from", "to",
	"sender", "direction",
	"event_type", "filed_by",
	"contact", "number", "duration_mins", "call_type",
	"hours", "activity", "billable",
	"content",
}

// SelectedRow is one selected record flattened to the export columns
type SelectedRow map[string]string

// SelectedRows flattens the selected evidence into rows ordered by
// resolved date. Records without a date sort last in category order.
func SelectedRows(evidence internal.EvidenceCollection) []SelectedRow {
	type dated struct {
		row  SelectedRow
		date string
		ok   bool
	}

	normalizer := internal.NewNormalizer()
	var all []dated
	for _, cat := range internal.Categories {
		for _, r := range evidence.Get(cat) {
			date := r.Timestamp
			if date == "" {
				date = r.Date
			}
			row := SelectedRow{
				"id":            r.ID,
				"evidence_type": string(cat),
				"date":          date,
				"content":       normalizer.Content(r),
			}
			switch cat {
			case internal.CategoryEmail:
				row["subject"] = r.Subject
				row["from"] = r.From
				row["to"] = r.To
			case internal.CategorySMS:
				row["sender"] = normalizer.Actor(r)
				row["direction"] = normalizer.Direction(r)
			case internal.CategoryDocketEntry:
				row["event_type"] = r.EventType
				row["filed_by"] = r.FiledBy
			case internal.CategoryPhoneCall:
				row["contact"] = r.Contact
				row["number"] = r.Number
				row["duration_mins"] = strconv.Itoa(r.DurationSeconds / 60)
				row["call_type"] = r.CallType
			case internal.CategoryTimeEntry:
				row["hours"] = strconv.FormatFloat(r.Hours, 'f', -1, 64)
				row["activity"] = r.ActivityCategory
				row["billable"] = strconv.FormatFloat(r.Billable, 'f', 2, 64)
			}
			_, ok := r.Time()
			all = append(all, dated{row: row, date: r.Day(), ok: ok})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].ok || !all[j].ok {
			return all[i].ok && !all[j].ok
		}
		return all[i].date < all[j].date
	})

	rows := make([]SelectedRow, len(all))
	for i, d := range all {
		rows[i] = d.row
	}
	return rows
}

// WriteSelectedCSV writes the flattened selection as CSV. An empty
// selection is an error, the same as for derivation.
func WriteSelectedCSV(evidence internal.EvidenceCollection, w io.Writer) (int, error) {
	if evidence.Total() == 0 {
		return 0, &internal.InsufficientSelectionError{Goal: "selection_export"}
	}

	rows := SelectedRows(evidence)
	cw := csv.NewWriter(w)
	if err := cw.Write(SelectedColumns); err != nil {
		return 0, &internal.ExportError{Format: "csv", Err: err}
	}
	for _, row := range rows {
		record := make([]string, len(SelectedColumns))
		for i, col := range SelectedColumns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return 0, &internal.ExportError{Format: "csv", Err: fmt.Errorf("row %s: %w", row["id"], err)}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, &internal.ExportError{Format: "csv", Err: err}
	}
	return len(rows), nil
}
