package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/case-evidence/internal"
)

// MarkdownExporter exports artifacts as Markdown reports
type MarkdownExporter struct{}

// Export exports an artifact to Markdown format
func (e *MarkdownExporter) Export(artifact *internal.Artifact, w io.Writer) error {
	switch p := artifact.Payload.(type) {
	case *internal.TimeEntries:
		writeTimeEntries(w, p)
	case *internal.Timeline:
		writeTimeline(w, p)
	case *internal.Summary:
		writeSummary(w, p)
	case *internal.KeyThemes:
		writeKeyThemes(w, p)
	case *internal.CaseNarrative:
		writeNarrative(w, p)
	case *internal.CustomPayload:
		_, _ = fmt.Fprintf(w, "# Custom Artifact\n\n**Requested goal:** %s\n\n", escapeMarkdown(p.Requested))
		for _, key := range sortedKeys(p.Content) {
			_, _ = fmt.Fprintf(w, "- **%s:** %v\n", escapeMarkdown(key), p.Content[key])
		}
	default:
		return &internal.ExportError{Format: "md", Err: fmt.Errorf("no markdown layout for goal %q", artifact.Goal)}
	}
	return nil
}

func writeTimeEntries(w io.Writer, p *internal.TimeEntries) {
	_, _ = fmt.Fprintf(w, "# Time Entries\n\n")
	_, _ = fmt.Fprintf(w, "| Date | Activity | Description | Hours | Rate | Billable |\n")
	_, _ = fmt.Fprintf(w, "|------|----------|-------------|------:|-----:|---------:|\n")
	for _, row := range p.Rows {
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %.1f | %.2f | %.2f |\n",
			row.Date, row.ActivityCategory, escapeCell(row.Description), row.Hours, row.Rate, row.Billable)
	}
	_, _ = fmt.Fprintf(w, "\n**Total hours:** %.1f  \n**Total billable:** $%.2f\n", p.TotalHours, p.Total)
}

func writeTimeline(w io.Writer, p *internal.Timeline) {
	_, _ = fmt.Fprintf(w, "# Project Timeline\n\n**Items:** %d\n\n", p.TotalItems)
	for _, day := range p.Days {
		date := day.Date
		if date == "" {
			date = "Undated"
		}
		_, _ = fmt.Fprintf(w, "## %s\n\n", date)
		for _, item := range day.Items {
			_, _ = fmt.Fprintf(w, "- `%s` **%s** %s\n", item.Timestamp, item.Category.Label(), escapeMarkdown(item.Title))
		}
		_, _ = fmt.Fprintln(w)
	}
}

func writeSummary(w io.Writer, p *internal.Summary) {
	_, _ = fmt.Fprintf(w, "# Evidence Summary\n\n**Total items:** %d\n\n", p.TotalItems)
	_, _ = fmt.Fprintf(w, "| Category | Count |\n|----------|------:|\n")
	_, _ = fmt.Fprintf(w, "| Emails | %d |\n", p.Counts.Emails)
	_, _ = fmt.Fprintf(w, "| SMS | %d |\n", p.Counts.SMS)
	_, _ = fmt.Fprintf(w, "| Phone calls | %d |\n", p.Counts.PhoneCalls)
	_, _ = fmt.Fprintf(w, "| Docket entries | %d |\n", p.Counts.DocketEntries)
	_, _ = fmt.Fprintf(w, "| Time entries | %d |\n\n", p.Counts.TimeEntries)

	if p.Earliest != nil && p.Latest != nil {
		_, _ = fmt.Fprintf(w, "**Span:** %s to %s\n\n", p.Earliest.UTC().Format("2006-01-02"), p.Latest.UTC().Format("2006-01-02"))
	}
	if len(p.Participants) > 0 {
		_, _ = fmt.Fprintf(w, "## Participants\n\n")
		for _, name := range p.Participants {
			_, _ = fmt.Fprintf(w, "- %s\n", escapeMarkdown(name))
		}
	}
}

func writeKeyThemes(w io.Writer, p *internal.KeyThemes) {
	_, _ = fmt.Fprintf(w, "# Key Themes\n\n")
	if p.Placeholder {
		_, _ = fmt.Fprintf(w, "> Placeholder analysis\n\n")
	}
	for i, theme := range p.Themes {
		_, _ = fmt.Fprintf(w, "%d. **%s** (%.0f%%): %s\n", i+1, escapeMarkdown(theme.Name), theme.Relevance*100, escapeMarkdown(theme.Description))
	}
}

func writeNarrative(w io.Writer, p *internal.CaseNarrative) {
	_, _ = fmt.Fprintf(w, "# %s\n\n", escapeMarkdown(p.Title))
	if p.Placeholder {
		_, _ = fmt.Fprintf(w, "> Placeholder analysis\n\n")
	}
	for _, s := range p.Sections {
		_, _ = fmt.Fprintf(w, "## %s\n\n%s\n\n", escapeMarkdown(s.Heading), escapeMarkdown(s.Body))
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// escapeCell keeps table cells on one line
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	return strings.ReplaceAll(escapeMarkdown(text), "\n", " ")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
