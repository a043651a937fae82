package export

import (
	"fmt"
	"io"

	"github.com/iksnae/case-evidence/internal"
)

// Exporter defines the interface for all artifact export formats
type Exporter interface {
	Export(artifact *internal.Artifact, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "csv":
		return &CSVExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, jsonl, md, yaml, csv)", format)
	}
}
