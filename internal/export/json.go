package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/case-evidence/internal"
)

// JSONExporter exports artifacts in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports an artifact to JSON format
func (e *JSONExporter) Export(artifact *internal.Artifact, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(artifact)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
