package export

import (
	"encoding/json"
	"io"
)

// JSONExport wraps the solution with metadata for JSON output.
type JSONExport struct {
	Metadata ExportMetadata `json:"metadata"`
	Solution Solution       `json:"solution"`
}

// exportJSON exports the solution as JSON with metadata.
func exportJSON(sol Solution, metadata ExportMetadata, w io.Writer) error {
	export := JSONExport{
		Metadata: metadata,
		Solution: sol,
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}
