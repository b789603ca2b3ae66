package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Format represents the export format type.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ExportMetadata contains metadata about the export.
type ExportMetadata struct {
	GeneratedAt       time.Time `json:"generatedAt"`
	StemsolverVersion string    `json:"stemsolverVersion"`
	Model             string    `json:"model"`
	Shape             string    `json:"shape"`
}

// Solution is one answered question.
type Solution struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Exporter handles exporting solutions in various formats.
type Exporter struct {
	Format   Format
	Metadata ExportMetadata
}

// DetectFormat detects the export format from the file extension.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Export writes sol to w in the exporter's format.
func (e *Exporter) Export(sol Solution, w io.Writer) error {
	switch e.Format {
	case FormatJSON:
		return exportJSON(sol, e.Metadata, w)
	case FormatMarkdown:
		return exportMarkdown(sol, e.Metadata, w)
	case FormatText:
		_, err := io.WriteString(w, sol.Answer+"\n")
		return err
	default:
		return fmt.Errorf("unsupported format: %s", e.Format)
	}
}
