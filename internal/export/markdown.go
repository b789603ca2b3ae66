package export

import (
	"fmt"
	"io"
	"strings"
)

// exportMarkdown writes the question as a quote and the answer verbatim,
// so the $$ $$ equations stay renderable by Markdown math extensions.
func exportMarkdown(sol Solution, metadata ExportMetadata, w io.Writer) error {
	var b strings.Builder

	b.WriteString("# STEM Solution\n\n")
	fmt.Fprintf(&b, "_Generated %s by stemsolver %s using `%s`_\n\n",
		metadata.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		metadata.StemsolverVersion,
		metadata.Model,
	)

	b.WriteString("## Question\n\n")
	for _, line := range strings.Split(strings.TrimSpace(sol.Question), "\n") {
		b.WriteString("> " + line + "\n")
	}

	b.WriteString("\n## Answer\n\n")
	b.WriteString(strings.TrimSpace(sol.Answer))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
