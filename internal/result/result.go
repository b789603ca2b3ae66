package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------- Shared JSON helpers ----------

// PrettyJSON marshals v with two-space indentation and without HTML escaping.
func PrettyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// IndentRaw re-indents an already encoded JSON document, keeping key order.
// Empty input renders as null; invalid JSON is returned unchanged.
func IndentRaw(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ---------- Human renderer ----------

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Blue

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Dim gray

	equationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")) // Bright white

	answerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")) // Green
)

var (
	headingRe  = regexp.MustCompile(`^(QUESTION|SUBJECT|KEY IDEA|STEPS|ANSWER):`)
	stepRe     = regexp.MustCompile(`^Step \d+:`)
	equationRe = regexp.MustCompile(`^\$\$.*\$\$$`)
)

// RenderAnswerHuman writes a solver answer to w with its sections highlighted.
// With plain set the text is written as is.
func RenderAnswerHuman(w io.Writer, answer string, plain bool) {
	if plain {
		fmt.Fprintln(w, answer)
		return
	}

	inAnswer := false
	for _, line := range strings.Split(answer, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case headingRe.MatchString(trimmed):
			inAnswer = strings.HasPrefix(trimmed, "ANSWER:")
			fmt.Fprintln(w, headingStyle.Render(line))
		case stepRe.MatchString(trimmed):
			fmt.Fprintln(w, stepStyle.Render(line))
		case equationRe.MatchString(trimmed):
			fmt.Fprintln(w, equationStyle.Render(line))
		case inAnswer && trimmed != "":
			fmt.Fprintln(w, answerStyle.Render(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}
