package prompt

import "strings"

const questionPlaceholder = "{{QUESTION}}"

// LoadSolverPrompt returns the solver template with question inserted verbatim.
func LoadSolverPrompt(question string) string {
	return strings.Replace(PromptSolver, questionPlaceholder, question, 1)
}
