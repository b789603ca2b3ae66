package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSolverPrompt_InsertsQuestion(t *testing.T) {
	out := LoadSolverPrompt("A ball falls from 20 m. Find v.")
	assert.Contains(t, out, "QUESTION:\nA ball falls from 20 m. Find v.\n\nSUBJECT:")
	assert.NotContains(t, out, questionPlaceholder)
}

func TestLoadSolverPrompt_Sections(t *testing.T) {
	out := LoadSolverPrompt("x")
	sections := []string{"QUESTION:", "SUBJECT:", "KEY IDEA:", "STEPS:", "ANSWER:", "RULES:"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		assert.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
	assert.Contains(t, out, "Mathematics, Physics, and Chemistry")
	assert.Contains(t, out, "If MCQ: Correct Option (A/B/C/D)")
}

func TestLoadSolverPrompt_Rules(t *testing.T) {
	out := LoadSolverPrompt("x")
	for _, rule := range []string{
		"Do NOT show chain-of-thought.",
		"Do NOT explain in paragraphs.",
		"Do NOT rewrite diagrams.",
		"ALL equations must be inside $$ $$.",
		"NEVER fabricate formulas.",
	} {
		assert.Contains(t, out, rule)
	}
}

func TestLoadSolverPrompt_QuestionIsVerbatim(t *testing.T) {
	q := "Evaluate {{QUESTION}} and $$x^2$$ literally"
	out := LoadSolverPrompt(q)
	assert.Contains(t, out, "QUESTION:\n"+q+"\n")
	assert.Equal(t, 1, strings.Count(out, q))
}
