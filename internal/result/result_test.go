package result

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSON(t *testing.T) {
	input := map[string]string{"status": "ok"}
	out, err := PrettyJSON(input)
	require.NoError(t, err)

	var decoded map[string]string
	err = json.Unmarshal([]byte(out), &decoded)
	require.NoError(t, err)
	assert.Equal(t, input, decoded)
	assert.Equal(t, "{\n  \"status\": \"ok\"\n}", out)
}

func TestPrettyJSON_NoHTMLEscape(t *testing.T) {
	out, err := PrettyJSON(map[string]string{"eq": "a<b && c>d"})
	require.NoError(t, err)
	assert.Contains(t, out, "a<b && c>d")
}

func TestIndentRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty object", `{}`, `{}`},
		{"key order kept", `{"z":1,"a":[true]}`, "{\n  \"z\": 1,\n  \"a\": [\n    true\n  ]\n}"},
		{"no input", ``, `null`},
		{"invalid", `{oops`, `{oops`},
		{"html kept", `{"t":"<b>"}`, "{\n  \"t\": \"<b>\"\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndentRaw([]byte(tt.raw)))
		})
	}
}

const sampleAnswer = `QUESTION:
A car accelerates from rest at 2 m/s^2 for 5 s. Find v.

SUBJECT:
Physics

KEY IDEA:
Uniform acceleration from rest.

STEPS:
Step 1:
$$ v = u + at $$

ANSWER:
Final Answer:
- 10 m/s`

func TestRenderAnswerHuman(t *testing.T) {
	var buf bytes.Buffer
	RenderAnswerHuman(&buf, sampleAnswer, false)
	out := buf.String()
	assert.Contains(t, out, "SUBJECT:")
	assert.Contains(t, out, "Step 1:")
	assert.Contains(t, out, "$$ v = u + at $$")
	assert.Contains(t, out, "- 10 m/s")
}

func TestRenderAnswerHuman_Plain(t *testing.T) {
	var buf bytes.Buffer
	RenderAnswerHuman(&buf, sampleAnswer, true)
	assert.Equal(t, sampleAnswer+"\n", buf.String())
}
