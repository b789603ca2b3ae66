package solver

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ppiankov/stemsolver/internal/result"
)

// UnexpectedFormatPrefix starts the text returned for unrecognized results.
const UnexpectedFormatPrefix = "Unexpected AI format:\n"

// Shape identifies which layout an inference result matched.
type Shape int

const (
	// ShapeUnknown: neither layout matched; Text echoes the raw result.
	ShapeUnknown Shape = iota
	// ShapeResponse: {"response": "<text>"}
	ShapeResponse
	// ShapeMessages: {"messages": [{"content": [{"text": "<text>"}]}]}
	ShapeMessages
)

func (s Shape) String() string {
	switch s {
	case ShapeResponse:
		return "response"
	case ShapeMessages:
		return "messages"
	default:
		return "unknown"
	}
}

// Answer is the interpreted inference result.
type Answer struct {
	Shape Shape
	Text  string
}

// Recognized reports whether the result matched a known layout.
func (a Answer) Recognized() bool { return a.Shape != ShapeUnknown }

// Interpret tries the response layout, then the messages layout, and falls
// back to echoing the raw result.
func Interpret(raw json.RawMessage) Answer {
	if text, ok := responseText(raw); ok {
		return Answer{Shape: ShapeResponse, Text: strings.TrimSpace(text)}
	}
	if text, ok := messagesText(raw); ok {
		return Answer{Shape: ShapeMessages, Text: strings.TrimSpace(text)}
	}
	return Answer{Shape: ShapeUnknown, Text: UnexpectedFormatPrefix + result.IndentRaw(raw)}
}

// responseText requires a non-empty string.
func responseText(raw json.RawMessage) (string, bool) {
	obj, ok := object(raw)
	if !ok {
		return "", false
	}
	s, ok := str(obj["response"])
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// messagesText follows messages[0].content[0].text; an empty string is accepted.
func messagesText(raw json.RawMessage) (string, bool) {
	obj, ok := object(raw)
	if !ok {
		return "", false
	}
	msg, ok := first(obj["messages"])
	if !ok {
		return "", false
	}
	msgObj, ok := object(msg)
	if !ok {
		return "", false
	}
	content, ok := first(msgObj["content"])
	if !ok {
		return "", false
	}
	contentObj, ok := object(content)
	if !ok {
		return "", false
	}
	return str(contentObj["text"])
}

func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func first(raw json.RawMessage) (json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

func str(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
