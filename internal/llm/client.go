package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a single inference call when Client.Timeout is unset.
const DefaultTimeout = 60 * time.Second

// Message is a single chat message sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Input is the payload for one text-generation run.
type Input struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// UserPrompt wraps prompt as the only user message of an Input.
func UserPrompt(prompt string, maxTokens int, temperature float64) Input {
	return Input{
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Runner runs a named text-generation model and returns its raw JSON result.
// Interpreting the result shape is left to the caller.
type Runner interface {
	Run(ctx context.Context, model string, in Input) (json.RawMessage, error)
}

// Func adapts a plain function to the Runner interface.
type Func func(ctx context.Context, model string, in Input) (json.RawMessage, error)

// Run calls f.
func (f Func) Run(ctx context.Context, model string, in Input) (json.RawMessage, error) {
	return f(ctx, model, in)
}

// Client is a minimal Workers AI style inference client.
type Client struct {
	Endpoint string        // e.g. https://api.cloudflare.com/client/v4/accounts/<id>/ai
	APIKey   string        // bearer token; falls back to CLOUDFLARE_API_TOKEN
	Timeout  time.Duration // per request timeout

	HTTPClient *http.Client // optional, mainly for tests
}

type envelope struct {
	Success *bool           `json:"success"`
	Result  json.RawMessage `json:"result"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Run posts in to {Endpoint}/run/{model}. When the service wraps its answer
// in a {"success", "errors", "result"} envelope, only result is returned.
func (c Client) Run(ctx context.Context, model string, in Input) (json.RawMessage, error) {
	if c.Endpoint == "" {
		return nil, errors.New("llm endpoint is not configured")
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("CLOUDFLARE_API_TOKEN")
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.Endpoint, "/") + "/run/" + strings.TrimLeft(model, "/")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("decode response: invalid JSON (raw: %s)", string(body))
	}

	return unwrap(body)
}

func unwrap(body []byte) (json.RawMessage, error) {
	var env envelope
	// Bodies that are not objects (or have no success flag) are returned untouched.
	if err := json.Unmarshal(body, &env); err != nil || env.Success == nil {
		return json.RawMessage(body), nil
	}

	if !*env.Success {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) == 0 {
			return nil, errors.New("inference failed without error details")
		}
		return nil, fmt.Errorf("inference failed: %s", strings.Join(msgs, "; "))
	}

	if len(env.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return env.Result, nil
}
