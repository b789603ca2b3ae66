package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRun_SendsPromptAndParameters(t *testing.T) {
	var gotPath, gotAuth string
	var gotInput Input

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotInput))
		_, _ = w.Write([]byte(`{"success":true,"errors":[],"result":{"response":"42"}}`))
	}))
	defer srv.Close()

	c := Client{Endpoint: srv.URL + "/", APIKey: "secret"}
	raw, err := c.Run(context.Background(), "@cf/meta/llama-3.1-70b-instruct", UserPrompt("what is 6*7?", 1500, 0.1))
	require.NoError(t, err)

	assert.JSONEq(t, `{"response":"42"}`, string(raw))
	assert.Equal(t, "/run/@cf/meta/llama-3.1-70b-instruct", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, gotInput.Messages, 1)
	assert.Equal(t, "user", gotInput.Messages[0].Role)
	assert.Equal(t, "what is 6*7?", gotInput.Messages[0].Content)
	assert.Equal(t, 1500, gotInput.MaxTokens)
	assert.InDelta(t, 0.1, gotInput.Temperature, 1e-9)
}

func TestClientRun_BareBodyPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messages":[{"content":[{"text":"old"}]}]}`))
	}))
	defer srv.Close()

	raw, err := Client{Endpoint: srv.URL}.Run(context.Background(), "m", Input{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[{"content":[{"text":"old"}]}]}`, string(raw))
}

func TestClientRun_EnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"code":5007,"message":"No such model"}],"result":null}`))
	}))
	defer srv.Close()

	_, err := Client{Endpoint: srv.URL}.Run(context.Background(), "m", Input{})
	require.Error(t, err)
	assert.Equal(t, "inference failed: No such model", err.Error())
}

func TestClientRun_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := Client{Endpoint: srv.URL}.Run(context.Background(), "m", Input{})
	require.Error(t, err)
	assert.Equal(t, "401 Unauthorized: bad token", err.Error())
}

func TestClientRun_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := Client{Endpoint: srv.URL}.Run(context.Background(), "m", Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClientRun_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := Client{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}.Run(context.Background(), "m", Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http do")
}

func TestClientRun_MissingEndpoint(t *testing.T) {
	_, err := Client{}.Run(context.Background(), "m", Input{})
	assert.Error(t, err)
}

func TestFunc(t *testing.T) {
	var f Runner = Func(func(ctx context.Context, model string, in Input) (json.RawMessage, error) {
		return json.RawMessage(`{"model":"` + model + `"}`), nil
	})
	raw, err := f.Run(context.Background(), "x", Input{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"x"}`, string(raw))
}
