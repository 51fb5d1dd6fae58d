package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"auto_linkedin_poster/generator"
	openai "github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, status int, content string, calls *atomic.Int32, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1760000000,
			"model":   "llama-3.3-70b-versatile",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
}

func newOpenAILLM(t *testing.T, baseURL string) *generator.OpenAILLM {
	t.Helper()
	llm, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Provider: "groq",
		Model:    "llama-3.3-70b-versatile",
		APIKey:   "test-key",
		BaseURL:  baseURL + "/openai/v1/",
	})
	require.NoError(t, err)
	return llm
}

func TestOpenAILLM_Complete(t *testing.T) {
	var calls atomic.Int32
	body := map[string]any{}
	srv := completionServer(t, http.StatusOK, "Hello from the model", &calls, &body)
	defer srv.Close()

	out, err := newOpenAILLM(t, srv.URL).Complete(context.Background(),
		generator.BuildPostPrompt("Generative AI applications", generator.DefaultStyle()))
	require.NoError(t, err)
	assert.Equal(t, "Hello from the model", out)
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, "llama-3.3-70b-versatile", body["model"])
	assert.EqualValues(t, 1024, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestOpenAILLM_ImagePromptHasNoSystemMessage(t *testing.T) {
	var calls atomic.Int32
	body := map[string]any{}
	srv := completionServer(t, http.StatusOK, "\"chart wall\"", &calls, &body)
	defer srv.Close()

	_, err := newOpenAILLM(t, srv.URL).Complete(context.Background(),
		generator.BuildImagePrompt("Generative AI applications", generator.ImageAngles[0]))
	require.NoError(t, err)

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
	assert.EqualValues(t, 100, body["max_tokens"])
}

func TestOpenAILLM_ErrorStatusIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := completionServer(t, http.StatusServiceUnavailable, "", &calls, nil)
	defer srv.Close()

	_, err := newOpenAILLM(t, srv.URL).Complete(context.Background(), generator.Prompt{User: "hi"})
	require.Error(t, err)

	var apiErr *openai.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAILLM_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	_, err := newOpenAILLM(t, srv.URL).Complete(context.Background(), generator.Prompt{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}
