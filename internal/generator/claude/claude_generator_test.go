package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisionote/internal/config"
	"fisionote/internal/generator"
	"fisionote/internal/generator/claude"
	"fisionote/internal/port"
)

func newTestGenerator(serverURL string) *claude.Generator {
	return claude.NewGeneratorWithEndpoint(&config.GeneratorProviderConfig{
		Provider:     "claude",
		APIKey:       "test-api-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  5,
	}, serverURL)
}

var input = port.GenerateInput{Transcript: "Dolor de rodilla", Specialty: "sports"}

func TestClaudeGenerator_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, float64(8192), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		content := messages[0].(map[string]interface{})["content"].([]interface{})
		assert.Contains(t, content[0].(map[string]interface{})["text"], "Dolor de rodilla")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": "Aquí está la nota:\n"},
				{"type": "text", "text": `{"plan":"Ejercicio"}`},
			},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Aquí está la nota:\n{\"plan\":\"Ejercicio\"}", out.RawText)
	assert.Equal(t, "claude-sonnet-4-20250514", out.ModelUsed)
	assert.False(t, out.Truncated)
}

func TestClaudeGenerator_MaxTokensMarksTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"plan\":"}],"stop_reason":"max_tokens"}`))
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, out.Truncated)
}

func TestClaudeGenerator_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
}

func TestClaudeGenerator_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	assert.ErrorContains(t, err, "empty response")
}
