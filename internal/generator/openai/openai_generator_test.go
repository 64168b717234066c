package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisionote/internal/config"
	"fisionote/internal/generator"
	"fisionote/internal/generator/openai"
	"fisionote/internal/port"
)

func newTestGenerator(serverURL string) *openai.Generator {
	return openai.NewGeneratorWithEndpoint(&config.GeneratorProviderConfig{
		Provider:    "openai",
		APIKey:      "test-api-key",
		TimeoutSecs: 5,
	}, serverURL)
}

var input = port.GenerateInput{Transcript: "Cervicalgia tras accidente", Specialty: "musculoskeletal"}

func TestOpenAIGenerator_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o", reqBody["model"])
		format := reqBody["response_format"].(map[string]interface{})
		assert.Equal(t, "json_object", format["type"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{
				"message":       map[string]interface{}{"content": `{"subjetivo":"Cervicalgia"}`},
				"finish_reason": "stop",
			}},
		})
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, `{"subjetivo":"Cervicalgia"}`, out.RawText)
	assert.Equal(t, "gpt-4o", out.ModelUsed)
	assert.False(t, out.Truncated)
}

func TestOpenAIGenerator_LengthMarksTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"plan\""},"finish_reason":"length"}]}`))
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, out.Truncated)
}

func TestOpenAIGenerator_RateLimitedDefaultsRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, float64(60), rlErr.RetryAfter.Seconds())
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), input)

	assert.ErrorContains(t, err, "no choices")
}
