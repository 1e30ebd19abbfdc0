package mistral

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

func TestChatClampsTemperature(t *testing.T) {
	var decoded map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &decoded))
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	_, err := provider.Chat(context.Background(), ai.ChatParams{
		Model:       "mistral-large-latest",
		Temperature: utils.Ptr(float32(1.7)),
		Messages:    []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	// Mistral rejects temperatures above 1; the adapter clamps instead of
	// letting the request fail.
	assert.Equal(t, float64(1), decoded["temperature"])
}

func TestChatDropsUnsupportedTooling(t *testing.T) {
	var decoded map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &decoded))
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	_, err := provider.Chat(context.Background(), ai.ChatParams{
		Model:    "mistral-large-latest",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
		Tooling:  ai.ToolingOptions{WebSearch: true, CodeExecution: true},
	})
	require.NoError(t, err)

	assert.NotContains(t, decoded, "web_search_options")
	assert.NotContains(t, decoded, "plugins")
	assert.NotContains(t, decoded, "tools")
}

func TestChatMissingKey(t *testing.T) {
	provider := New().WithAPIKey("").WithBaseURL("http://127.0.0.1:1")

	_, err := provider.Chat(context.Background(), ai.ChatParams{Model: "x"})

	var configErr *ai.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "MISTRAL_API_KEY", configErr.Missing)
}
