package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/providers/ai"
)

func TestChatStreamDecodesCandidateChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[{\"text\":\"Hel\"}]}}]}\n\n")
		io.WriteString(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[{\"text\":\"lo\"}]},\"finishReason\":\"STOP\"}]}\n\n")
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	content, err := provider.ChatStream(context.Background(), ai.ChatParams{
		Model:    "gemini-2.0-flash",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}).Collect()

	require.NoError(t, err)
	assert.Equal(t, "Hello", content)
}

func TestChatStreamInlineErrorChunk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"error\":{\"code\":500,\"message\":\"internal error\",\"status\":\"INTERNAL\"}}\n\n")
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	_, err := provider.ChatStream(context.Background(), ai.ChatParams{
		Model:    "gemini-2.0-flash",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}).Collect()

	require.EqualError(t, err, "internal error")
}

func TestChatStreamMissingKey(t *testing.T) {
	provider := New().WithAPIKey("").WithBaseURL("http://127.0.0.1:1")

	_, err := provider.ChatStream(context.Background(), ai.ChatParams{Model: "gemini-2.0-flash"}).Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
