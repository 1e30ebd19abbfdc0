package anthropic

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

func eventServer(t *testing.T, events ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		w.Header().Set("Content-Type", "text/event-stream")
		for _, event := range events {
			io.WriteString(w, "data: "+event+"\n\n")
		}
	}))
}

func testProvider(serverURL string) *AnthropicProvider {
	return New().WithAPIKey("test-key").WithBaseURL(serverURL)
}

func streamParams() ai.ChatParams {
	return ai.ChatParams{
		Model:    "claude-sonnet-4-5",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}
}

func TestChatStreamDecodesEventTypedSSE(t *testing.T) {
	server := eventServer(t,
		`{"type":"message_start"}`,
		`{"type":"content_block_start"}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hel"}}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"lo"}}`,
		`{"type":"content_block_stop"}`,
		`{"type":"message_delta","delta":{"stop_reason":"end_turn"}}`,
		`{"type":"message_stop"}`,
	)
	defer server.Close()

	content, err := testProvider(server.URL).ChatStream(context.Background(), streamParams()).Collect()
	require.NoError(t, err)
	assert.Equal(t, "Hello", content)
}

func TestChatStreamIgnoresNonTextDeltas(t *testing.T) {
	server := eventServer(t,
		`{"type":"content_block_delta","delta":{"type":"input_json_delta","text":"{\"x\":"}}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"visible"}}`,
		`{"type":"message_stop"}`,
	)
	defer server.Close()

	content, err := testProvider(server.URL).ChatStream(context.Background(), streamParams()).Collect()
	require.NoError(t, err)
	assert.Equal(t, "visible", content)
}

func TestChatStreamErrorEvent(t *testing.T) {
	server := eventServer(t,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"some"}}`,
		`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`,
	)
	defer server.Close()

	content, err := testProvider(server.URL).ChatStream(context.Background(), streamParams()).Collect()
	require.EqualError(t, err, "Overloaded")
	assert.Equal(t, "some", content)
}

func TestChatStreamSynthesizesDoneWithoutMessageStop(t *testing.T) {
	server := eventServer(t,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"cut"}}`,
	)
	defer server.Close()

	var got []ai.StreamChunk
	for chunk := range testProvider(server.URL).ChatStream(context.Background(), streamParams()).Iter() {
		got = append(got, chunk)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "cut", got[0].Content)
	assert.Equal(t, ai.ChunkDone, got[1].Type)
}

func TestChatStreamMissingKey(t *testing.T) {
	provider := New().WithAPIKey("").WithBaseURL("http://127.0.0.1:1")

	_, err := provider.ChatStream(context.Background(), streamParams()).Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}
