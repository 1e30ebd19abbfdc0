package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/internal/jsonschema"
	"github.com/seralba/llmbridge/providers/ai"
)

func testProvider(serverURL string) *OpenAIProvider {
	return New().WithAPIKey("test-key").WithBaseURL(serverURL)
}

func completionBody(content string) string {
	return `{"id":"cmpl-1","choices":[{"message":{"role":"assistant","content":"` + content + `"},"finish_reason":"stop"}]}`
}

func TestChatReturnsContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		io.WriteString(w, completionBody("Hello!"))
	}))
	defer server.Close()

	reply, err := testProvider(server.URL).Chat(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)
}

func TestChatMissingKeyFailsBeforeNetwork(t *testing.T) {
	provider := New().WithAPIKey("").WithBaseURL("http://127.0.0.1:1")

	_, err := provider.Chat(context.Background(), ai.ChatParams{Model: "gpt-4o"})

	var configErr *ai.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "OPENAI_API_KEY", configErr.Missing)
}

func TestChatHardErrorShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "backend exploded")
	}))
	defer server.Close()

	_, err := testProvider(server.URL).Chat(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})

	var apiErr *ai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "OpenAI API error (500): backend exploded", apiErr.Error())
}

func TestChatWithToolsDowngradesExactlyOnce(t *testing.T) {
	var requests []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))
		requests = append(requests, decoded)

		if len(requests) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"message":"tool use is not supported for this model"}}`)
			return
		}
		io.WriteString(w, completionBody("plain answer"))
	}))
	defer server.Close()

	tool := ai.FunctionTool{Name: "get_weather", Parameters: jsonschema.Object(map[string]*jsonschema.Schema{
		"city": jsonschema.String("City name"),
	}, "city")}
	result, err := testProvider(server.URL).ChatWithTools(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "weather?"}},
	}, []ai.FunctionTool{tool})

	require.NoError(t, err)
	assert.Equal(t, "plain answer", result.Content)
	assert.Empty(t, result.ToolCalls)

	require.Len(t, requests, 2)
	assert.Contains(t, requests[0], "tools")
	assert.NotContains(t, requests[1], "tools")
}

func TestChatWithToolsDoesNotRetryHardErrors(t *testing.T) {
	var requestCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"invalid api key"}}`)
	}))
	defer server.Close()

	_, err := testProvider(server.URL).ChatWithTools(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}, []ai.FunctionTool{{Name: "noop"}})

	var apiErr *ai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1, requestCount)
}

func TestChatDoesNotRetryWithoutFeatures(t *testing.T) {
	// A body matching the heuristic must not trigger a retry when nothing
	// downgradeable was requested in the first place.
	var requestCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"tool mention in an unrelated error"}}`)
	}))
	defer server.Close()

	_, err := testProvider(server.URL).Chat(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})

	require.Error(t, err)
	assert.Equal(t, 1, requestCount)
}

func TestChatWithToolsParsesStringArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"","tool_calls":[
			{"id":"call_abc","type":"function","function":{"name":"get_weather","arguments":"{\"city\":\"Paris\"}"}},
			{"type":"function","function":{"name":"get_time","arguments":"not json at all {{{"}}
		]},"finish_reason":"tool_calls"}]}`)
	}))
	defer server.Close()

	result, err := testProvider(server.URL).ChatWithTools(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "weather?"}},
	}, []ai.FunctionTool{{Name: "get_weather"}, {Name: "get_time"}})

	require.NoError(t, err)
	require.Len(t, result.ToolCalls, 2)

	assert.Equal(t, "call_abc", result.ToolCalls[0].ID)
	assert.Equal(t, map[string]any{"city": "Paris"}, result.ToolCalls[0].Arguments)

	// Missing id gets a synthesized ordinal; unparseable arguments become an
	// empty map rather than failing the call.
	assert.Equal(t, "call_1", result.ToolCalls[1].ID)
	assert.NotNil(t, result.ToolCalls[1].Arguments)
	assert.Empty(t, result.ToolCalls[1].Arguments)
}

func TestRequestCarriesWebSearchOnlyWhenSupported(t *testing.T) {
	var decoded map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &decoded))
		io.WriteString(w, completionBody("ok"))
	}))
	defer server.Close()

	_, err := testProvider(server.URL).Chat(context.Background(), ai.ChatParams{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
		Tooling:  ai.ToolingOptions{WebSearch: true, CodeExecution: true},
	})
	require.NoError(t, err)

	// Web search is supported and serialized; code execution is not supported
	// and silently dropped instead of being sent in any form.
	assert.Contains(t, decoded, "web_search_options")
	assert.NotContains(t, decoded, "code_execution")
}
