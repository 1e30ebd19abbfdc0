package openai

import "github.com/seralba/llmbridge/internal/jsonschema"

/*
	OPENAI CHAT COMPLETIONS API - REQUEST TYPES
*/

type chatCompletionRequest struct {
	Model            string            `json:"model"`
	Messages         []chatMessage     `json:"messages"`
	MaxTokens        int               `json:"max_completion_tokens,omitempty"`
	Temperature      *float32          `json:"temperature,omitempty"`
	ReasoningEffort  string            `json:"reasoning_effort,omitempty"`
	Tools            []toolDefinition  `json:"tools,omitempty"`
	WebSearchOptions *webSearchOptions `json:"web_search_options,omitempty"`
	Stream           bool              `json:"stream,omitempty"`
	StreamOptions    *streamOptions    `json:"stream_options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// toolDefinition is the function-call-style tool wrapper: the generic schema
// travels unchanged under function.parameters.
type toolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function functionDefinition `json:"function"`
}

type functionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// webSearchOptions opts the request into OpenAI's built-in web search.
// An empty object requests default behavior.
type webSearchOptions struct{}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage,omitempty"`
}

/*
	OPENAI CHAT COMPLETIONS API - RESPONSE TYPES
*/

type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Message      responseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type responseMessage struct {
	Role      string             `json:"role"`
	Content   string             `json:"content"`
	ToolCalls []responseToolCall `json:"tool_calls,omitempty"`
}

type responseToolCall struct {
	ID       string               `json:"id"`
	Type     string               `json:"type"`
	Function responseFunctionCall `json:"function"`
}

type responseFunctionCall struct {
	Name string `json:"name"`
	// Arguments is a JSON-encoded string on the OpenAI wire; extraction
	// parses it into a map.
	Arguments string `json:"arguments"`
}

/*
	OPENAI CHAT COMPLETIONS API - STREAMING TYPES
*/

// chatCompletionChunk is one SSE payload of a streamed completion.
type chatCompletionChunk struct {
	Choices []chunkChoice `json:"choices"`
	Error   *streamError  `json:"error,omitempty"`
}

type chunkChoice struct {
	Delta        chunkDelta `json:"delta"`
	FinishReason string     `json:"finish_reason"`
}

type chunkDelta struct {
	Content string `json:"content"`
}

type streamError struct {
	Message string `json:"message"`
}
