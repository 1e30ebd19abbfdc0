package openrouter

import "github.com/seralba/llmbridge/internal/jsonschema"

/*
	OPENROUTER API - REQUEST TYPES
*/

type chatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessage    `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature *float32         `json:"temperature,omitempty"`
	Reasoning   *reasoningConfig `json:"reasoning,omitempty"`
	Tools       []toolDefinition `json:"tools,omitempty"`
	Plugins     []plugin         `json:"plugins,omitempty"`
	Stream      bool             `json:"stream,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type reasoningConfig struct {
	Effort string `json:"effort,omitempty"`
}

// plugin enables OpenRouter-side request augmentation; {"id":"web"} turns on
// their built-in web search.
type plugin struct {
	ID string `json:"id"`
}

type toolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function functionDefinition `json:"function"`
}

type functionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

/*
	OPENROUTER API - RESPONSE TYPES
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
	Function responseFunctionCall `json:"function"`
}

type responseFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON-encoded string on the wire
}

/*
	OPENROUTER API - STREAMING TYPES
*/

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
