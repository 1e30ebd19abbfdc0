package anthropic

import "encoding/json"

/*
	ANTHROPIC MESSAGES API - REQUEST TYPES
*/

// anthropicRequest represents the request body for Anthropic's Messages API.
type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	System      []systemBlock      `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"` // Required by Anthropic on every request
	Temperature *float32           `json:"temperature,omitempty"`
	Tools       []anthropicTool    `json:"tools,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

// anthropicMessage is a single strictly-alternating turn. Content is always
// the block-array form so cache_control can be attached to the final block.
type anthropicMessage struct {
	Role    string         `json:"role"` // "user" or "assistant"
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type         string        `json:"type"` // "text"
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

// systemBlock carries the top-level system prompt; the block form is needed
// so prompt caching can mark it.
type systemBlock struct {
	Type         string        `json:"type"` // "text"
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

// cacheControl marks a block as an ephemeral prompt-cache breakpoint.
type cacheControl struct {
	Type string `json:"type"` // "ephemeral"
}

// anthropicTool is a discriminated union: caller-declared function tools set
// Name/Description/InputSchema; built-in server tools set Type plus their
// well-known Name.
type anthropicTool struct {
	Type        string          `json:"type,omitempty"` // server tools: "web_search_20250305", "code_execution_20250522"
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema,omitempty"` // JSON Schema for tool input
}

/*
	ANTHROPIC MESSAGES API - RESPONSE TYPES
*/

// anthropicResponse represents the response from Anthropic's Messages API.
type anthropicResponse struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"` // "message"
	Role       string                 `json:"role"` // "assistant"
	Content    []responseContentBlock `json:"content"`
	Model      string                 `json:"model"`
	StopReason string                 `json:"stop_reason"`
}

// responseContentBlock is discriminated by Type. Unknown types are silently
// ignored during conversion for forward-compatibility.
type responseContentBlock struct {
	Type  string          `json:"type"`            // "text", "tool_use"
	Text  string          `json:"text,omitempty"`  // For type="text"
	ID    string          `json:"id,omitempty"`    // For type="tool_use"
	Name  string          `json:"name,omitempty"`  // For type="tool_use"
	Input json.RawMessage `json:"input,omitempty"` // For type="tool_use" (arbitrary JSON object)
}

/*
	ANTHROPIC MESSAGES API - STREAMING TYPES
*/

// streamEvent is the envelope for Anthropic's event-typed SSE payloads:
// message_start, content_block_start, content_block_delta,
// content_block_stop, message_delta, message_stop, error, ping.
type streamEvent struct {
	Type  string            `json:"type"`
	Delta *streamDelta      `json:"delta,omitempty"`
	Error *streamEventError `json:"error,omitempty"`
}

type streamDelta struct {
	Type       string `json:"type"` // "text_delta", "input_json_delta"
	Text       string `json:"text,omitempty"`
	StopReason string `json:"stop_reason,omitempty"` // On message_delta events
}

type streamEventError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
