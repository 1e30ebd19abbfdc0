package ai

import (
	"context"
	"time"
)

// Adapters compose these upper bounds with the caller's context so that
// either one aborts the underlying request. Streaming gets a larger budget
// because time-to-last-byte scales with completion length.
const (
	RequestTimeout = 60 * time.Second
	StreamTimeout  = 120 * time.Second
)

// Provider is the uniform chat contract every vendor adapter implements.
// Vendor selection happens in the factory only; callers never need
// vendor-specific knowledge.
type Provider interface {
	// Name returns the vendor's display name as used in error messages
	// (e.g. "OpenAI", "Anthropic").
	Name() string

	// Chat sends a non-streaming chat request and returns the response text.
	// Failures carry the vendor's status and (truncated) body via *APIError.
	Chat(ctx context.Context, params ChatParams) (string, error)

	// ChatStream sends a streaming chat request and returns a ChatStream
	// yielding token chunks followed by exactly one terminal chunk. All
	// failures, including pre-stream ones (missing key, 4xx, transport),
	// surface in-band as an error chunk; ChatStream never returns a Go
	// error directly.
	ChatStream(ctx context.Context, params ChatParams) *ChatStream
}

// ToolProvider is an optional interface adapters implement when the vendor
// supports caller-declared function tools. Callers detect support via type
// assertion: provider.(ToolProvider).
type ToolProvider interface {
	Provider

	// ChatWithTools sends a chat request with function-tool declarations and
	// returns the normalized result: textual content plus zero or more
	// parsed tool calls.
	ChatWithTools(ctx context.Context, params ChatParams, tools []FunctionTool) (*ToolChatResult, error)
}
