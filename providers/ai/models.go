package ai

import (
	"strings"

	"github.com/seralba/llmbridge/internal/jsonschema"
)

/*
	##### PROVIDER INPUT #####
*/

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// Message represents a single role-tagged turn in a conversation.
// Ordering is significant.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ReasoningEffort is the optional effort hint for reasoning-capable models.
type ReasoningEffort string

const (
	EffortLow    ReasoningEffort = "low"
	EffortMedium ReasoningEffort = "medium"
	EffortHigh   ReasoningEffort = "high"
)

// ToolingOptions is a request-level declaration of optional vendor built-in
// tools. Flags for features a vendor does not support (see the capability
// table) are silently dropped from the wire request rather than sent.
type ToolingOptions struct {
	WebSearch     bool `json:"web_search,omitempty"`
	CodeExecution bool `json:"code_execution,omitempty"`
}

// Any reports whether at least one built-in tool is requested.
func (t ToolingOptions) Any() bool {
	return t.WebSearch || t.CodeExecution
}

// ChatParams represents a request to send a chat message. Cancellation is
// carried by the context.Context passed alongside it; adapters compose a
// fixed upper-bound timeout with the caller's context.
type ChatParams struct {
	Model        string          `json:"model"`
	Messages     []Message       `json:"messages"`
	SystemPrompt string          `json:"system_prompt,omitempty"` // Takes precedence over an embedded system message
	MaxTokens    int             `json:"max_tokens,omitempty"`
	Temperature  *float32        `json:"temperature,omitempty"` // Vendor-clamped range
	Effort       ReasoningEffort `json:"effort,omitempty"`
	Tooling      ToolingOptions  `json:"tooling,omitempty"`
}

// SplitSystem returns the effective system prompt and the turn list without
// system-role messages. The explicit SystemPrompt field wins over system
// messages embedded in the turn list; when it is unset, embedded system
// messages are joined with blank lines to form the prompt.
func (p ChatParams) SplitSystem() (string, []Message) {
	var embedded []string
	turns := make([]Message, 0, len(p.Messages))

	for _, msg := range p.Messages {
		if msg.Role == RoleSystem {
			embedded = append(embedded, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}

	if p.SystemPrompt != "" {
		return p.SystemPrompt, turns
	}
	return strings.Join(embedded, "\n\n"), turns
}

// MessagesWithSystem returns the turn list for vendors with a native
// system-role slot. When no explicit SystemPrompt is set, the messages pass
// through unchanged. When one is set, it is restored as a single leading
// system turn and any embedded system messages are dropped.
func (p ChatParams) MessagesWithSystem() []Message {
	if p.SystemPrompt == "" {
		return p.Messages
	}

	result := make([]Message, 0, len(p.Messages)+1)
	result = append(result, Message{Role: RoleSystem, Content: p.SystemPrompt})
	for _, msg := range p.Messages {
		if msg.Role == RoleSystem {
			continue
		}
		result = append(result, msg)
	}
	return result
}

// FunctionTool is a caller-declared callable function, described in the
// generic JSON-Schema-like shape. Adapters render it into their vendor's
// native tool declaration.
type FunctionTool struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

/*
	##### PROVIDER OUTPUT #####
*/

// ToolCall is the normalized output of a vendor's function-calling response,
// regardless of how the vendor represents it on the wire. Arguments is always
// a parsed object: vendors that return stringified JSON have it parsed during
// extraction, falling back to an empty map on parse failure.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolChatResult is the outcome of a tool-augmented call. Content is the
// concatenation, in emission order, of all textual segments with tool-call
// segments excluded.
type ToolChatResult struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
