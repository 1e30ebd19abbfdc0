// Package anthropic implements the chat contract for Anthropic's Messages
// API: top-level system field, strictly alternating turns, input_schema tool
// declarations, event-typed SSE streaming and ephemeral prompt caching.
package anthropic
