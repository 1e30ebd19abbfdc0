// Package openai implements the chat contract for OpenAI's chat completions
// API: Bearer auth, function-wrapper tool declarations, reasoning-effort
// passthrough, built-in web search via web_search_options, and SSE streaming
// with the [DONE] sentinel.
package openai
