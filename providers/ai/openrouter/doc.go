// Package openrouter implements the chat contract for the OpenRouter
// aggregation API: Bearer auth plus attribution headers, web search via the
// "web" plugin, reasoning-effort passthrough, and a stream decoder that
// keeps partial answers when an upstream model dies mid-generation.
package openrouter
