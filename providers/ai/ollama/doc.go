// Package ollama implements the chat contract for a local Ollama daemon
// using its native /api/chat endpoint: no authentication, NDJSON streaming
// and object-valued tool-call arguments.
package ollama
