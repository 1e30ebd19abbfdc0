// Package llmbridge exposes a uniform chat interface over multiple
// structurally incompatible LLM vendor APIs: hosted services (OpenAI,
// Anthropic, Gemini, Mistral, OpenRouter) and local runtimes (Ollama,
// LM Studio).
//
// Each vendor adapter translates a common request shape into the vendor's
// wire format and normalizes responses, streaming frames and errors back
// into shared types. Construct a provider directly from its package or by
// ID through [New].
package llmbridge
