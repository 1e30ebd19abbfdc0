// Package ai defines the uniform chat-completion contract shared by every
// vendor adapter: the generic data model (ChatParams, Message, FunctionTool,
// normalized ToolCall), the StreamChunk sequence with its terminal-chunk
// guarantees, the fixed per-vendor capability table, and the error taxonomy
// (configuration errors, soft feature rejections, hard vendor errors).
//
// Concrete adapters live in the sub-packages (openai, anthropic, gemini,
// mistral, openrouter, ollama, lmstudio). Vendor selection happens in the
// top-level llmbridge factory only.
package ai
