// Package lmstudio implements the chat contract for the LM Studio local
// runtime: a chat-completions-compatible server on localhost with no
// authentication and a caller-configured base URL.
package lmstudio
