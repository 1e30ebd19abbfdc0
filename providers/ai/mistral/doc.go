// Package mistral implements the chat contract for Mistral's chat API.
// Bearer auth, chat-completions wire family, temperature clamped to [0, 1].
package mistral
