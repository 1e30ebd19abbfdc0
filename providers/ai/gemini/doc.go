// Package gemini implements the chat contract for Google's Gemini API:
// per-model URLs, the "model" assistant role, systemInstruction prompts and
// the uppercase typed schema dialect for function declarations.
package gemini
