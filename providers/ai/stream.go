package ai

import (
	"errors"
	"iter"
	"strings"
)

// ChunkType identifies the kind of payload carried by a StreamChunk.
type ChunkType string

const (
	// ChunkToken carries an incremental text delta.
	ChunkToken ChunkType = "token"
	// ChunkDone signals that the stream finished normally.
	ChunkDone ChunkType = "done"
	// ChunkError signals an error that terminated the stream.
	ChunkError ChunkType = "error"
)

// StreamChunk is the tagged variant yielded during streaming. Token chunks
// may repeat zero or more times; exactly one terminal chunk (done or error)
// ends every stream and nothing follows it.
type StreamChunk struct {
	Type    ChunkType `json:"type"`
	Content string    `json:"content,omitempty"` // Type == ChunkToken
	Err     string    `json:"error,omitempty"`   // Type == ChunkError
}

// TokenChunk returns a token chunk carrying content.
func TokenChunk(content string) StreamChunk {
	return StreamChunk{Type: ChunkToken, Content: content}
}

// DoneChunk returns the normal terminal chunk.
func DoneChunk() StreamChunk {
	return StreamChunk{Type: ChunkDone}
}

// ErrorChunk returns the failing terminal chunk with the given message.
func ErrorChunk(message string) StreamChunk {
	return StreamChunk{Type: ChunkError, Err: message}
}

// ChatStream is a single-consumer pull sequence of StreamChunk values.
//
// Callers must consume the stream, either by ranging over Iter() (breaking
// out early is fine) or by calling Collect(). The underlying adapter holds
// the HTTP response body open until the iterator completes or is abandoned
// via a loop break; constructing a ChatStream and never iterating it leaks
// that body.
type ChatStream struct {
	iterator iter.Seq[StreamChunk]
}

// NewChatStream wraps a raw adapter iterator and enforces the terminal-chunk
// contract centrally: forwarding stops after the first done or error chunk,
// and when the source ends without ever emitting a terminal chunk a
// synthetic done is appended. Adapters therefore only need to translate
// vendor frames; the invariants hold regardless.
func NewChatStream(source iter.Seq[StreamChunk]) *ChatStream {
	iteratorFunc := func(yield func(StreamChunk) bool) {
		for chunk := range source {
			if !yield(chunk) {
				return
			}
			if chunk.Type != ChunkToken {
				// Terminal chunk forwarded; drop anything the source may
				// still produce.
				return
			}
		}
		// Source exhausted without a terminal chunk (e.g. socket closed
		// mid-stream): synthesize the done.
		yield(DoneChunk())
	}

	return &ChatStream{iterator: iteratorFunc}
}

// NewErrorStream returns a stream whose only chunk is the given error.
// Used for pre-stream failures so streaming callers have a single code path.
func NewErrorStream(err error) *ChatStream {
	return NewChatStream(func(yield func(StreamChunk) bool) {
		yield(ErrorChunk(err.Error()))
	})
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for chunk := range stream.Iter() {
//	    switch chunk.Type { ... }
//	}
func (stream *ChatStream) Iter() iter.Seq[StreamChunk] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the concatenated token
// content. A terminal error chunk is returned as a Go error alongside any
// content accumulated before it.
func (stream *ChatStream) Collect() (string, error) {
	var builder strings.Builder

	for chunk := range stream.iterator {
		switch chunk.Type {
		case ChunkToken:
			builder.WriteString(chunk.Content)
		case ChunkDone:
			return builder.String(), nil
		case ChunkError:
			return builder.String(), errors.New(chunk.Err)
		}
	}

	return builder.String(), nil
}
