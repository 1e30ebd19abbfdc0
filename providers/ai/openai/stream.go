package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

// ChatStream implements [ai.Provider]. All failures, including pre-stream
// ones, surface in-band as a single error chunk. The feature downgrade-retry
// applies to streaming requests exactly as it does to synchronous ones.
func (p *OpenAIProvider) ChatStream(ctx context.Context, params ai.ChatParams) *ai.ChatStream {
	if p.apiKey == "" {
		return ai.NewErrorStream(&ai.ConfigError{Provider: ai.ProviderOpenAI, Missing: "OPENAI_API_KEY"})
	}

	// The timeout composes with the caller's context; cancel is released by
	// the iterator when the stream ends on any path.
	ctx, cancel := context.WithTimeout(ctx, ai.StreamTimeout)

	tooling := ai.GateTooling(ai.ProviderOpenAI, params.Tooling)
	request := requestFromParams(params, nil, tooling)
	request.Stream = true
	request.StreamOptions = &streamOptions{IncludeUsage: false}

	url := p.baseURL + chatCompletionsEndpoint

	response, err := utils.DoPostStream(ctx, p.client, url, p.apiKey, request)
	if err != nil && tooling.Any() && ai.ShouldDowngrade(err) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{})
		bare.Stream = true
		bare.StreamOptions = &streamOptions{IncludeUsage: false}
		response, err = utils.DoPostStream(ctx, p.client, url, p.apiKey, bare)
	}
	if err != nil {
		cancel()
		return ai.NewErrorStream(ai.WrapVendorError(vendorName, err))
	}

	return ai.NewChatStream(decodeStream(ctx, cancel, response.Body))
}

// decodeStream translates chat-completion SSE frames into stream chunks.
// Malformed payloads are skipped for forward progress; the [DONE] sentinel
// and a non-empty finish_reason both terminate the stream. The response body
// is closed on every exit path.
func decodeStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser) iter.Seq[ai.StreamChunk] {
	return func(yield func(ai.StreamChunk) bool) {
		defer cancel()
		defer utils.CloseWithLog(body)

		scanner := utils.NewSSEScanner(body)
		for {
			if ctx.Err() != nil {
				yield(ai.ErrorChunk(ctx.Err().Error()))
				return
			}

			payload, sseErr := scanner.Next()
			if sseErr == io.EOF {
				// Reader finished; NewChatStream synthesizes the done chunk
				// if no terminal was emitted.
				return
			}
			if sseErr != nil {
				if ctx.Err() != nil {
					yield(ai.ErrorChunk(ctx.Err().Error()))
				} else {
					yield(ai.ErrorChunk(fmt.Sprintf("stream read error: %v", sseErr)))
				}
				return
			}

			var chunk chatCompletionChunk
			if json.Unmarshal([]byte(payload), &chunk) != nil {
				// Partial or malformed vendor payload; skip it.
				continue
			}

			if chunk.Error != nil {
				yield(ai.ErrorChunk(chunk.Error.Message))
				return
			}

			if len(chunk.Choices) == 0 {
				continue
			}

			choice := chunk.Choices[0]
			if choice.Delta.Content != "" {
				if !yield(ai.TokenChunk(choice.Delta.Content)) {
					return
				}
			}

			if choice.FinishReason != "" {
				yield(ai.DoneChunk())
				return
			}
		}
	}
}
