package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

// ChatStream implements [ai.Provider]. Failures surface in-band as a single
// error chunk.
func (p *OpenRouterProvider) ChatStream(ctx context.Context, params ai.ChatParams) *ai.ChatStream {
	if p.apiKey == "" {
		return ai.NewErrorStream(&ai.ConfigError{Provider: ai.ProviderOpenRouter, Missing: "OPENROUTER_API_KEY"})
	}

	ctx, cancel := context.WithTimeout(ctx, ai.StreamTimeout)

	tooling := ai.GateTooling(ai.ProviderOpenRouter, params.Tooling)
	request := requestFromParams(params, nil, tooling)
	request.Stream = true

	url := p.baseURL + chatCompletionsEndpoint

	response, err := utils.DoPostStream(ctx, p.client, url, p.apiKey, request, attributionHeaders()...)
	if err != nil && tooling.Any() && ai.ShouldDowngrade(err) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{})
		bare.Stream = true
		response, err = utils.DoPostStream(ctx, p.client, url, p.apiKey, bare, attributionHeaders()...)
	}
	if err != nil {
		cancel()
		return ai.NewErrorStream(ai.WrapVendorError(vendorName, err))
	}

	return ai.NewChatStream(decodeStream(ctx, cancel, response.Body))
}

// decodeStream translates OpenRouter SSE frames into stream chunks.
//
// Survivability rule: upstream models proxied by OpenRouter sometimes die
// mid-generation, which surfaces as finish_reason "error". When at least one
// token has already been emitted the partial answer is still usable, so the
// stream terminates with done; with no tokens emitted it terminates with
// error.
func decodeStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser) iter.Seq[ai.StreamChunk] {
	return func(yield func(ai.StreamChunk) bool) {
		defer cancel()
		defer utils.CloseWithLog(body)

		tokensEmitted := 0

		scanner := utils.NewSSEScanner(body)
		for {
			if ctx.Err() != nil {
				yield(ai.ErrorChunk(ctx.Err().Error()))
				return
			}

			payload, sseErr := scanner.Next()
			if sseErr == io.EOF {
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
				tokensEmitted++
			}

			switch choice.FinishReason {
			case "":
				// Generation still in progress.
			case "error":
				if tokensEmitted > 0 {
					yield(ai.DoneChunk())
				} else {
					yield(ai.ErrorChunk("upstream model error before any output"))
				}
				return
			default:
				yield(ai.DoneChunk())
				return
			}
		}
	}
}
