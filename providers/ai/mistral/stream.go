package mistral

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
func (p *MistralProvider) ChatStream(ctx context.Context, params ai.ChatParams) *ai.ChatStream {
	if p.apiKey == "" {
		return ai.NewErrorStream(&ai.ConfigError{Provider: ai.ProviderMistral, Missing: "MISTRAL_API_KEY"})
	}

	ctx, cancel := context.WithTimeout(ctx, ai.StreamTimeout)

	request := requestFromParams(params, nil)
	request.Stream = true

	response, err := utils.DoPostStream(ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, request)
	if err != nil {
		cancel()
		return ai.NewErrorStream(ai.WrapVendorError(vendorName, err))
	}

	return ai.NewChatStream(decodeStream(ctx, cancel, response.Body))
}

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
			}

			if choice.FinishReason != "" {
				yield(ai.DoneChunk())
				return
			}
		}
	}
}
