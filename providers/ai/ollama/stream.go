package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

// ChatStream implements [ai.Provider]. Ollama streams newline-delimited JSON
// objects, one per line, terminated by an object with done set to true.
func (p *OllamaProvider) ChatStream(ctx context.Context, params ai.ChatParams) *ai.ChatStream {
	ctx, cancel := context.WithTimeout(ctx, ai.StreamTimeout)

	request := requestFromParams(params, nil)
	request.Stream = true

	response, err := utils.DoPostStream(ctx, p.client, p.baseURL+chatEndpoint, "", request)
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

		scanner := utils.NewLineScanner(body)
		for {
			if ctx.Err() != nil {
				yield(ai.ErrorChunk(ctx.Err().Error()))
				return
			}

			line, readErr := scanner.Next()
			if readErr == io.EOF {
				return
			}
			if readErr != nil {
				if ctx.Err() != nil {
					yield(ai.ErrorChunk(ctx.Err().Error()))
				} else {
					yield(ai.ErrorChunk(fmt.Sprintf("stream read error: %v", readErr)))
				}
				return
			}

			var chunk chatResponse
			if json.Unmarshal([]byte(line), &chunk) != nil {
				continue
			}

			if chunk.Error != "" {
				yield(ai.ErrorChunk(chunk.Error))
				return
			}

			if chunk.Message.Content != "" {
				if !yield(ai.TokenChunk(chunk.Message.Content)) {
					return
				}
			}

			if chunk.Done {
				yield(ai.DoneChunk())
				return
			}
		}
	}
}
