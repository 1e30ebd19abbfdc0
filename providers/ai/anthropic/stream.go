package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

// ChatStream implements [ai.Provider]. Anthropic streams event-typed SSE
// rather than the [DONE]-terminated chat-completions framing: each data
// payload carries a type field and the stream ends with a message_stop event.
func (p *AnthropicProvider) ChatStream(ctx context.Context, params ai.ChatParams) *ai.ChatStream {
	if p.apiKey == "" {
		return ai.NewErrorStream(&ai.ConfigError{Provider: ai.ProviderAnthropic, Missing: "ANTHROPIC_API_KEY"})
	}

	ctx, cancel := context.WithTimeout(ctx, ai.StreamTimeout)

	tooling := ai.GateTooling(ai.ProviderAnthropic, params.Tooling)
	request := requestFromParams(params, nil, tooling, true)
	request.Stream = true
	url := p.baseURL + messagesEndpoint

	response, err := utils.DoPostStream(ctx, p.client, url, "", request, p.buildHeaders(tooling.CodeExecution)...)
	if err != nil && ai.ShouldDowngrade(err) && (tooling.Any() || hasCacheControl(request)) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{}, false)
		bare.Stream = true
		response, err = utils.DoPostStream(ctx, p.client, url, "", bare, p.buildHeaders(false)...)
	}
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

			var event streamEvent
			if json.Unmarshal([]byte(payload), &event) != nil {
				continue
			}

			switch event.Type {
			case "content_block_delta":
				if event.Delta != nil && event.Delta.Type == "text_delta" && event.Delta.Text != "" {
					if !yield(ai.TokenChunk(event.Delta.Text)) {
						return
					}
				}

			case "message_stop":
				yield(ai.DoneChunk())
				return

			case "error":
				message := "unknown stream error"
				if event.Error != nil && event.Error.Message != "" {
					message = event.Error.Message
				}
				yield(ai.ErrorChunk(message))
				return
			}
		}
	}
}
