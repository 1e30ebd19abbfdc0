package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

// ChatStream implements [ai.Provider]. Gemini streams SSE when alt=sse is
// set on the streamGenerateContent endpoint; chunks share the candidate
// shape of the synchronous response and there is no [DONE] sentinel, the
// stream simply ends after the finishReason chunk.
func (p *GeminiProvider) ChatStream(ctx context.Context, params ai.ChatParams) *ai.ChatStream {
	if p.apiKey == "" {
		return ai.NewErrorStream(&ai.ConfigError{Provider: ai.ProviderGemini, Missing: "GEMINI_API_KEY"})
	}

	ctx, cancel := context.WithTimeout(ctx, ai.StreamTimeout)

	tooling := ai.GateTooling(ai.ProviderGemini, params.Tooling)
	request := requestFromParams(params, nil, tooling)
	url := p.generateURL(params.Model, true)

	response, err := utils.DoPostStream(ctx, p.client, url, "", request, p.authHeader())
	if err != nil && ai.ShouldDowngrade(err) && tooling.Any() {
		bare := requestFromParams(params, nil, ai.ToolingOptions{})
		response, err = utils.DoPostStream(ctx, p.client, url, "", bare, p.authHeader())
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

			var chunk generateContentResponse
			if json.Unmarshal([]byte(payload), &chunk) != nil {
				continue
			}

			if chunk.Error != nil {
				yield(ai.ErrorChunk(chunk.Error.Message))
				return
			}

			if len(chunk.Candidates) == 0 {
				continue
			}

			cand := chunk.Candidates[0]
			for _, part := range cand.Content.Parts {
				if part.Text == "" {
					continue
				}
				if !yield(ai.TokenChunk(part.Text)) {
					return
				}
			}

			if cand.FinishReason != "" {
				yield(ai.DoneChunk())
				return
			}
		}
	}
}
