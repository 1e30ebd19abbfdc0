package openai

import (
	"fmt"
	"strings"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

// Temperature range accepted by the chat completions API.
const (
	minTemperature float32 = 0
	maxTemperature float32 = 2
)

// requestFromParams converts generic ChatParams into the chat completions
// wire format. tools and tooling are passed separately so the downgrade
// retry can rebuild the request with both stripped.
func requestFromParams(params ai.ChatParams, tools []ai.FunctionTool, tooling ai.ToolingOptions) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:     params.Model,
		Messages:  buildMessages(params),
		MaxTokens: params.MaxTokens,
	}

	if params.Temperature != nil {
		req.Temperature = utils.Ptr(clampTemperature(*params.Temperature))
	}

	if params.Effort != "" {
		req.ReasoningEffort = string(params.Effort)
	}

	req.Tools = buildTools(tools)

	if tooling.WebSearch {
		req.WebSearchOptions = &webSearchOptions{}
	}

	return req
}

// buildMessages maps the generic turn sequence onto the native system-role
// slot: messages pass through unchanged unless an explicit system prompt is
// set, in which case it becomes the single leading system turn.
func buildMessages(params ai.ChatParams) []chatMessage {
	source := params.MessagesWithSystem()
	messages := make([]chatMessage, 0, len(source))
	for _, msg := range source {
		messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return messages
}

// buildTools wraps caller-declared function tools in the function wrapper,
// schema unchanged.
func buildTools(tools []ai.FunctionTool) []toolDefinition {
	if len(tools) == 0 {
		return nil
	}

	definitions := make([]toolDefinition, 0, len(tools))
	for _, tool := range tools {
		definitions = append(definitions, toolDefinition{
			Type: "function",
			Function: functionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return definitions
}

func clampTemperature(t float32) float32 {
	if t < minTemperature {
		return minTemperature
	}
	if t > maxTemperature {
		return maxTemperature
	}
	return t
}

// firstChoiceContent returns the text of the first choice, or "" when the
// vendor returned no choices.
func firstChoiceContent(resp *chatCompletionResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}

// extractToolResult normalizes the first choice into the uniform tool-call
// shape: vendor ids kept (or synthesized as call_<ordinal> when absent),
// entries without a name discarded, stringified arguments parsed into a map
// with an empty-map fallback.
func extractToolResult(resp *chatCompletionResponse) *ai.ToolChatResult {
	result := &ai.ToolChatResult{}
	if resp == nil || len(resp.Choices) == 0 {
		return result
	}

	message := resp.Choices[0].Message
	result.Content = strings.TrimSpace(message.Content)

	for ordinal, call := range message.ToolCalls {
		if call.Function.Name == "" {
			continue
		}

		id := call.ID
		if id == "" {
			id = fmt.Sprintf("call_%d", ordinal)
		}

		result.ToolCalls = append(result.ToolCalls, ai.ToolCall{
			ID:        id,
			Name:      call.Function.Name,
			Arguments: utils.ParseToolArguments(call.Function.Arguments),
		})
	}

	return result
}
