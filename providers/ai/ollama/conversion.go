package ollama

import (
	"fmt"
	"strings"

	"github.com/seralba/llmbridge/providers/ai"
)

func requestFromParams(params ai.ChatParams, tools []ai.FunctionTool) chatRequest {
	req := chatRequest{
		Model:    params.Model,
		Messages: buildMessages(params),
	}

	if params.Temperature != nil || params.MaxTokens > 0 {
		req.Options = &requestOptions{
			Temperature: params.Temperature,
			NumPredict:  params.MaxTokens,
		}
	}

	if len(tools) > 0 {
		req.Tools = make([]toolDefinition, 0, len(tools))
		for _, tool := range tools {
			req.Tools = append(req.Tools, toolDefinition{
				Type: "function",
				Function: functionDefinition{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  tool.Parameters,
				},
			})
		}
	}

	return req
}

// buildMessages passes turns through unchanged; Ollama accepts system
// messages in the turn list like the chat-completions family.
func buildMessages(params ai.ChatParams) []chatMessage {
	source := params.MessagesWithSystem()
	messages := make([]chatMessage, 0, len(source))
	for _, msg := range source {
		messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return messages
}

func messageContent(resp *chatResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Message.Content
}

func extractToolResult(resp *chatResponse) *ai.ToolChatResult {
	result := &ai.ToolChatResult{}
	if resp == nil {
		return result
	}

	result.Content = strings.TrimSpace(resp.Message.Content)

	for ordinal, call := range resp.Message.ToolCalls {
		if call.Function.Name == "" {
			continue
		}

		arguments := call.Function.Arguments
		if arguments == nil {
			arguments = map[string]any{}
		}

		// Ollama does not assign call IDs; synthesize ordinal ones.
		result.ToolCalls = append(result.ToolCalls, ai.ToolCall{
			ID:        fmt.Sprintf("call_%d", ordinal),
			Name:      call.Function.Name,
			Arguments: arguments,
		})
	}

	return result
}
