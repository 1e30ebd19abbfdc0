package lmstudio

import (
	"fmt"
	"strings"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

func requestFromParams(params ai.ChatParams, tools []ai.FunctionTool) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:       params.Model,
		Messages:    buildMessages(params),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
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

func buildMessages(params ai.ChatParams) []chatMessage {
	source := params.MessagesWithSystem()
	messages := make([]chatMessage, 0, len(source))
	for _, msg := range source {
		messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return messages
}

func firstChoiceContent(resp *chatCompletionResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}

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
