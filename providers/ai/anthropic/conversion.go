package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	// defaultMaxTokens is used when the caller does not set a limit, because
	// the Messages API rejects requests without max_tokens.
	defaultMaxTokens = 4096

	// cachePrefixThreshold is the minimum combined character length of the
	// system prompt plus all turns except the last for prompt caching to be
	// worth a cache_control marker. Below this the cache write costs more
	// than it saves.
	cachePrefixThreshold = 100

	webSearchToolType     = "web_search_20250305"
	codeExecutionToolType = "code_execution_20250522"
)

func requestFromParams(params ai.ChatParams, tools []ai.FunctionTool, tooling ai.ToolingOptions, allowCache bool) anthropicRequest {
	system, turns := params.SplitSystem()
	messages := buildTurns(turns)

	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	req := anthropicRequest{
		Model:       params.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: clampTemperature(params.Temperature),
		Tools:       buildTools(tools, tooling),
	}

	if system != "" {
		req.System = []systemBlock{{Type: "text", Text: system}}
	}

	if allowCache && cacheEligible(system, messages, tooling) {
		applyCacheControl(&req)
	}

	return req
}

// buildTurns maps the generic turn list onto Anthropic's strict
// user/assistant alternation: leading assistant turns have no user turn to
// respond to and are dropped, and adjacent same-role turns are merged into
// one block with a blank line between them.
func buildTurns(turns []ai.Message) []anthropicMessage {
	messages := make([]anthropicMessage, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == ai.RoleAssistant {
			role = "assistant"
		}

		if len(messages) == 0 && role == "assistant" {
			continue
		}

		if len(messages) > 0 && messages[len(messages)-1].Role == role {
			last := &messages[len(messages)-1]
			block := &last.Content[len(last.Content)-1]
			block.Text = block.Text + "\n\n" + turn.Content
			continue
		}

		messages = append(messages, anthropicMessage{
			Role:    role,
			Content: []contentBlock{{Type: "text", Text: turn.Content}},
		})
	}
	return messages
}

// cacheEligible decides whether the request prefix is worth caching. Code
// execution disables caching outright (the sandbox invalidates cache
// entries); otherwise there must be a reusable prefix, meaning a system
// prompt or more than one turn, whose combined length excluding the final
// turn reaches the threshold. The final turn is never part of the prefix:
// it changes on every call.
func cacheEligible(system string, messages []anthropicMessage, tooling ai.ToolingOptions) bool {
	if tooling.CodeExecution {
		return false
	}
	if system == "" && len(messages) <= 1 {
		return false
	}

	combined := len(system)
	for i, msg := range messages {
		if i == len(messages)-1 {
			break
		}
		for _, block := range msg.Content {
			combined += len(block.Text)
		}
	}
	return combined >= cachePrefixThreshold
}

// applyCacheControl marks the cacheable prefix: the system block and the
// last block of every turn except the final one.
func applyCacheControl(req *anthropicRequest) {
	ephemeral := &cacheControl{Type: "ephemeral"}

	for i := range req.System {
		req.System[i].CacheControl = ephemeral
	}

	for i := range req.Messages {
		if i == len(req.Messages)-1 {
			break
		}
		content := req.Messages[i].Content
		content[len(content)-1].CacheControl = ephemeral
	}
}

// hasCacheControl reports whether any block in the request carries a
// cache_control marker.
func hasCacheControl(req anthropicRequest) bool {
	for _, block := range req.System {
		if block.CacheControl != nil {
			return true
		}
	}
	for _, msg := range req.Messages {
		for _, block := range msg.Content {
			if block.CacheControl != nil {
				return true
			}
		}
	}
	return false
}

func buildTools(tools []ai.FunctionTool, tooling ai.ToolingOptions) []anthropicTool {
	var out []anthropicTool

	if tooling.WebSearch {
		out = append(out, anthropicTool{Type: webSearchToolType, Name: "web_search"})
	}
	if tooling.CodeExecution {
		out = append(out, anthropicTool{Type: codeExecutionToolType, Name: "code_execution"})
	}

	for _, tool := range tools {
		schema, err := json.Marshal(tool.Parameters)
		if err != nil {
			continue
		}
		out = append(out, anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		})
	}

	return out
}

// clampTemperature bounds temperature to Anthropic's [0, 1] range.
func clampTemperature(temperature *float32) *float32 {
	if temperature == nil {
		return nil
	}
	value := *temperature
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	return &value
}

// textContent joins the text blocks of a response with newlines, ignoring
// tool_use and any unknown block types.
func textContent(resp *anthropicResponse) string {
	if resp == nil {
		return ""
	}

	var segments []string
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			segments = append(segments, block.Text)
		}
	}
	return strings.TrimSpace(strings.Join(segments, "\n"))
}

func extractToolResult(resp *anthropicResponse) *ai.ToolChatResult {
	result := &ai.ToolChatResult{Content: textContent(resp)}
	if resp == nil {
		return result
	}

	for ordinal, block := range resp.Content {
		if block.Type != "tool_use" || block.Name == "" {
			continue
		}

		id := block.ID
		if id == "" {
			id = fmt.Sprintf("tool_use_%d", ordinal)
		}

		result.ToolCalls = append(result.ToolCalls, ai.ToolCall{
			ID:        id,
			Name:      block.Name,
			Arguments: utils.ParseToolArguments(block.Input),
		})
	}

	return result
}
