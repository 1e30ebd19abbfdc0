package gemini

import (
	"fmt"
	"strings"

	"github.com/seralba/llmbridge/internal/jsonschema"
	"github.com/seralba/llmbridge/providers/ai"
)

func requestFromParams(params ai.ChatParams, tools []ai.FunctionTool, tooling ai.ToolingOptions) generateContentRequest {
	system, turns := params.SplitSystem()

	req := generateContentRequest{
		Contents: buildContents(turns),
		Tools:    buildTools(tools, tooling),
	}

	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}

	if params.Temperature != nil || params.MaxTokens > 0 {
		req.GenerationConfig = &generationConfig{
			Temperature:     clampTemperature(params.Temperature),
			MaxOutputTokens: params.MaxTokens,
		}
	}

	return req
}

func buildContents(turns []ai.Message) []geminiContent {
	contents := make([]geminiContent, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: turn.Content}},
		})
	}
	return contents
}

func buildTools(tools []ai.FunctionTool, tooling ai.ToolingOptions) []geminiToolGroup {
	var groups []geminiToolGroup

	if tooling.WebSearch {
		groups = append(groups, geminiToolGroup{GoogleSearch: &struct{}{}})
	}
	if tooling.CodeExecution {
		groups = append(groups, geminiToolGroup{CodeExecution: &struct{}{}})
	}

	if len(tools) > 0 {
		declarations := make([]functionDeclaration, 0, len(tools))
		for _, tool := range tools {
			declarations = append(declarations, functionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  translateSchema(tool.Parameters),
			})
		}
		groups = append(groups, geminiToolGroup{FunctionDeclarations: declarations})
	}

	return groups
}

// translateSchema converts a JSON Schema tree into Gemini's typed dialect,
// recursing through properties and items. Required and enum carry over
// unchanged. The translation is idempotent: already-uppercase type names map
// to themselves.
func translateSchema(schema *jsonschema.Schema) *geminiSchema {
	if schema == nil {
		return nil
	}

	out := &geminiSchema{
		Type:        translateType(schema.Type),
		Description: schema.Description,
		Required:    schema.Required,
		Enum:        schema.Enum,
		Items:       translateSchema(schema.Items),
	}

	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*geminiSchema, len(schema.Properties))
		for name, property := range schema.Properties {
			out.Properties[name] = translateSchema(property)
		}
	}

	return out
}

// translateType maps JSON Schema type names onto Gemini's uppercase
// equivalents. Unknown and absent types fall back to STRING rather than
// producing a typeless node, which Gemini rejects.
func translateType(jsonType string) string {
	switch strings.ToLower(jsonType) {
	case "object":
		return "OBJECT"
	case "array":
		return "ARRAY"
	case "string":
		return "STRING"
	case "integer":
		return "INTEGER"
	case "number":
		return "NUMBER"
	case "boolean":
		return "BOOLEAN"
	default:
		return "STRING"
	}
}

// clampTemperature bounds temperature to Gemini's [0, 2] range.
func clampTemperature(temperature *float32) *float32 {
	if temperature == nil {
		return nil
	}
	value := *temperature
	if value < 0 {
		value = 0
	}
	if value > 2 {
		value = 2
	}
	return &value
}

// textContent joins the text parts of the first candidate with newlines,
// ignoring functionCall parts.
func textContent(resp *generateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var segments []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			segments = append(segments, part.Text)
		}
	}
	return strings.TrimSpace(strings.Join(segments, "\n"))
}

func extractToolResult(resp *generateContentResponse) *ai.ToolChatResult {
	result := &ai.ToolChatResult{Content: textContent(resp)}
	if resp == nil || len(resp.Candidates) == 0 {
		return result
	}

	// Gemini does not assign call IDs; synthesize stable ordinal ones so
	// callers can correlate results.
	for ordinal, part := range resp.Candidates[0].Content.Parts {
		if part.FunctionCall == nil || part.FunctionCall.Name == "" {
			continue
		}

		arguments := part.FunctionCall.Args
		if arguments == nil {
			arguments = map[string]any{}
		}

		result.ToolCalls = append(result.ToolCalls, ai.ToolCall{
			ID:        fmt.Sprintf("call_%d", ordinal),
			Name:      part.FunctionCall.Name,
			Arguments: arguments,
		})
	}

	return result
}
