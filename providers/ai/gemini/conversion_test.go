package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/internal/jsonschema"
	"github.com/seralba/llmbridge/providers/ai"
)

func TestTranslateSchemaNested(t *testing.T) {
	source := &jsonschema.Schema{
		Type:        "object",
		Description: "Trip planner input",
		Required:    []string{"destination"},
		Properties: map[string]*jsonschema.Schema{
			"destination": {Type: "string", Description: "Where to go"},
			"days":        {Type: "integer"},
			"budget":      {Type: "number"},
			"flexible":    {Type: "boolean"},
			"stops": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"city": {Type: "string", Enum: []any{"Paris", "Rome"}},
					},
				},
			},
		},
	}

	got := translateSchema(source)
	require.NotNil(t, got)

	assert.Equal(t, "OBJECT", got.Type)
	assert.Equal(t, "Trip planner input", got.Description)
	assert.Equal(t, []string{"destination"}, got.Required)

	assert.Equal(t, "STRING", got.Properties["destination"].Type)
	assert.Equal(t, "INTEGER", got.Properties["days"].Type)
	assert.Equal(t, "NUMBER", got.Properties["budget"].Type)
	assert.Equal(t, "BOOLEAN", got.Properties["flexible"].Type)

	stops := got.Properties["stops"]
	assert.Equal(t, "ARRAY", stops.Type)
	require.NotNil(t, stops.Items)
	assert.Equal(t, "OBJECT", stops.Items.Type)
	assert.Equal(t, []any{"Paris", "Rome"}, stops.Items.Properties["city"].Enum)
}

func TestTranslateTypeUnknownFallsBackToString(t *testing.T) {
	assert.Equal(t, "STRING", translateType("null"))
	assert.Equal(t, "STRING", translateType("tuple"))
	assert.Equal(t, "STRING", translateType(""))
}

func TestTranslateSchemaTypelessNodeGetsStringType(t *testing.T) {
	got := translateSchema(&jsonschema.Schema{Description: "free-form value"})

	require.NotNil(t, got)
	assert.Equal(t, "STRING", got.Type)
	assert.Equal(t, "free-form value", got.Description)
}

func TestTranslateTypeIdempotent(t *testing.T) {
	for _, name := range []string{"object", "array", "string", "integer", "number", "boolean"} {
		once := translateType(name)
		assert.Equal(t, once, translateType(once), "type %q", name)
	}
}

func TestTranslateSchemaNil(t *testing.T) {
	assert.Nil(t, translateSchema(nil))
}

func TestRequestUsesModelRoleAndSystemInstruction(t *testing.T) {
	req := requestFromParams(ai.ChatParams{
		Model:        "gemini-2.0-flash",
		SystemPrompt: "be terse",
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "hi"},
			{Role: ai.RoleAssistant, Content: "hello"},
			{Role: ai.RoleUser, Content: "more"},
		},
	}, nil, ai.ToolingOptions{})

	require.NotNil(t, req.SystemInstruction)
	assert.Equal(t, "be terse", req.SystemInstruction.Parts[0].Text)
	assert.Empty(t, req.SystemInstruction.Role)

	require.Len(t, req.Contents, 3)
	assert.Equal(t, "user", req.Contents[0].Role)
	assert.Equal(t, "model", req.Contents[1].Role)
	assert.Equal(t, "user", req.Contents[2].Role)
}

func TestRequestBuiltInTools(t *testing.T) {
	req := requestFromParams(ai.ChatParams{
		Model:    "gemini-2.0-flash",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}, nil, ai.ToolingOptions{WebSearch: true, CodeExecution: true})

	require.Len(t, req.Tools, 2)
	assert.NotNil(t, req.Tools[0].GoogleSearch)
	assert.NotNil(t, req.Tools[1].CodeExecution)
}

func TestExtractToolResultSynthesizesOrdinalIDs(t *testing.T) {
	resp := &generateContentResponse{
		Candidates: []candidate{{
			Content: geminiContent{
				Role: "model",
				Parts: []geminiPart{
					{Text: "Let me check."},
					{FunctionCall: &geminiFunctionCall{Name: "get_weather", Args: map[string]any{"city": "Paris"}}},
					{FunctionCall: &geminiFunctionCall{Name: "get_time"}},
				},
			},
		}},
	}

	result := extractToolResult(resp)
	assert.Equal(t, "Let me check.", result.Content)
	require.Len(t, result.ToolCalls, 2)
	assert.Equal(t, "call_1", result.ToolCalls[0].ID)
	assert.Equal(t, map[string]any{"city": "Paris"}, result.ToolCalls[0].Arguments)
	assert.Equal(t, "call_2", result.ToolCalls[1].ID)
	assert.NotNil(t, result.ToolCalls[1].Arguments)
	assert.Empty(t, result.ToolCalls[1].Arguments)
}

func TestGenerateURL(t *testing.T) {
	provider := New().WithAPIKey("k").WithBaseURL("http://example.test/v1beta")

	assert.Equal(t,
		"http://example.test/v1beta/models/gemini-2.0-flash:generateContent",
		provider.generateURL("gemini-2.0-flash", false))
	assert.Equal(t,
		"http://example.test/v1beta/models/gemini-2.0-flash:streamGenerateContent?alt=sse",
		provider.generateURL("gemini-2.0-flash", true))
}
