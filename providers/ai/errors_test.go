package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/internal/utils"
)

func TestIsFeatureRejection(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       bool
	}{
		{"tool keyword", 400, `{"error": "tools are not supported for this model"}`, true},
		{"case insensitive", 400, `{"error": "Unsupported parameter"}`, true},
		{"web search keyword", 422, `{"error": "web_search is not available"}`, true},
		{"caching keyword", 400, `{"error": "prompt caching not enabled"}`, true},
		{"cache_control keyword", 400, `{"error": "cache_control: invalid"}`, true},
		{"substring inside word", 400, `{"error": "research quota exceeded"}`, true},
		{"unrelated 400", 400, `{"error": "invalid api key"}`, false},
		{"server error never soft", 500, `{"error": "tool backend crashed"}`, false},
		{"2xx never soft", 200, "tool", false},
		{"429 without keyword", 429, "rate limited", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFeatureRejection(tt.statusCode, tt.body))
		})
	}
}

func TestShouldDowngrade(t *testing.T) {
	soft := &utils.HTTPStatusError{StatusCode: 400, Body: "tools unsupported"}
	assert.True(t, ShouldDowngrade(soft))

	hard := &utils.HTTPStatusError{StatusCode: 401, Body: "invalid api key"}
	assert.False(t, ShouldDowngrade(hard))

	assert.False(t, ShouldDowngrade(context.Canceled))
	assert.False(t, ShouldDowngrade(nil))
}

func TestWrapVendorError(t *testing.T) {
	statusErr := &utils.HTTPStatusError{StatusCode: 429, Body: "rate limited"}

	err := WrapVendorError("OpenAI", statusErr)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "OpenAI API error (429): rate limited", apiErr.Error())

	// Non-HTTP errors pass through untouched.
	assert.Equal(t, context.Canceled, WrapVendorError("OpenAI", context.Canceled))
}

func TestNewAPIErrorTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 2000)
	apiErr := NewAPIError("Mistral", 500, long)

	assert.Less(t, len(apiErr.Body), len(long))
	assert.Contains(t, apiErr.Body, "truncated")
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Provider: ProviderOpenAI, Missing: "OPENAI_API_KEY"}
	assert.Equal(t, "openai: missing required configuration: OPENAI_API_KEY", err.Error())
}
