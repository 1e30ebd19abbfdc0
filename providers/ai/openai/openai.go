package openai

import (
	"context"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
	vendorName              = "OpenAI"
)

// OpenAIProvider implements [ai.Provider] and [ai.ToolProvider] for OpenAI's
// chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an OpenAIProvider initialized from environment variables.
// It reads OPENAI_API_KEY for authentication and OPENAI_API_BASE_URL for the
// endpoint base (defaulting to the hosted API when unset).
func New() *OpenAIProvider {
	apiKey := os.Getenv("OPENAI_API_KEY")
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider for chaining.
func (p *OpenAIProvider) WithAPIKey(apiKey string) *OpenAIProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the default base URL for API requests.
func (p *OpenAIProvider) WithBaseURL(baseURL string) *OpenAIProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *OpenAIProvider) WithHTTPClient(httpClient *http.Client) *OpenAIProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *OpenAIProvider) Name() string { return vendorName }

// Chat implements [ai.Provider].
func (p *OpenAIProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return firstChoiceContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *OpenAIProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

// complete runs the request/downgrade-retry protocol shared by Chat and
// ChatWithTools. On a 4xx whose body matches the feature-rejection heuristic
// the request is rebuilt without tools and built-in tooling and retried
// exactly once; any other failure, or a failure of the retry itself, is
// surfaced as a hard vendor error.
func (p *OpenAIProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*chatCompletionResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ConfigError{Provider: ai.ProviderOpenAI, Missing: "OPENAI_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	tooling := ai.GateTooling(ai.ProviderOpenAI, params.Tooling)
	request := requestFromParams(params, tools, tooling)
	url := p.baseURL + chatCompletionsEndpoint

	resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, request)
	if err == nil {
		return resp, nil
	}

	if (tooling.Any() || len(tools) > 0) && ai.ShouldDowngrade(err) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{})
		resp, retryErr := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, bare)
		if retryErr != nil {
			return nil, ai.WrapVendorError(vendorName, retryErr)
		}
		return resp, nil
	}

	return nil, ai.WrapVendorError(vendorName, err)
}
