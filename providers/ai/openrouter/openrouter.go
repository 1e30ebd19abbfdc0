package openrouter

import (
	"context"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	defaultBaseURL          = "https://openrouter.ai/api/v1"
	chatCompletionsEndpoint = "/chat/completions"
	vendorName              = "OpenRouter"

	// OpenRouter uses these optional headers for app attribution on their
	// public leaderboard; they are harmless for API behavior.
	refererHeader = "https://github.com/seralba/llmbridge"
	titleHeader   = "llmbridge"
)

// OpenRouterProvider implements [ai.Provider] and [ai.ToolProvider] for the
// OpenRouter aggregation API. Because OpenRouter proxies many upstream
// models, mid-stream failures are comparatively common; the stream decoder
// applies a survivability rule (see stream.go) so a partial answer is not
// discarded.
type OpenRouterProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an OpenRouterProvider initialized from OPENROUTER_API_KEY and
// OPENROUTER_API_BASE_URL.
func New() *OpenRouterProvider {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	baseURL := os.Getenv("OPENROUTER_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenRouterProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider for chaining.
func (p *OpenRouterProvider) WithAPIKey(apiKey string) *OpenRouterProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the default base URL for API requests.
func (p *OpenRouterProvider) WithBaseURL(baseURL string) *OpenRouterProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *OpenRouterProvider) WithHTTPClient(httpClient *http.Client) *OpenRouterProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *OpenRouterProvider) Name() string { return vendorName }

func attributionHeaders() []utils.HeaderOption {
	return []utils.HeaderOption{
		{Key: "HTTP-Referer", Value: refererHeader},
		{Key: "X-Title", Value: titleHeader},
	}
}

// Chat implements [ai.Provider].
func (p *OpenRouterProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return firstChoiceContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *OpenRouterProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

func (p *OpenRouterProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*chatCompletionResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ConfigError{Provider: ai.ProviderOpenRouter, Missing: "OPENROUTER_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	tooling := ai.GateTooling(ai.ProviderOpenRouter, params.Tooling)
	request := requestFromParams(params, tools, tooling)
	url := p.baseURL + chatCompletionsEndpoint

	resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, request, attributionHeaders()...)
	if err == nil {
		return resp, nil
	}

	if (tooling.Any() || len(tools) > 0) && ai.ShouldDowngrade(err) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{})
		resp, retryErr := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, bare, attributionHeaders()...)
		if retryErr != nil {
			return nil, ai.WrapVendorError(vendorName, retryErr)
		}
		return resp, nil
	}

	return nil, ai.WrapVendorError(vendorName, err)
}
