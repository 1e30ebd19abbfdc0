package anthropic

import (
	"context"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"

	// betaCodeExecution enables the server-side code execution sandbox.
	betaCodeExecution = "code-execution-2025-08-25"

	vendorName = "Anthropic"
)

// AnthropicProvider implements [ai.Provider] and [ai.ToolProvider] for
// Anthropic's Messages API. Anthropic belongs to the conversational-only
// class: system content lives in a top-level field and the turn list must
// strictly alternate user/assistant, which the conversion layer enforces.
// It is also the one vendor with ephemeral prompt caching (see conversion.go).
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an AnthropicProvider initialized from ANTHROPIC_API_KEY and
// ANTHROPIC_API_BASE_URL.
func New() *AnthropicProvider {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &AnthropicProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider for chaining.
func (p *AnthropicProvider) WithAPIKey(apiKey string) *AnthropicProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL. Use this when targeting a proxy or
// local testing endpoint.
func (p *AnthropicProvider) WithBaseURL(baseURL string) *AnthropicProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *AnthropicProvider) WithHTTPClient(httpClient *http.Client) *AnthropicProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *AnthropicProvider) Name() string { return vendorName }

// buildHeaders constructs the headers required for every Anthropic request.
// x-api-key carries the credential (Anthropic does not use Bearer tokens),
// anthropic-version pins the wire format, and anthropic-beta is added only
// when code execution is in play so the header is absent for standard
// requests.
func (p *AnthropicProvider) buildHeaders(codeExecution bool) []utils.HeaderOption {
	headers := []utils.HeaderOption{
		{Key: "x-api-key", Value: p.apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
	if codeExecution {
		headers = append(headers, utils.HeaderOption{Key: "anthropic-beta", Value: betaCodeExecution})
	}
	return headers
}

// Chat implements [ai.Provider].
func (p *AnthropicProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return textContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *AnthropicProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

// complete runs the request/downgrade-retry protocol. The downgraded request
// drops built-in tooling, function tools AND cache_control markers, since a
// caching rejection matches the same soft-error heuristic.
func (p *AnthropicProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*anthropicResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ConfigError{Provider: ai.ProviderAnthropic, Missing: "ANTHROPIC_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	tooling := ai.GateTooling(ai.ProviderAnthropic, params.Tooling)
	request := requestFromParams(params, tools, tooling, true)
	url := p.baseURL + messagesEndpoint

	// Empty apiKey so DoPostSync does not inject a Bearer token; Anthropic
	// authenticates via x-api-key instead.
	resp, err := utils.DoPostSync[anthropicResponse](ctx, p.client, url, "", request, p.buildHeaders(tooling.CodeExecution)...)
	if err == nil {
		return resp, nil
	}

	if ai.ShouldDowngrade(err) && (tooling.Any() || len(tools) > 0 || hasCacheControl(request)) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{}, false)
		resp, retryErr := utils.DoPostSync[anthropicResponse](ctx, p.client, url, "", bare, p.buildHeaders(false)...)
		if retryErr != nil {
			return nil, ai.WrapVendorError(vendorName, retryErr)
		}
		return resp, nil
	}

	return nil, ai.WrapVendorError(vendorName, err)
}
