package mistral

import (
	"context"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	defaultBaseURL          = "https://api.mistral.ai/v1"
	chatCompletionsEndpoint = "/chat/completions"
	vendorName              = "Mistral"
)

// MistralProvider implements [ai.Provider] and [ai.ToolProvider] for
// Mistral's chat API. The wire shape follows the chat-completions family;
// Mistral declares no built-in tools in the capability table, so only
// caller-declared function tools are ever sent.
type MistralProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a MistralProvider initialized from MISTRAL_API_KEY and
// MISTRAL_API_BASE_URL.
func New() *MistralProvider {
	apiKey := os.Getenv("MISTRAL_API_KEY")
	baseURL := os.Getenv("MISTRAL_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &MistralProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider for chaining.
func (p *MistralProvider) WithAPIKey(apiKey string) *MistralProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the default base URL for API requests.
func (p *MistralProvider) WithBaseURL(baseURL string) *MistralProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *MistralProvider) WithHTTPClient(httpClient *http.Client) *MistralProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *MistralProvider) Name() string { return vendorName }

// Chat implements [ai.Provider].
func (p *MistralProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return firstChoiceContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *MistralProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

func (p *MistralProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*chatCompletionResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ConfigError{Provider: ai.ProviderMistral, Missing: "MISTRAL_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	request := requestFromParams(params, tools)
	url := p.baseURL + chatCompletionsEndpoint

	resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, request)
	if err == nil {
		return resp, nil
	}

	if len(tools) > 0 && ai.ShouldDowngrade(err) {
		bare := requestFromParams(params, nil)
		resp, retryErr := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, bare)
		if retryErr != nil {
			return nil, ai.WrapVendorError(vendorName, retryErr)
		}
		return resp, nil
	}

	return nil, ai.WrapVendorError(vendorName, err)
}
