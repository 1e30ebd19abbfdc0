package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for the Gemini API.
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	vendorName = "Gemini"
)

// GeminiProvider implements [ai.Provider] and [ai.ToolProvider] for Google's
// Gemini API. Gemini departs from the chat-completions shape on every axis:
// the model name is part of the URL, the assistant role is called "model",
// system content travels in a dedicated systemInstruction field, and tool
// parameter schemas use an uppercase typed dialect (see conversion.go).
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a GeminiProvider initialized from GEMINI_API_KEY and
// GEMINI_API_BASE_URL.
func New() *GeminiProvider {
	apiKey := os.Getenv("GEMINI_API_KEY")
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider for chaining.
func (p *GeminiProvider) WithAPIKey(apiKey string) *GeminiProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL. Use this when targeting a proxy or
// local testing endpoint.
func (p *GeminiProvider) WithBaseURL(baseURL string) *GeminiProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *GeminiProvider) WithHTTPClient(httpClient *http.Client) *GeminiProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *GeminiProvider) Name() string { return vendorName }

// generateURL builds the per-model endpoint URL. Unlike the chat-completions
// family, Gemini encodes the model in the path rather than the body.
func (p *GeminiProvider) generateURL(model string, streaming bool) string {
	if streaming {
		return fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.baseURL, model)
	}
	return fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
}

func (p *GeminiProvider) authHeader() utils.HeaderOption {
	return utils.HeaderOption{Key: "x-goog-api-key", Value: p.apiKey}
}

// Chat implements [ai.Provider].
func (p *GeminiProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return textContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *GeminiProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

func (p *GeminiProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*generateContentResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ConfigError{Provider: ai.ProviderGemini, Missing: "GEMINI_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	tooling := ai.GateTooling(ai.ProviderGemini, params.Tooling)
	request := requestFromParams(params, tools, tooling)
	url := p.generateURL(params.Model, false)

	resp, err := utils.DoPostSync[generateContentResponse](ctx, p.client, url, "", request, p.authHeader())
	if err == nil {
		return resp, nil
	}

	if ai.ShouldDowngrade(err) && (tooling.Any() || len(tools) > 0) {
		bare := requestFromParams(params, nil, ai.ToolingOptions{})
		resp, retryErr := utils.DoPostSync[generateContentResponse](ctx, p.client, url, "", bare, p.authHeader())
		if retryErr != nil {
			return nil, ai.WrapVendorError(vendorName, retryErr)
		}
		return resp, nil
	}

	return nil, ai.WrapVendorError(vendorName, err)
}
