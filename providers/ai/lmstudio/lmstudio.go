package lmstudio

import (
	"context"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	defaultBaseURL          = "http://localhost:1234/v1"
	chatCompletionsEndpoint = "/chat/completions"
	vendorName              = "LM Studio"
)

// LMStudioProvider implements [ai.Provider] and [ai.ToolProvider] for the
// LM Studio local runtime. LM Studio exposes a chat-completions-compatible
// server on localhost with no authentication; only the base URL is
// configurable.
type LMStudioProvider struct {
	baseURL string
	client  *http.Client
}

// New returns an LMStudioProvider initialized from LMSTUDIO_API_BASE_URL,
// defaulting to the runtime's standard localhost port.
func New() *LMStudioProvider {
	baseURL := os.Getenv("LMSTUDIO_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &LMStudioProvider{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithBaseURL overrides the local runtime address.
func (p *LMStudioProvider) WithBaseURL(baseURL string) *LMStudioProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *LMStudioProvider) WithHTTPClient(httpClient *http.Client) *LMStudioProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *LMStudioProvider) Name() string { return vendorName }

// Chat implements [ai.Provider].
func (p *LMStudioProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return firstChoiceContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *LMStudioProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

func (p *LMStudioProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*chatCompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	request := requestFromParams(params, tools)
	url := p.baseURL + chatCompletionsEndpoint

	// Empty apiKey: the local runtime takes no Authorization header.
	resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, "", request)
	if err == nil {
		return resp, nil
	}

	// Locally loaded models frequently lack function-calling support; the
	// standard downgrade applies so a plain completion still comes back.
	if len(tools) > 0 && ai.ShouldDowngrade(err) {
		bare := requestFromParams(params, nil)
		resp, retryErr := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, "", bare)
		if retryErr != nil {
			return nil, ai.WrapVendorError(vendorName, retryErr)
		}
		return resp, nil
	}

	return nil, ai.WrapVendorError(vendorName, err)
}
