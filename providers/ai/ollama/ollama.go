package ollama

import (
	"context"
	"net/http"
	"os"

	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	// defaultBaseURL targets a local Ollama daemon on its default port.
	defaultBaseURL = "http://localhost:11434"

	// chatEndpoint is Ollama's native chat endpoint. Ollama also exposes an
	// OpenAI-compatible shim under /v1, but the native API reports richer
	// errors and model metadata.
	chatEndpoint = "/api/chat"

	vendorName = "Ollama"
)

// OllamaProvider implements [ai.Provider] and [ai.ToolProvider] for a local
// Ollama daemon. Ollama needs no credentials, streams NDJSON rather than
// SSE, and returns tool-call arguments as decoded JSON objects.
//
// Unlike the hosted vendors, tool rejections are not downgraded: a local
// model that cannot handle tools is a setup problem the caller should see
// as-is, not something to paper over with a degraded retry.
type OllamaProvider struct {
	baseURL string
	client  *http.Client
}

// New returns an OllamaProvider initialized from OLLAMA_API_BASE_URL,
// defaulting to the local daemon.
func New() *OllamaProvider {
	baseURL := os.Getenv("OLLAMA_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OllamaProvider{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithBaseURL overrides the daemon address, e.g. for a remote Ollama host.
func (p *OllamaProvider) WithBaseURL(baseURL string) *OllamaProvider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *OllamaProvider) WithHTTPClient(httpClient *http.Client) *OllamaProvider {
	p.client = httpClient
	return p
}

// Name implements [ai.Provider].
func (p *OllamaProvider) Name() string { return vendorName }

// Chat implements [ai.Provider].
func (p *OllamaProvider) Chat(ctx context.Context, params ai.ChatParams) (string, error) {
	resp, err := p.complete(ctx, params, nil)
	if err != nil {
		return "", err
	}
	return messageContent(resp), nil
}

// ChatWithTools implements [ai.ToolProvider].
func (p *OllamaProvider) ChatWithTools(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*ai.ToolChatResult, error) {
	resp, err := p.complete(ctx, params, tools)
	if err != nil {
		return nil, err
	}
	return extractToolResult(resp), nil
}

func (p *OllamaProvider) complete(ctx context.Context, params ai.ChatParams, tools []ai.FunctionTool) (*chatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, ai.RequestTimeout)
	defer cancel()

	request := requestFromParams(params, tools)

	resp, err := utils.DoPostSync[chatResponse](ctx, p.client, p.baseURL+chatEndpoint, "", request)
	if err != nil {
		return nil, ai.WrapVendorError(vendorName, err)
	}
	return resp, nil
}
