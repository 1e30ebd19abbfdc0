package llmbridge

import (
	"fmt"
	"net/http"

	"github.com/seralba/llmbridge/config"
	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
	"github.com/seralba/llmbridge/providers/ai/anthropic"
	"github.com/seralba/llmbridge/providers/ai/gemini"
	"github.com/seralba/llmbridge/providers/ai/lmstudio"
	"github.com/seralba/llmbridge/providers/ai/mistral"
	"github.com/seralba/llmbridge/providers/ai/ollama"
	"github.com/seralba/llmbridge/providers/ai/openai"
	"github.com/seralba/llmbridge/providers/ai/openrouter"
)

// New constructs the provider identified by id, resolving credentials and
// base URLs from cfg. A nil cfg means environment-only configuration: each
// provider reads its own environment variables. A hosted provider with no
// resolvable API key is still constructed; its first call fails with
// [ai.ConfigError] before any network traffic.
func New(id ai.ProviderID, cfg *config.Config) (ai.Provider, error) {
	settings := cfg.Provider(id)
	client := newHTTPClient(cfg)

	switch id {
	case ai.ProviderOpenAI:
		p := openai.New().WithHTTPClient(client)
		if settings.APIKey != "" {
			p = p.WithAPIKey(settings.APIKey)
		}
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	case ai.ProviderAnthropic:
		p := anthropic.New().WithHTTPClient(client)
		if settings.APIKey != "" {
			p = p.WithAPIKey(settings.APIKey)
		}
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	case ai.ProviderGemini:
		p := gemini.New().WithHTTPClient(client)
		if settings.APIKey != "" {
			p = p.WithAPIKey(settings.APIKey)
		}
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	case ai.ProviderMistral:
		p := mistral.New().WithHTTPClient(client)
		if settings.APIKey != "" {
			p = p.WithAPIKey(settings.APIKey)
		}
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	case ai.ProviderOpenRouter:
		p := openrouter.New().WithHTTPClient(client)
		if settings.APIKey != "" {
			p = p.WithAPIKey(settings.APIKey)
		}
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	case ai.ProviderOllama:
		p := ollama.New().WithHTTPClient(client)
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	case ai.ProviderLMStudio:
		p := lmstudio.New().WithHTTPClient(client)
		if settings.BaseURL != "" {
			p = p.WithBaseURL(settings.BaseURL)
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider: %q", id)
	}
}

// NewToolProvider is like [New] but requires the provider to support
// function tools. All built-in providers do; the error guards callers
// constructing providers by ID from external input.
func NewToolProvider(id ai.ProviderID, cfg *config.Config) (ai.ToolProvider, error) {
	provider, err := New(id, cfg)
	if err != nil {
		return nil, err
	}
	toolProvider, ok := provider.(ai.ToolProvider)
	if !ok {
		return nil, fmt.Errorf("provider %q does not support function tools", id)
	}
	return toolProvider, nil
}

// newHTTPClient builds the shared HTTP client, wrapping the transport with a
// client-side rate limiter when configured.
func newHTTPClient(cfg *config.Config) *http.Client {
	client := &http.Client{}
	if cfg != nil && cfg.RateLimit != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		client.Transport = utils.NewRateLimitedTransport(nil, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	return client
}
