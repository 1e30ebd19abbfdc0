package llmbridge

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/config"
	"github.com/seralba/llmbridge/providers/ai"
)

func TestNewResolvesEveryKnownProvider(t *testing.T) {
	cfg := &config.Config{Providers: map[string]config.ProviderSettings{}}
	for _, id := range ai.KnownProviders() {
		provider, err := New(id, cfg)
		require.NoError(t, err, "provider %s", id)
		assert.NotEmpty(t, provider.Name())
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(ai.ProviderID("watson"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewAppliesConfigSettings(t *testing.T) {
	cfg := &config.Config{Providers: map[string]config.ProviderSettings{
		"openai": {APIKey: "from-config", BaseURL: "http://proxy.internal/v1"},
	}}

	provider, err := New(ai.ProviderOpenAI, cfg)
	require.NoError(t, err)
	assert.Equal(t, "OpenAI", provider.Name())
}

func TestNewNilConfigUsesEnvironmentDefaults(t *testing.T) {
	provider, err := New(ai.ProviderOllama, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ollama", provider.Name())
}

func TestNewToolProvider(t *testing.T) {
	for _, id := range ai.KnownProviders() {
		provider, err := NewToolProvider(id, nil)
		require.NoError(t, err, "provider %s", id)
		assert.Implements(t, (*ai.ToolProvider)(nil), provider)
	}
}

func TestNewHTTPClientRateLimiting(t *testing.T) {
	client := newHTTPClient(&config.Config{RateLimit: &config.RateLimit{RequestsPerSecond: 2, Burst: 1}})
	require.NotNil(t, client.Transport)

	plain := newHTTPClient(&config.Config{})
	assert.Nil(t, plain.Transport)

	assert.IsType(t, &http.Client{}, plain)
}
