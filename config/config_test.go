package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralba/llmbridge/providers/ai"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llmbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeConfig(t, `
default_provider: anthropic
default_model: claude-sonnet-4-5
providers:
  anthropic:
    api_key: file-key
  ollama:
    base_url: http://gpu-box:11434
rate_limit:
  requests_per_second: 5
  burst: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.DefaultProvider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.DefaultModel)
	assert.Equal(t, "file-key", cfg.Provider(ai.ProviderAnthropic).APIKey)
	assert.Equal(t, "http://gpu-box:11434", cfg.Provider(ai.ProviderOllama).BaseURL)
	require.NotNil(t, cfg.RateLimit)
	assert.Equal(t, float64(5), cfg.RateLimit.RequestsPerSecond)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
providers:
  mistral:
    api_key: file-key
`)
	t.Setenv("MISTRAL_API_KEY", "env-key")
	t.Setenv("MISTRAL_API_BASE_URL", "http://mistral-proxy/v1")

	cfg, err := Load(path)
	require.NoError(t, err)

	settings := cfg.Provider(ai.ProviderMistral)
	assert.Equal(t, "env-key", settings.APIKey)
	assert.Equal(t, "http://mistral-proxy/v1", settings.BaseURL)
}

func TestLoadMissingDefaultFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Providers)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "providers: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestProviderUnconfiguredReturnsZero(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, ProviderSettings{}, cfg.Provider(ai.ProviderGemini))
}
