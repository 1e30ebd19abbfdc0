package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/seralba/llmbridge/providers/ai"
)

// defaultConfigFile is looked up in the working directory when no explicit
// path is given.
const defaultConfigFile = "llmbridge.yaml"

// ProviderSettings holds per-provider connection settings. Empty fields fall
// back to the provider's own defaults (environment variables, canonical base
// URLs).
type ProviderSettings struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// RateLimit configures client-side request throttling applied to every
// provider's HTTP client.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Config is the file-level configuration. Values resolve in order: YAML
// file, then environment variables, which always win so deployments can
// override a checked-in file without editing it.
type Config struct {
	DefaultProvider string                      `yaml:"default_provider"`
	DefaultModel    string                      `yaml:"default_model"`
	Providers       map[string]ProviderSettings `yaml:"providers"`
	RateLimit       *RateLimit                  `yaml:"rate_limit"`
}

// Load reads configuration from the YAML file at path, or from
// llmbridge.yaml in the working directory when path is empty. A .env file is
// loaded first when present so the environment overlay can draw from it.
// A missing file is not an error: the zero Config with environment overlay
// applied is returned.
func Load(path string) (*Config, error) {
	// Missing .env is the common case, not a failure.
	_ = godotenv.Load()

	cfg := &Config{Providers: map[string]ProviderSettings{}}

	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if cfg.Providers == nil {
			cfg.Providers = map[string]ProviderSettings{}
		}
	case os.IsNotExist(err) && !explicit:
		// Fall through to environment-only configuration.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.overlayEnv()
	return cfg, nil
}

// overlayEnv applies {PROVIDER}_API_KEY and {PROVIDER}_API_BASE_URL
// environment variables over the file values for every known provider.
func (c *Config) overlayEnv() {
	for _, id := range ai.KnownProviders() {
		prefix := strings.ToUpper(string(id))
		settings := c.Providers[string(id)]

		if key := os.Getenv(prefix + "_API_KEY"); key != "" {
			settings.APIKey = key
		}
		if baseURL := os.Getenv(prefix + "_API_BASE_URL"); baseURL != "" {
			settings.BaseURL = baseURL
		}

		c.Providers[string(id)] = settings
	}
}

// Provider returns the resolved settings for id; the zero value when the
// provider is not configured.
func (c *Config) Provider(id ai.ProviderID) ProviderSettings {
	if c == nil || c.Providers == nil {
		return ProviderSettings{}
	}
	return c.Providers[string(id)]
}
