package ai

// ProviderID identifies a vendor adapter. The factory is the only place that
// dispatches on it.
type ProviderID string

const (
	ProviderOpenAI     ProviderID = "openai"
	ProviderAnthropic  ProviderID = "anthropic"
	ProviderGemini     ProviderID = "gemini"
	ProviderMistral    ProviderID = "mistral"
	ProviderOpenRouter ProviderID = "openrouter"
	ProviderOllama     ProviderID = "ollama"
	ProviderLMStudio   ProviderID = "lmstudio"
)

// ToolSupport declares which optional built-in tools a vendor accepts.
// Request builders consult it to decide which ToolingOptions flags may be
// attempted; unsupported flags are dropped silently instead of sent.
type ToolSupport struct {
	WebSearch     bool
	CodeExecution bool
}

// toolSupport is the fixed capability table. It is process-wide static data:
// consulted, never mutated, so adapters stay side-effect-free with respect
// to each other.
var toolSupport = map[ProviderID]ToolSupport{
	ProviderOpenAI:     {WebSearch: true, CodeExecution: false},
	ProviderAnthropic:  {WebSearch: true, CodeExecution: true},
	ProviderGemini:     {WebSearch: true, CodeExecution: true},
	ProviderMistral:    {WebSearch: false, CodeExecution: false},
	ProviderOpenRouter: {WebSearch: true, CodeExecution: false},
	ProviderOllama:     {WebSearch: false, CodeExecution: false},
	ProviderLMStudio:   {WebSearch: false, CodeExecution: false},
}

// Supports returns the tool support declaration for the given provider.
// Unknown providers support nothing.
func Supports(id ProviderID) ToolSupport {
	return toolSupport[id]
}

// GateTooling intersects the requested tooling flags with what the provider
// supports, yielding the flags a request builder may actually attempt.
func GateTooling(id ProviderID, requested ToolingOptions) ToolingOptions {
	support := Supports(id)
	return ToolingOptions{
		WebSearch:     requested.WebSearch && support.WebSearch,
		CodeExecution: requested.CodeExecution && support.CodeExecution,
	}
}

// KnownProviders lists every provider id the factory can resolve.
func KnownProviders() []ProviderID {
	return []ProviderID{
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderGemini,
		ProviderMistral,
		ProviderOpenRouter,
		ProviderOllama,
		ProviderLMStudio,
	}
}
