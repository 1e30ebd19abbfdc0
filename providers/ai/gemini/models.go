package gemini

/*
	GEMINI API - REQUEST TYPES
*/

// generateContentRequest represents the request body for Gemini's
// generateContent and streamGenerateContent endpoints.
type generateContentRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []geminiToolGroup `json:"tools,omitempty"`
}

// geminiContent is one turn. Gemini names the assistant role "model"; the
// systemInstruction content carries no role at all.
type geminiContent struct {
	Role  string       `json:"role,omitempty"` // "user" or "model"
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a union: exactly one field is set.
type geminiPart struct {
	Text         string              `json:"text,omitempty"`
	FunctionCall *geminiFunctionCall `json:"functionCall,omitempty"`
}

// geminiFunctionCall carries tool-call arguments as a decoded JSON object,
// not a string.
type geminiFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

type generationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// geminiToolGroup declares tools. Function declarations and built-in tools
// are separate groups; built-ins are enabled by the presence of an empty
// object.
type geminiToolGroup struct {
	FunctionDeclarations []functionDeclaration `json:"functionDeclarations,omitempty"`
	GoogleSearch         *struct{}             `json:"googleSearch,omitempty"`
	CodeExecution        *struct{}             `json:"codeExecution,omitempty"`
}

type functionDeclaration struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Parameters  *geminiSchema `json:"parameters,omitempty"`
}

// geminiSchema is Gemini's typed schema dialect: the same structure as JSON
// Schema but with uppercase type names and a restricted field set.
type geminiSchema struct {
	Type        string                   `json:"type,omitempty"` // "OBJECT", "STRING", "INTEGER", ...
	Description string                   `json:"description,omitempty"`
	Properties  map[string]*geminiSchema `json:"properties,omitempty"`
	Items       *geminiSchema            `json:"items,omitempty"`
	Required    []string                 `json:"required,omitempty"`
	Enum        []any                    `json:"enum,omitempty"`
}

/*
	GEMINI API - RESPONSE TYPES
*/

// generateContentResponse represents both the full response and individual
// streaming chunks, which share the same candidate shape.
type generateContentResponse struct {
	Candidates []candidate  `json:"candidates"`
	Error      *geminiError `json:"error,omitempty"` // Inline errors on streaming chunks
}

type candidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"` // "STOP", "MAX_TOKENS", ...
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
