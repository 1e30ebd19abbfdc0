package ollama

/*
	OLLAMA NATIVE CHAT API - REQUEST TYPES
*/

// chatRequest represents the request body for Ollama's /api/chat endpoint.
// Stream is a value, not a pointer with omitempty: the native API defaults
// to streaming, so synchronous calls must send an explicit false.
type chatRequest struct {
	Model    string           `json:"model"`
	Messages []chatMessage    `json:"messages"`
	Stream   bool             `json:"stream"`
	Options  *requestOptions  `json:"options,omitempty"`
	Tools    []toolDefinition `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// requestOptions carries sampling parameters. Ollama calls the output token
// limit num_predict.
type requestOptions struct {
	Temperature *float32 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type toolDefinition struct {
	Type     string             `json:"type"` // Always "function"
	Function functionDefinition `json:"function"`
}

type functionDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

/*
	OLLAMA NATIVE CHAT API - RESPONSE TYPES
*/

// chatResponse represents both the synchronous response and individual
// NDJSON stream objects, which share one shape distinguished by Done.
type chatResponse struct {
	Model   string          `json:"model"`
	Message responseMessage `json:"message"`
	Done    bool            `json:"done"`
	Error   string          `json:"error,omitempty"` // Inline errors on stream objects
}

type responseMessage struct {
	Role      string             `json:"role"`
	Content   string             `json:"content"`
	ToolCalls []responseToolCall `json:"tool_calls,omitempty"`
}

type responseToolCall struct {
	Function calledFunction `json:"function"`
}

// calledFunction carries arguments as a decoded JSON object; Ollama never
// serializes them to a string.
type calledFunction struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}
