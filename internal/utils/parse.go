package utils

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// ParseToolArguments normalizes a vendor tool-call argument payload into a
// plain map. Vendors disagree on the wire representation: OpenAI-style APIs
// return a JSON-encoded string, Gemini and Ollama return a JSON object.
//
// String payloads are JSON-parsed, with a jsonrepair pass when the model
// emitted slightly malformed JSON (unquoted keys, single quotes, trailing
// commas). Any payload that still cannot be parsed yields an empty map:
// a bad argument payload must never fail the whole completion.
func ParseToolArguments(raw any) map[string]any {
	switch value := raw.(type) {
	case nil:
		return map[string]any{}

	case map[string]any:
		return value

	case string:
		return parseArgumentString(value)

	case json.RawMessage:
		return parseArgumentString(string(value))

	case []byte:
		return parseArgumentString(string(value))

	default:
		return map[string]any{}
	}
}

func parseArgumentString(content string) map[string]any {
	if content == "" {
		return map[string]any{}
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(content), &args); err == nil && args != nil {
		return args
	}

	// Second chance: repair near-JSON output before giving up.
	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr == nil {
		args = nil
		if err := json.Unmarshal([]byte(repaired), &args); err == nil && args != nil {
			return args
		}
	}

	return map[string]any{}
}
