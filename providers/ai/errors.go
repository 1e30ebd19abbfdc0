package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seralba/llmbridge/internal/utils"
)

// APIError is a hard vendor failure: a non-2xx response that did not match
// the feature-rejection heuristic, or a second failure after the downgrade
// retry. The body is truncated defensively at construction time.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Body)
}

// NewAPIError builds an APIError with the body truncated to the default
// preview length.
func NewAPIError(provider string, statusCode int, body string) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Body:       utils.TruncateStringDefault(strings.TrimSpace(body)),
	}
}

// ConfigError is a configuration failure detected before any network call,
// typically a missing credential. It is never retried.
type ConfigError struct {
	Provider ProviderID
	Missing  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing required configuration: %s", e.Provider, e.Missing)
}

// featureRejectionTokens is the fixed keyword list for the soft-error
// heuristic. The match is deliberately an approximate case-insensitive
// substring check; tightening it would silently change retry behavior, so
// the list is preserved as-is.
var featureRejectionTokens = []string{
	"tool",
	"unsupported",
	"web_search",
	"search",
	"code_execution",
	"cache_control",
	"caching",
}

// IsFeatureRejection reports whether an HTTP failure looks like the vendor
// rejecting an optional capability (tools, web search, code execution,
// prompt caching) rather than the request itself. Only 4xx statuses qualify.
func IsFeatureRejection(statusCode int, body string) bool {
	if statusCode < 400 || statusCode >= 500 {
		return false
	}

	lower := strings.ToLower(body)
	for _, token := range featureRejectionTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// ShouldDowngrade reports whether err is a soft feature rejection eligible
// for the one-shot downgrade-and-retry.
func ShouldDowngrade(err error) bool {
	var statusErr *utils.HTTPStatusError
	return errors.As(err, &statusErr) && IsFeatureRejection(statusErr.StatusCode, statusErr.Body)
}

// WrapVendorError converts a transport-layer error into the uniform
// *APIError shape when it carries an HTTP status, and returns it unchanged
// otherwise (context cancellation, network failures, decode errors).
func WrapVendorError(provider string, err error) error {
	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) {
		return NewAPIError(provider, statusErr.StatusCode, statusErr.Body)
	}
	return err
}
