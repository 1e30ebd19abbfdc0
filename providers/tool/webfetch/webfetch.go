package webfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/seralba/llmbridge/internal/jsonschema"
	"github.com/seralba/llmbridge/internal/utils"
	"github.com/seralba/llmbridge/providers/ai"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value.
	DefaultUserAgent = "llmbridge-webfetch/1.0"
	// MaxBodySize caps the response body at 10MB.
	MaxBodySize = 10 * 1024 * 1024
	// maxRedirects caps redirect chains.
	maxRedirects = 10
)

// Input is the argument payload for the web_fetch tool.
type Input struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	UserAgent      string `json:"user_agent,omitempty"`
}

// Output is the result payload: the final URL after redirects and the page
// content converted to Markdown.
type Output struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// Declaration returns the function-tool declaration to advertise web_fetch
// to a provider. Execute the returned calls with [Fetch].
func Declaration() ai.FunctionTool {
	schema := jsonschema.Object(map[string]*jsonschema.Schema{
		"url": jsonschema.String("Address of the page to fetch. Partial URLs are normalized by prepending https://."),
		"timeout_seconds": {
			Type:        "integer",
			Description: "Optional request timeout in seconds.",
		},
	}, "url")

	return ai.FunctionTool{
		Name:        "web_fetch",
		Description: "Fetches a web page and converts its HTML content to Markdown. Follows redirects and returns the final URL with the converted content.",
		Parameters:  schema,
	}
}

// Call adapts [Fetch] to a tool call's loosely-typed argument map.
func Call(ctx context.Context, arguments map[string]any) (Output, error) {
	input := Input{}
	if url, ok := arguments["url"].(string); ok {
		input.URL = url
	}
	if seconds, ok := arguments["timeout_seconds"].(float64); ok {
		input.TimeoutSeconds = int(seconds)
	}
	return Fetch(ctx, input)
}

// Fetch retrieves the page at input.URL and returns its content as Markdown.
// Partial URLs get an https:// prefix, up to ten redirects are followed and
// the body is capped at [MaxBodySize]. The read runs in a goroutine so
// cancellation is honored even while a slow server trickles the body.
func Fetch(ctx context.Context, input Input) (Output, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return Output{}, fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	timeout := DefaultTimeout
	if input.TimeoutSeconds > 0 {
		timeout = time.Duration(input.TimeoutSeconds) * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Output{}, fmt.Errorf("failed to create request: %w", err)
	}

	userAgent := DefaultUserAgent
	if input.UserAgent != "" {
		userAgent = input.UserAgent
	}
	request.Header.Set("User-Agent", userAgent)

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	}

	response, err := client.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return Output{}, fmt.Errorf("request timeout or canceled: %w", err)
		}
		return Output{}, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(response.Body)

	if response.StatusCode != http.StatusOK {
		return Output{}, fmt.Errorf("unexpected status code: %d %s", response.StatusCode, response.Status)
	}

	type readResult struct {
		data []byte
		err  error
	}
	readChan := make(chan readResult, 1)
	go func() {
		data, readErr := io.ReadAll(io.LimitReader(response.Body, MaxBodySize))
		readChan <- readResult{data: data, err: readErr}
	}()

	var htmlBytes []byte
	select {
	case <-ctx.Done():
		return Output{}, fmt.Errorf("timeout while reading response body: %w", ctx.Err())
	case result := <-readChan:
		if result.err != nil {
			return Output{}, fmt.Errorf("failed to read response body: %w", result.err)
		}
		htmlBytes = result.data
	}

	if len(htmlBytes) == MaxBodySize {
		return Output{}, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return Output{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return Output{
		URL:      response.Request.URL.String(),
		Markdown: strings.TrimSpace(markdown),
	}, nil
}
