package webfetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchConvertsHTMLToMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><body><h1>Title</h1><p>Some <strong>bold</strong> text.</p></body></html>`)
	}))
	defer server.Close()

	output, err := Fetch(context.Background(), Input{URL: server.URL})
	require.NoError(t, err)
	assert.Contains(t, output.Markdown, "# Title")
	assert.Contains(t, output.Markdown, "**bold**")
	assert.Equal(t, server.URL, output.URL)
}

func TestFetchFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><p>final page</p></body></html>`)
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirector.Close()

	output, err := Fetch(context.Background(), Input{URL: redirector.URL})
	require.NoError(t, err)
	assert.Equal(t, target.URL, strings.TrimSuffix(output.URL, "/"))
	assert.Contains(t, output.Markdown, "final page")
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	_, err := Fetch(context.Background(), Input{URL: "   "})
	assert.Error(t, err)
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), Input{URL: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCallMapsArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><p>via call</p></body></html>`)
	}))
	defer server.Close()

	output, err := Call(context.Background(), map[string]any{
		"url":             server.URL,
		"timeout_seconds": float64(5),
	})
	require.NoError(t, err)
	assert.Contains(t, output.Markdown, "via call")
}

func TestDeclarationShape(t *testing.T) {
	decl := Declaration()
	assert.Equal(t, "web_fetch", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, "object", decl.Parameters.Type)
	assert.Contains(t, decl.Parameters.Properties, "url")
	assert.Equal(t, []string{"url"}, decl.Parameters.Required)
}
