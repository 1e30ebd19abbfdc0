// Package webfetch provides a ready-made web_fetch function tool: it fetches
// a page over HTTP/HTTPS and converts the HTML to Markdown for model
// consumption. URL normalization, redirect limits, response-size capping and
// context-aware cancellation are handled internally.
package webfetch
