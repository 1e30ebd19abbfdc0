// Package utils provides shared low-level helpers used throughout the
// llmbridge internals. It covers HTTP request helpers for synchronous and
// streaming communication with AI provider APIs, the two stream framings
// (Server-Sent Events and newline-delimited JSON), tool-call argument
// normalization, and small string/pointer utilities.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [DoPostStream] together with [SSEScanner] or [LineScanner] for streaming,
// and [ParseToolArguments] for tool-call argument payloads.
package utils
