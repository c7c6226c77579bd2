// Package mcp provides a Model Context Protocol server adapter for
// docassist. It lets MCP-compatible AI assistants ask grounded questions
// about an ingested document and inspect its retrieved context.
package mcp

import "errors"

// ErrMissingAssistant is returned when no assistant is provided.
var ErrMissingAssistant = errors.New("mcp: assistant is required")
