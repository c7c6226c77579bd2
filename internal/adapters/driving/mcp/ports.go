package mcp

import (
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers questions about the bound document.
	Assistant driving.Assistant

	// Library lists persisted collections. Optional.
	Library driving.Library
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
