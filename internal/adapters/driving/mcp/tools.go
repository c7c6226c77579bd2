package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the document"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Collection string `json:"collection"`
	ChunksUsed int    `json:"chunks_used"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Question string `json:"question" jsonschema:"the question to retrieve context for"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Page    int    `json:"page,omitempty"`
	Content string `json:"content"`
}

// CollectionsOutput is the output schema for the collections tool.
type CollectionsOutput struct {
	Collections []string `json:"collections"`
	Count       int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question grounded only in the ingested document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Retrieve the document chunks most relevant to a question, without generating an answer",
	}, s.handleSearch)

	if s.ports.Library != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "collections",
			Description: "List the persisted vector collections on this machine",
		}, s.handleCollections)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Question:   answer.Question,
		Answer:     answer.Text,
		Collection: s.ports.Assistant.Collection(),
		ChunksUsed: len(answer.Context),
	}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	chunks, err := s.ports.Assistant.Retrieve(ctx, input.Question)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Chunks: make([]ChunkOutput, len(chunks)),
		Count:  len(chunks),
	}
	for i := range chunks {
		output.Chunks[i] = ChunkOutput{
			ID:      chunks[i].ID,
			Source:  chunks[i].Source,
			Page:    chunks[i].Page,
			Content: chunks[i].Content,
		}
	}

	return nil, output, nil
}

// handleCollections handles the collections tool invocation.
func (s *Server) handleCollections(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CollectionsOutput, error) {
	names, err := s.ports.Library.List()
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, CollectionsOutput{Collections: names, Count: len(names)}, nil
}
