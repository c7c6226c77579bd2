package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
	"github.com/doc-assist/docassist-cli/internal/logger"
)

// DefaultTopK is the per-query similarity search depth.
const DefaultTopK = 4

// defaultMultiQueryPrompt is the compiled-in query expansion prompt,
// used when no PromptStore is configured.
const defaultMultiQueryPrompt = `You are an AI language model assistant. Your task is to generate five
different versions of the given user question to retrieve relevant documents from
a vector database. By generating multiple perspectives on the user question, your
goal is to help the user overcome some of the limitations of the distance-based
similarity search. Provide these alternative questions separated by newlines.
Original question: %s`

// RetrieverConfig holds the dependencies for a MultiQueryRetriever.
type RetrieverConfig struct {
	LLM      driven.LLMService
	Embedder driven.EmbeddingService
	Store    driven.VectorStore

	// Prompts is optional; when nil the compiled-in expansion prompt
	// is used.
	Prompts driven.PromptStore

	// TopK is the per-query search depth. Zero means DefaultTopK.
	TopK int
}

// MultiQueryRetriever expands a question into alternative phrasings,
// searches the vector store once per phrasing (plus the original), and
// merges the results with first-seen deduplication.
type MultiQueryRetriever struct {
	llm      driven.LLMService
	embedder driven.EmbeddingService
	store    driven.VectorStore
	prompts  driven.PromptStore
	topK     int
}

// NewMultiQueryRetriever creates a retriever.
func NewMultiQueryRetriever(cfg RetrieverConfig) (*MultiQueryRetriever, error) {
	if cfg.LLM == nil {
		return nil, fmt.Errorf("%w: LLM service is required", domain.ErrInvalidInput)
	}
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrInvalidInput)
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("%w: vector store is required", domain.ErrInvalidInput)
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}

	return &MultiQueryRetriever{
		llm:      cfg.LLM,
		embedder: cfg.Embedder,
		store:    cfg.Store,
		prompts:  cfg.Prompts,
		topK:     cfg.TopK,
	}, nil
}

// Retrieve returns the deduplicated context chunks for a question.
// Results keep first-seen order across queries: the original question's
// hits come first, then each variant's hits in turn.
func (r *MultiQueryRetriever) Retrieve(ctx context.Context, question string) ([]domain.Chunk, error) {
	variants, err := r.expand(ctx, question)
	if err != nil {
		return nil, err
	}
	logger.Debug("Expanded question into %d variants", len(variants))

	queries := append([]string{question}, variants...)

	var merged []domain.Chunk
	seen := make(map[string]struct{})
	for _, query := range queries {
		embedding, err := r.embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("%w: embedding query: %v", domain.ErrRetriever, err)
		}
		results, err := r.store.Search(ctx, embedding, r.topK)
		if err != nil {
			return nil, fmt.Errorf("%w: similarity search: %v", domain.ErrRetriever, err)
		}
		for _, result := range results {
			if _, ok := seen[result.Chunk.ID]; ok {
				continue
			}
			seen[result.Chunk.ID] = struct{}{}
			merged = append(merged, result.Chunk)
		}
	}
	logger.Debug("Retrieved %d unique chunks across %d queries", len(merged), len(queries))

	return merged, nil
}

// expand asks the LLM for alternative phrasings of the question, one
// per line. Fewer than five lines is fine; the retriever proceeds with
// whatever came back.
func (r *MultiQueryRetriever) expand(ctx context.Context, question string) ([]string, error) {
	tmpl := defaultMultiQueryPrompt
	if r.prompts != nil {
		loaded, err := r.prompts.Load(driven.PromptMultiQuery)
		if err == nil && loaded != "" {
			tmpl = loaded
		}
	}

	output, err := r.llm.Generate(ctx, fmt.Sprintf(tmpl, question), driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: query expansion: %v", domain.ErrRetriever, err)
	}

	return parseVariants(output), nil
}

// parseVariants splits model output into one variant per line, dropping
// blank lines and any list numbering or bullet the model prepended.
func parseVariants(output string) []string {
	var variants []string
	for _, line := range strings.Split(output, "\n") {
		line = stripListMarker(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		variants = append(variants, line)
	}
	return variants
}

// stripListMarker removes a leading "1.", "2)", "-", or "*" marker.
func stripListMarker(line string) string {
	trimmed := strings.TrimLeft(line, "-* ")
	i := 0
	for i < len(trimmed) && unicode.IsDigit(rune(trimmed[i])) {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSpace(trimmed)
}
