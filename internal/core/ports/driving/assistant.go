package driving

import (
	"context"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
)

// Assistant answers questions about a single ingested document.
// One Assistant is bound to one collection (one source PDF).
type Assistant interface {
	// Ask runs the full pipeline for one question: multi-query retrieval
	// followed by grounded generation. Every invocation is a fresh
	// language-model call; answers are never cached.
	Ask(ctx context.Context, question string) (domain.Answer, error)

	// Retrieve returns the deduplicated context chunks for a question
	// without generating an answer.
	Retrieve(ctx context.Context, question string) ([]domain.Chunk, error)

	// Collection returns the collection name this assistant is bound to.
	Collection() string
}
