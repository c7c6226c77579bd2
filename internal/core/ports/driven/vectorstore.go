package driven

import (
	"context"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
)

// VectorStore persists chunks with their embeddings and supports
// nearest-neighbour search. A store holds exactly one collection.
//
// Stores perform a brute-force cosine scan; there is no index structure.
type VectorStore interface {
	// Add inserts chunks with their embeddings into the collection.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search finds the k most similar chunks to the query embedding,
	// ordered by descending cosine similarity.
	Search(ctx context.Context, embedding []float32, k int) ([]domain.SearchResult, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
