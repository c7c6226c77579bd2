// Package memory provides an in-memory vector store for tests and
// ephemeral collections. Search is a brute-force cosine scan.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store holds chunks and embeddings in memory.
type Store struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Add inserts chunks with their embeddings.
func (s *Store) Add(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// Search finds the k most similar chunks to the query embedding.
func (s *Store) Search(_ context.Context, embedding []float32, k int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		k = 4
	}

	results := make([]domain.SearchResult, 0, len(s.chunks))
	for i := range s.chunks {
		results = append(results, domain.SearchResult{
			Chunk: s.chunks[i],
			Score: cosine(embedding, s.chunks[i].Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
