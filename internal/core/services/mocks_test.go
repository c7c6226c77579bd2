package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// stubLoader returns a fixed set of documents, or an error.
type stubLoader struct {
	docs  []domain.Document
	err   error
	calls atomic.Int64
}

func (l *stubLoader) Load(_ context.Context, _ string) ([]domain.Document, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return l.docs, nil
}

func (l *stubLoader) SupportedExtensions() []string { return []string{".pdf"} }

// stubEmbedder maps text to a 2-dimensional vector: anything mentioning
// "deductible" lands on one axis, everything else on the other. Call
// counts are recorded for idempotence assertions.
type stubEmbedder struct {
	embedCalls atomic.Int64
	batchCalls atomic.Int64
	pullCalls  atomic.Int64
	embedErr   error
	batchErr   error
	pullErr    error
}

func embedText(text string) []float32 {
	if strings.Contains(strings.ToLower(text), "deductible") {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.embedCalls.Add(1)
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	return embedText(text), nil
}

func (e *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls.Add(1)
	if e.batchErr != nil {
		return nil, e.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = embedText(text)
	}
	return vectors, nil
}

func (e *stubEmbedder) Dimensions() int   { return 2 }
func (e *stubEmbedder) ModelName() string { return "stub-embed" }
func (e *stubEmbedder) Close() error      { return nil }

func (e *stubEmbedder) Pull(_ context.Context) error {
	e.pullCalls.Add(1)
	return e.pullErr
}

func (e *stubEmbedder) Ping(_ context.Context) error { return nil }

// stubLLM routes every Generate call through generateFn.
type stubLLM struct {
	mu         sync.Mutex
	prompts    []string
	generateFn func(prompt string) (string, error)
}

func (l *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	l.mu.Lock()
	l.prompts = append(l.prompts, prompt)
	l.mu.Unlock()
	return l.generateFn(prompt)
}

func (l *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return "", nil
}

func (l *stubLLM) ModelName() string            { return "stub-llm" }
func (l *stubLLM) Pull(_ context.Context) error { return nil }
func (l *stubLLM) Ping(_ context.Context) error { return nil }
func (l *stubLLM) Close() error                 { return nil }

func (l *stubLLM) promptAt(i int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i >= len(l.prompts) {
		return ""
	}
	return l.prompts[i]
}

// stubStore is an in-memory vector store with a cosine scan and
// collection info support.
type stubStore struct {
	mu        sync.Mutex
	chunks    []domain.Chunk
	info      map[string]string
	searchErr error
	addErr    error
}

func newStubStore() *stubStore {
	return &stubStore{info: make(map[string]string)}
}

func (s *stubStore) Add(_ context.Context, chunks []domain.Chunk) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.mu.Lock()
	s.chunks = append(s.chunks, chunks...)
	s.mu.Unlock()
	return nil
}

func (s *stubStore) Search(_ context.Context, embedding []float32, k int) ([]domain.SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.SearchResult, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		results = append(results, domain.SearchResult{
			Chunk: chunk,
			Score: cosine(embedding, chunk.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *stubStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks), nil
}

func (s *stubStore) Close() error { return nil }

func (s *stubStore) SetInfo(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.info[key] = value
	s.mu.Unlock()
	return nil
}

func (s *stubStore) GetInfo(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.info[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// stubProvider keeps collections in memory with real staging semantics.
type stubProvider struct {
	mu      sync.Mutex
	staging map[string]*stubStore
	stores  map[string]*stubStore
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		staging: make(map[string]*stubStore),
		stores:  make(map[string]*stubStore),
	}
}

func (p *stubProvider) Exists(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.stores[name]
	return ok
}

func (p *stubProvider) Open(name string) (driven.VectorStore, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.stores[name]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}
	return store, nil
}

func (p *stubProvider) OpenStaging(name string) (driven.VectorStore, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	store := newStubStore()
	p.staging[name] = store
	return store, nil
}

func (p *stubProvider) CommitStaging(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.staging[name]
	if !ok {
		return fmt.Errorf("no staging store for %s", name)
	}
	delete(p.staging, name)
	p.stores[name] = store
	return nil
}

func (p *stubProvider) DiscardStaging(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.staging, name)
	return nil
}

func (p *stubProvider) List() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.stores))
	for name := range p.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var (
	_ driven.DocumentLoader   = (*stubLoader)(nil)
	_ driven.EmbeddingService = (*stubEmbedder)(nil)
	_ driven.LLMService       = (*stubLLM)(nil)
	_ driven.VectorStore      = (*stubStore)(nil)
	_ driven.InfoStore        = (*stubStore)(nil)
	_ driven.StoreProvider    = (*stubProvider)(nil)
)
