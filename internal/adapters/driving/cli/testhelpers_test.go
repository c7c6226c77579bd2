package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	configfile "github.com/doc-assist/docassist-cli/internal/adapters/driven/config/file"
	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// testStore returns its fixed chunks for every search.
type testStore struct {
	chunks []domain.Chunk
}

func (s *testStore) Add(_ context.Context, chunks []domain.Chunk) error {
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *testStore) Search(_ context.Context, _ []float32, k int) ([]domain.SearchResult, error) {
	results := make([]domain.SearchResult, 0, len(s.chunks))
	for i, chunk := range s.chunks {
		if k > 0 && i >= k {
			break
		}
		results = append(results, domain.SearchResult{Chunk: chunk, Score: 1})
	}
	return results, nil
}

func (s *testStore) Count(_ context.Context) (int, error) { return len(s.chunks), nil }
func (s *testStore) Close() error                         { return nil }

// testLibrary hands out one fixed store.
type testLibrary struct {
	store driven.VectorStore
	name  string
	names []string
	err   error
}

func (l *testLibrary) GetOrCreate(_ context.Context, _ string) (driven.VectorStore, string, error) {
	if l.err != nil {
		return nil, "", l.err
	}
	return l.store, l.name, nil
}

func (l *testLibrary) List() ([]string, error) { return l.names, l.err }

func (l *testLibrary) CollectionName(_ string) (string, error) {
	return l.name, l.err
}

func (l *testLibrary) Close() error { return nil }

// testEmbedder returns a fixed vector for any text.
type testEmbedder struct{}

func (testEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (testEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

func (testEmbedder) Dimensions() int              { return 2 }
func (testEmbedder) ModelName() string            { return "test-embed" }
func (testEmbedder) Pull(_ context.Context) error { return nil }
func (testEmbedder) Ping(_ context.Context) error { return nil }
func (testEmbedder) Close() error                 { return nil }

// testLLM answers expansion prompts with one variant and everything
// else with a fixed answer.
type testLLM struct{}

func (testLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if strings.Contains(prompt, "alternative questions") {
		return "What is the deductible amount?", nil
	}
	return "The deductible is $500 per claim.", nil
}

func (testLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return "", nil
}

func (testLLM) ModelName() string            { return "test-llm" }
func (testLLM) Pull(_ context.Context) error { return nil }
func (testLLM) Ping(_ context.Context) error { return nil }
func (testLLM) Close() error                 { return nil }

// testPrompts serves the compiled-in defaults for the two known prompts.
type testPrompts struct{}

func (testPrompts) Load(name string) (string, error) {
	switch name {
	case driven.PromptMultiQuery:
		return "Provide alternative questions separated by newlines.\nOriginal question: %s", nil
	case driven.PromptAnswer:
		return "Answer the question based ONLY on the following context:\n%s\nQuestion: %s", nil
	}
	return "", nil
}

func (testPrompts) Reload() {}

// setupTestServices injects stub services for command execution and
// returns a cleanup that restores the uninitialised state.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	chunks := []domain.Chunk{
		{ID: "c1", Source: "policy.pdf", Page: 1, Content: "The deductible is $500 per claim."},
		{ID: "c2", Source: "policy.pdf", Page: 2, Content: "Claims must be filed within 30 days."},
	}

	configStore = store
	promptStore = testPrompts{}
	embedderSvc = testEmbedder{}
	llmSvc = testLLM{}
	library = &testLibrary{
		store: &testStore{chunks: chunks},
		name:  "policy-abc123def456",
		names: []string{"policy-abc123def456"},
	}

	return func() {
		configStore = nil
		promptStore = nil
		embedderSvc = nil
		llmSvc = nil
		library = nil
	}
}
