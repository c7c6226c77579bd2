package domain

import "errors"

// Domain errors represent pipeline stage failures.
// Every stage surfaces one of these to its caller rather than returning a
// degraded result silently; only the user-facing surface renders them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or missing input, including a
	// required capability (retriever, language model) being unset at
	// construction time.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIngestion indicates the source PDF is missing, unreadable, or
	// produced zero pages of text.
	ErrIngestion = errors.New("ingestion failed")

	// ErrEmbeddingBuild indicates an embedding or model-pull failure while
	// building a collection. No partial collection is persisted.
	ErrEmbeddingBuild = errors.New("embedding build failed")

	// ErrRetriever indicates a language-model or vector-search failure
	// during query expansion or similarity search. Not retried internally.
	ErrRetriever = errors.New("retrieval failed")

	// ErrGeneration indicates a language-model failure during answer
	// synthesis.
	ErrGeneration = errors.New("generation failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrStoreUnavailable indicates the vector store is not configured.
	ErrStoreUnavailable = errors.New("vector store unavailable")
)
