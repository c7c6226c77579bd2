package driving

import (
	"context"

	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// Library manages the lifecycle of persisted vector collections.
//
// A collection is built at most once per collection key: if persisted state
// exists it is reopened without re-ingestion or re-embedding.
type Library interface {
	// GetOrCreate returns a handle for the collection derived from the
	// given source file, building it first if no persisted state exists.
	GetOrCreate(ctx context.Context, filePath string) (driven.VectorStore, string, error)

	// List returns the names of all persisted collections.
	List() ([]string, error)

	// CollectionName returns the collection key that GetOrCreate would use
	// for the given source file without building anything.
	CollectionName(filePath string) (string, error)

	// Close releases all cached store handles.
	Close() error
}
