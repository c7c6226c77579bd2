package driven

import "context"

// StoreProvider manages the on-disk lifecycle of vector collections.
// Each collection name maps to exactly one persisted store.
//
// Builds go through a staging handle: the caller populates a staging
// store and then either commits it (making it the persisted collection
// in one atomic step) or discards it. A crash or failure mid-build
// never leaves a visible partial collection.
type StoreProvider interface {
	// Exists reports whether a persisted collection with the given name
	// is present.
	Exists(name string) bool

	// Open opens the persisted collection with the given name.
	Open(name string) (VectorStore, error)

	// OpenStaging opens a fresh staging store for the given collection
	// name, discarding any leftover staging state from a prior aborted
	// build.
	OpenStaging(name string) (VectorStore, error)

	// CommitStaging atomically promotes the staging store to the
	// persisted collection. The staging handle must be closed first.
	CommitStaging(name string) error

	// DiscardStaging removes staging state for the given collection name.
	DiscardStaging(name string) error

	// List returns the names of all persisted collections.
	List() ([]string, error)
}

// InfoStore is an optional extension of VectorStore for per-collection
// metadata such as the source path and embedding model. Callers
// type-assert; stores without metadata support simply skip it.
type InfoStore interface {
	SetInfo(ctx context.Context, key, value string) error
	GetInfo(ctx context.Context, key string) (string, error)
}

// Well-known collection info keys.
const (
	// InfoSourcePath is the absolute path of the source document the
	// collection was built from.
	InfoSourcePath = "source_path"

	// InfoEmbeddingModel is the embedding model the collection was built
	// with.
	InfoEmbeddingModel = "embedding_model"

	// InfoBuiltAt is the build timestamp in RFC 3339 format.
	InfoBuiltAt = "built_at"
)
