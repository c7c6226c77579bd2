package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/doc-assist/docassist-cli/internal/chunker"
	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
	"github.com/doc-assist/docassist-cli/internal/logger"
)

// collectionHashLen is the number of hex characters of the source file's
// SHA-256 digest appended to the collection name. Because the key is
// derived from file contents, editing the source PDF yields a new key
// and triggers a fresh build instead of serving stale embeddings.
const collectionHashLen = 12

// LibraryConfig holds the dependencies for a LibraryService.
type LibraryConfig struct {
	Loader   driven.DocumentLoader
	Embedder driven.EmbeddingService
	Provider driven.StoreProvider
	Splitter *chunker.Splitter
}

// LibraryService builds and caches vector collections, one per source
// document. A collection is built at most once per key: concurrent
// GetOrCreate calls for the same key serialize on a per-key lock, and
// the loser of the race reuses the winner's store.
type LibraryService struct {
	loader   driven.DocumentLoader
	embedder driven.EmbeddingService
	provider driven.StoreProvider
	splitter *chunker.Splitter

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	open  map[string]driven.VectorStore
}

var _ driving.Library = (*LibraryService)(nil)

// NewLibraryService creates a library service.
func NewLibraryService(cfg LibraryConfig) (*LibraryService, error) {
	if cfg.Loader == nil {
		return nil, fmt.Errorf("%w: document loader is required", domain.ErrInvalidInput)
	}
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrInvalidInput)
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("%w: store provider is required", domain.ErrInvalidInput)
	}
	if cfg.Splitter == nil {
		cfg.Splitter = chunker.New()
	}

	return &LibraryService{
		loader:   cfg.Loader,
		embedder: cfg.Embedder,
		provider: cfg.Provider,
		splitter: cfg.Splitter,
		locks:    make(map[string]*sync.Mutex),
		open:     make(map[string]driven.VectorStore),
	}, nil
}

// CollectionName derives the collection key for a source file:
// the sanitized base name plus a short digest of the file contents.
func (s *LibraryService) CollectionName(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", domain.ErrIngestion, filePath, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: hashing %s: %v", domain.ErrIngestion, filePath, err)
	}
	digest := hex.EncodeToString(h.Sum(nil))[:collectionHashLen]

	base := filepath.Base(filePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return sanitizeName(base) + "-" + digest, nil
}

// GetOrCreate returns the store for the collection derived from filePath,
// building it first if no persisted state exists. Repeated calls for an
// unchanged file never redo ingestion or embedding work.
func (s *LibraryService) GetOrCreate(ctx context.Context, filePath string) (driven.VectorStore, string, error) {
	name, err := s.CollectionName(filePath)
	if err != nil {
		return nil, "", err
	}

	lock := s.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	store, ok := s.open[name]
	s.mu.Unlock()
	if ok {
		return store, name, nil
	}

	if s.provider.Exists(name) {
		logger.Debug("Opening existing collection %s", name)
		store, err := s.provider.Open(name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: opening collection %s: %v", domain.ErrStoreUnavailable, name, err)
		}
		s.cache(name, store)
		return store, name, nil
	}

	store, err = s.build(ctx, filePath, name)
	if err != nil {
		return nil, "", err
	}
	s.cache(name, store)
	return store, name, nil
}

// build ingests, chunks, and embeds the source file into a staging
// store, then commits it. Any failure discards the staging state so no
// partial collection is ever persisted.
func (s *LibraryService) build(ctx context.Context, filePath, name string) (driven.VectorStore, error) {
	logger.Section("Building collection " + name)

	if err := s.embedder.Pull(ctx); err != nil {
		return nil, fmt.Errorf("%w: pulling embedding model %s: %v",
			domain.ErrEmbeddingBuild, s.embedder.ModelName(), err)
	}

	docs, err := s.loader.Load(ctx, filePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %d pages from %s", len(docs), filePath)

	chunks, err := s.splitter.Split(docs)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s produced no chunks", domain.ErrIngestion, filePath)
	}
	logger.Debug("Split into %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding %d chunks: %v", domain.ErrEmbeddingBuild, len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingBuild, len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	staging, err := s.provider.OpenStaging(name)
	if err != nil {
		return nil, fmt.Errorf("%w: creating staging store for %s: %v", domain.ErrStoreUnavailable, name, err)
	}

	if err := s.populate(ctx, staging, chunks, filePath); err != nil {
		staging.Close()
		s.provider.DiscardStaging(name)
		return nil, err
	}

	if err := staging.Close(); err != nil {
		s.provider.DiscardStaging(name)
		return nil, fmt.Errorf("%w: closing staging store for %s: %v", domain.ErrStoreUnavailable, name, err)
	}
	if err := s.provider.CommitStaging(name); err != nil {
		s.provider.DiscardStaging(name)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	store, err := s.provider.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: reopening collection %s: %v", domain.ErrStoreUnavailable, name, err)
	}
	logger.Info("Built collection %s (%d chunks)", name, len(chunks))
	return store, nil
}

func (s *LibraryService) populate(ctx context.Context, staging driven.VectorStore, chunks []domain.Chunk, filePath string) error {
	if err := staging.Add(ctx, chunks); err != nil {
		return fmt.Errorf("%w: storing %d chunks: %v", domain.ErrStoreUnavailable, len(chunks), err)
	}

	info, ok := staging.(driven.InfoStore)
	if !ok {
		return nil
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}
	pairs := map[string]string{
		driven.InfoSourcePath:     abs,
		driven.InfoEmbeddingModel: s.embedder.ModelName(),
		driven.InfoBuiltAt:        time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range pairs {
		if err := info.SetInfo(ctx, key, value); err != nil {
			return fmt.Errorf("%w: writing collection info: %v", domain.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// List returns the names of all persisted collections.
func (s *LibraryService) List() ([]string, error) {
	return s.provider.List()
}

// Close releases all cached store handles.
func (s *LibraryService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for name, store := range s.open {
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing collection %s: %w", name, err)
		}
		delete(s.open, name)
	}
	return firstErr
}

func (s *LibraryService) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

func (s *LibraryService) cache(name string, store driven.VectorStore) {
	s.mu.Lock()
	s.open[name] = store
	s.mu.Unlock()
}

// sanitizeName lowercases the base name and replaces anything outside
// [a-z0-9-] so collection names are safe as file names.
func sanitizeName(base string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case unicode.IsLower(r) && r <= unicode.MaxASCII, unicode.IsDigit(r) && r <= unicode.MaxASCII:
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "collection"
	}
	return name
}
