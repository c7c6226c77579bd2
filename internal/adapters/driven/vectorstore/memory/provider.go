package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// Provider keeps collections in process memory. Nothing survives the
// process; every run rebuilds from the source document. Staging mirrors
// the persistent provider so build failures never expose a partial
// collection.
type Provider struct {
	mu      sync.Mutex
	staging map[string]*Store
	stores  map[string]*Store
}

var _ driven.StoreProvider = (*Provider)(nil)

// NewProvider creates an empty in-memory provider.
func NewProvider() *Provider {
	return &Provider{
		staging: make(map[string]*Store),
		stores:  make(map[string]*Store),
	}
}

// Exists reports whether a collection with the given name is present.
func (p *Provider) Exists(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.stores[name]
	return ok
}

// Open opens the collection with the given name.
func (p *Provider) Open(name string) (driven.VectorStore, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.stores[name]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}
	return store, nil
}

// OpenStaging opens a fresh staging store for the given collection name.
func (p *Provider) OpenStaging(name string) (driven.VectorStore, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	store := New()
	p.staging[name] = store
	return store, nil
}

// CommitStaging promotes the staging store to the visible collection.
func (p *Provider) CommitStaging(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.staging[name]
	if !ok {
		return fmt.Errorf("no staging store for collection %s", name)
	}
	delete(p.staging, name)
	p.stores[name] = store
	return nil
}

// DiscardStaging removes staging state for the given collection name.
func (p *Provider) DiscardStaging(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.staging, name)
	return nil
}

// List returns the names of all collections, sorted.
func (p *Provider) List() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.stores))
	for name := range p.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
