package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// stagingSuffix marks an in-progress build. Staging files never match the
// *.db glob, so half-built collections are invisible to List and Exists.
const stagingSuffix = ".building"

// Provider maps collection names to SQLite store files under a single
// data directory. One file per collection, named <collection>.db.
type Provider struct {
	dir string
}

var _ driven.StoreProvider = (*Provider)(nil)

// NewProvider creates a provider rooted at dir. The directory is created
// lazily on first build.
func NewProvider(dir string) *Provider {
	return &Provider{dir: dir}
}

// Dir returns the data directory this provider manages.
func (p *Provider) Dir() string {
	return p.dir
}

// Path returns the store file path for a collection name.
func (p *Provider) Path(name string) string {
	return filepath.Join(p.dir, name+".db")
}

func (p *Provider) stagingPath(name string) string {
	return p.Path(name) + stagingSuffix
}

// Exists reports whether a persisted collection with the given name is
// present.
func (p *Provider) Exists(name string) bool {
	return Exists(p.Path(name))
}

// Open opens the persisted collection with the given name.
func (p *Provider) Open(name string) (driven.VectorStore, error) {
	return Open(p.Path(name))
}

// OpenStaging opens a fresh staging store for the given collection name.
// Leftover staging state from an aborted build is removed first.
func (p *Provider) OpenStaging(name string) (driven.VectorStore, error) {
	if err := p.DiscardStaging(name); err != nil {
		return nil, err
	}
	return Open(p.stagingPath(name))
}

// CommitStaging promotes the staging file to the persisted collection in
// a single rename.
func (p *Provider) CommitStaging(name string) error {
	staging := p.stagingPath(name)
	if err := os.Rename(staging, p.Path(name)); err != nil {
		return fmt.Errorf("commit collection %s: %w", name, err)
	}
	// A cleanly closed store leaves no WAL side files, but remove any
	// strays so they don't orphan under the staging name.
	os.Remove(staging + "-wal")
	os.Remove(staging + "-shm")
	return nil
}

// DiscardStaging removes staging state for the given collection name,
// including SQLite side files.
func (p *Provider) DiscardStaging(name string) error {
	staging := p.stagingPath(name)
	for _, path := range []string{staging, staging + "-wal", staging + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("discard staging for %s: %w", name, err)
		}
	}
	return nil
}

// List returns the names of all persisted collections, sorted.
func (p *Provider) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list collections: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".db"))
	}
	sort.Strings(names)
	return names, nil
}
