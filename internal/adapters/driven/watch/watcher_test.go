package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal after write")
	}
}

func TestFileWatcherDetectsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, "doc.pdf.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal after rename over the file")
	}
}

func TestFileWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("unexpected change signal for a sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "doc.pdf"))
	assert.Error(t, err)
}
