// Package watch provides a filesystem watcher for source documents.
// The interactive shell uses it to detect a changed source PDF and
// trigger a rebuild instead of silently serving stale embeddings.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/doc-assist/docassist-cli/internal/logger"
)

// FileWatcher watches a single file for writes, renames, and removals.
type FileWatcher struct {
	fw      *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

// NewFileWatcher watches the file at path. The containing directory is
// watched rather than the file itself so editors that replace the file
// (write to temp, rename over) are still observed.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &FileWatcher{
		fw:      fw,
		path:    abs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()

	return w, nil
}

// Changes returns a channel that receives a signal when the watched file
// is written, renamed, or removed. Rapid event bursts are coalesced.
func (w *FileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching and releases resources.
func (w *FileWatcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *FileWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("Source file event: %s", event)
			select {
			case w.changes <- struct{}{}:
			default:
				// A change signal is already pending
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
