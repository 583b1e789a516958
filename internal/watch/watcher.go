// Package watch reruns a handler whenever the content of a file changes.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Handler is called after the watched file changed.
type Handler func()

// Watcher watches one file through its directory, so editors that replace
// the file instead of writing it are noticed too.
type Watcher struct {
	fs       afero.Fs
	path     string
	watcher  *fsnotify.Watcher
	handler  Handler
	log      *logrus.Entry
	lastHash string
}

// New creates a watcher for path. Content is read through fs for change
// detection; events always come from the OS.
func New(fs afero.Fs, path string, log *logrus.Entry, handler Handler) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Watcher{
		fs:      fs,
		path:    filepath.Clean(path),
		watcher: fsWatcher,
		handler: handler,
		log:     log.WithField("file", path),
	}, nil
}

// Start begins watching. The loop ends when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if _, err := w.HasChanged(); err != nil {
		return err
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	w.log.Info("started watching configuration file")

	go w.loop(ctx)

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) == w.path && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.handleChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("file watcher error")
		}
	}
}

func (w *Watcher) handleChange() {
	changed, err := w.HasChanged()
	if err != nil {
		w.log.WithError(err).Warn("failed to check configuration file")
		return
	}

	if !changed {
		return
	}

	w.log.Info("configuration file changed, reloading")

	if w.handler != nil {
		w.handler()
	}
}

// HasChanged reports whether the file content differs from the last call.
// The first call only records the content.
func (w *Watcher) HasChanged() (bool, error) {
	data, err := afero.ReadFile(w.fs, w.path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if w.lastHash == "" {
		w.lastHash = hash
		return false, nil
	}

	changed := hash != w.lastHash
	w.lastHash = hash

	return changed, nil
}
