package binder

import (
	"context"

	"ezcfg/internal/diagnostic"
	"ezcfg/internal/watch"
)

// ReloadFunc receives the outcome of a reload triggered by a file change.
type ReloadFunc func(*diagnostic.Diagnostics, error)

// Watch reloads target from a path relative to the host data directory
// each time the file content changes, without persisting. The caller must
// not run other passes on target while the watch is active.
func (b *Binder) Watch(ctx context.Context, target any, rel string, onReload ReloadFunc) (*watch.Watcher, error) {
	file := b.Resolve(rel)

	if _, err := b.open(file); err != nil {
		return nil, err
	}

	w, err := watch.New(b.fs, file, b.host.Logger(), func() {
		diags, err := b.LoadFile(target, file, false)
		if onReload != nil {
			onReload(diags, err)
		}
	})
	if err != nil {
		return nil, err
	}

	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return nil, err
	}

	return w, nil
}
