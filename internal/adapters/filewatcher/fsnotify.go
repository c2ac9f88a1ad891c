// Package filewatcher reports snapshot files appearing in the data directory.
// FSNotifyWatcher implements ports.FileWatcher.
package filewatcher

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/adapters/snapshot"
	"github.com/0xcro3dile/navrank-go/internal/domain/ports"
)

// Matcher decides whether a path is worth reporting.
type Matcher func(path string) bool

// FSNotifyWatcher watches one directory with fsnotify.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
	match   Matcher
}

// NewFSNotifyWatcher creates a watcher. A nil matcher reports snapshot files only.
func NewFSNotifyWatcher(match Matcher) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if match == nil {
		match = snapshot.IsSnapshotFile
	}
	return &FSNotifyWatcher{watcher: w, match: match}, nil
}

// Watch emits events for matching files in dir until ctx is done.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	events := make(chan ports.FileEvent, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				op, ok := operation(ev.Op)
				if !ok || !w.match(ev.Name) {
					continue
				}

				log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("snapshot file changed")
				select {
				case events <- ports.FileEvent{Path: ev.Name, Operation: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Str("dir", dir).Msg("watcher error")
			}
		}
	}()

	return events, nil
}

// Stop releases the underlying watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func operation(op fsnotify.Op) (ports.FileOperation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.FileCreated, true
	case op.Has(fsnotify.Write):
		return ports.FileModified, true
	case op.Has(fsnotify.Remove):
		return ports.FileDeleted, true
	default:
		return 0, false
	}
}
