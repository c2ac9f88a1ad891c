// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not concrete implementations.
// Adapters implement these interfaces.
package ports

import (
	"context"
	"time"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// SignalProvider supplies per-fund return and volatility signals.
// The seeded synthetic provider is a placeholder for a real analytics feed.
type SignalProvider interface {
	// Signals returns one entry per fund, in the same order.
	Signals(ctx context.Context, funds []entities.FundRecord) ([]entities.Signals, error)
}

// NAVSource fetches the latest published NAV file.
type NAVSource interface {
	Fetch(ctx context.Context) (*entities.Snapshot, error)
}

// SnapshotStore persists raw NAV snapshots as files.
type SnapshotStore interface {
	// Save writes the snapshot and returns where it was written.
	Save(ctx context.Context, snap *entities.Snapshot) (string, error)

	// Load reads a snapshot from the given path.
	Load(ctx context.Context, path string) (*entities.Snapshot, error)

	// Latest returns the most recent snapshot by date.
	Latest(ctx context.Context) (*entities.Snapshot, error)
}

// FundStore holds the current, fully enriched fund universe.
type FundStore interface {
	// Replace swaps in a new universe for the given snapshot date.
	Replace(ctx context.Context, date time.Time, funds []entities.FundRecord) error

	// Current returns the universe and its snapshot date.
	Current(ctx context.Context) (time.Time, []entities.FundRecord, error)

	// ByCategory returns the funds of one category and the snapshot date.
	ByCategory(ctx context.Context, c entities.Category) (time.Time, []entities.FundRecord, error)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
