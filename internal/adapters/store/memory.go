// Package store provides in-memory holders for the fund universe and
// for computed recommendations.
// InMemoryStore implements ports.FundStore.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// ErrEmpty is returned by Current before any universe has been published.
var ErrEmpty = errors.New("no fund universe loaded")

// InMemoryStore holds the latest enriched fund universe.
type InMemoryStore struct {
	mu     sync.RWMutex
	date   time.Time
	funds  []entities.FundRecord
	loaded bool
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Replace swaps in a new universe. An older snapshot never replaces a newer one.
func (s *InMemoryStore) Replace(ctx context.Context, date time.Time, funds []entities.FundRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && date.Before(s.date) {
		return nil
	}
	s.date = date
	s.funds = slices.Clone(funds)
	s.loaded = true
	return nil
}

// Current returns a copy of the universe and its snapshot date.
func (s *InMemoryStore) Current(ctx context.Context) (time.Time, []entities.FundRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return time.Time{}, nil, ErrEmpty
	}
	return s.date, slices.Clone(s.funds), nil
}

// ByCategory returns the funds of one category, in universe order, and the
// snapshot date.
func (s *InMemoryStore) ByCategory(ctx context.Context, c entities.Category) (time.Time, []entities.FundRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return time.Time{}, nil, ErrEmpty
	}
	out := []entities.FundRecord{}
	for _, f := range s.funds {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return s.date, out, nil
}
