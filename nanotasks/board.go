package nanotasks

import (
	"sync"

	"github.com/arthur-debert/nanotasks/types"
)

// Board pairs a Store with the active filter.
// A presentation layer holds one Board and calls its methods; it never needs
// to reach for shared state.
type Board struct {
	store *Store

	mu     sync.RWMutex
	filter types.Filter
}

// NewBoard creates a board showing all tasks
func NewBoard(store *Store) *Board {
	return &Board{store: store, filter: types.FilterAll}
}

// Store returns the board's store for mutations
func (b *Board) Store() *Store {
	return b.store
}

// SetFilter changes the active filter. Unknown filters are rejected.
func (b *Board) SetFilter(f types.Filter) error {
	parsed, err := types.ParseFilter(string(f))
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = parsed
	return nil
}

// Filter returns the active filter
func (b *Board) Filter() types.Filter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filter
}

// Visible returns the tasks shown under the active filter
func (b *Board) Visible() []types.Task {
	return Project(b.store.List(), b.Filter())
}

// Counts returns per-filter totals for the whole collection
func (b *Board) Counts() types.Counts {
	return Count(b.store.List())
}
