package search

import (
	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/types"
)

// Lister is the read side of a task store
type Lister interface {
	List() []types.Task
}

// StoreProvider adapts a task store to work as a TaskProvider
type StoreProvider struct {
	store Lister
}

// NewStoreProvider creates a new provider over a store
func NewStoreProvider(store Lister) *StoreProvider {
	return &StoreProvider{store: store}
}

// Tasks implements TaskProvider by projecting the store's snapshot
func (p *StoreProvider) Tasks(filter types.Filter) ([]types.Task, error) {
	return nanotasks.Project(p.store.List(), filter), nil
}

// SearchStore is a convenience function to search a store directly
func SearchStore(store Lister, options SearchOptions, filter types.Filter) ([]SearchResult, error) {
	return NewEngine(NewStoreProvider(store)).Search(options, filter)
}
