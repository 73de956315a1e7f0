package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// defaultTimeout bounds a single slot read or write
const defaultTimeout = 3 * time.Second

// Adapter maps the task collection onto a Slot.
// Load never fails: a missing or corrupt value is an empty collection.
type Adapter struct {
	slot    Slot
	timeout time.Duration
	logger  *slog.Logger
}

// AdapterOption is a function that modifies Adapter configuration
type AdapterOption func(*Adapter)

// WithLogger sets the logger used to report degraded loads
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithTimeout bounds each slot operation
func WithTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// NewAdapter creates an adapter over the given slot
func NewAdapter(slot Slot, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		slot:    slot,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Load reads the stored collection.
// Absent, unreadable and unparsable values all yield an empty collection.
func (a *Adapter) Load() []types.Task {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	data, err := a.slot.Read(ctx)
	if err != nil {
		a.logger.Warn("task slot unreadable, starting empty", "error", err)
		return []types.Task{}
	}
	if len(data) == 0 {
		return []types.Task{}
	}

	tasks, err := Decode(data)
	if err != nil {
		a.logger.Warn("task slot corrupt, starting empty", "error", err, "bytes", len(data))
		return []types.Task{}
	}

	a.logger.Debug("tasks loaded", "count", len(tasks))
	return tasks
}

// Save serializes the full collection and overwrites the slot
func (a *Adapter) Save(tasks []types.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return &types.PersistenceError{Op: "save", Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.slot.Write(ctx, data); err != nil {
		a.logger.Error("failed to persist tasks", "error", err, "count", len(tasks))
		return &types.PersistenceError{Op: "save", Err: err}
	}

	a.logger.Debug("tasks saved", "count", len(tasks), "bytes", len(data))
	return nil
}

// Close closes the underlying slot
func (a *Adapter) Close() error {
	return a.slot.Close()
}
