// Package storage provides the persistence layer for nanotasks.
// The whole task collection lives under one fixed key ("slot") and is read
// and written as a single unit, the way a browser keeps it in localStorage.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the slot key used when none is configured.
const DefaultKey = "tasks"

// ErrSlotClosed is returned by slots used after Close
var ErrSlotClosed = errors.New("slot is closed")

// Slot is a durable mapping from one fixed key to one serialized value.
// Backends live in the store package; MemorySlot is provided here.
type Slot interface {
	// Read returns the stored value, or nil with no error when nothing
	// has been stored yet
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored value
	Write(ctx context.Context, data []byte) error

	// Close releases any resources held by the slot
	Close() error
}
