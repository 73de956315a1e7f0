package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps the value in process memory. It is used by tests and by
// the CLI's ephemeral backend.
type MemorySlot struct {
	mu     sync.RWMutex
	data   []byte
	closed bool

	// Optional errors for simulating storage failures
	ReadError  error
	WriteError error

	// Writes counts successful writes
	Writes int
}

// NewMemorySlot creates a slot, optionally pre-populated with a raw value
func NewMemorySlot(initial []byte) *MemorySlot {
	s := &MemorySlot{}
	if initial != nil {
		s.data = append([]byte(nil), initial...)
	}
	return s
}

// Read implements Slot.Read
func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrSlotClosed
	}
	if s.ReadError != nil {
		return nil, s.ReadError
	}
	if s.data == nil {
		return nil, nil
	}
	// Return a copy to prevent external modifications
	return append([]byte(nil), s.data...), nil
}

// Write implements Slot.Write
func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSlotClosed
	}
	if s.WriteError != nil {
		return s.WriteError
	}
	s.data = append([]byte(nil), data...)
	s.Writes++
	return nil
}

// Close implements Slot.Close
func (s *MemorySlot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Bytes returns a copy of the stored value (for testing)
func (s *MemorySlot) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	return append([]byte(nil), s.data...)
}

// SetWriteError sets an error to be returned on writes (for testing)
func (s *MemorySlot) SetWriteError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteError = err
}
