package storage

import (
	"sync"
)

// OperationType defines whether an operation reads or mutates the collection.
type OperationType int

const (
	// ReadOperation may run alongside other reads
	ReadOperation OperationType = iota

	// WriteOperation runs alone. A write covers both the in-memory change and
	// the slot write, so no caller observes a half-persisted collection.
	WriteOperation
)

// LockManager serializes access to an in-memory task collection.
// Writes are exclusive; reads share the lock.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager creates a new lock manager instance
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn under the lock matching opType.
//
// Example:
//
//	err := lm.Execute(WriteOperation, func() error {
//	    tasks = append([]types.Task{t}, tasks...)
//	    return adapter.Save(tasks)
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	if opType == WriteOperation {
		lm.mu.Lock()
		defer lm.mu.Unlock()
	} else {
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	}
	return fn()
}

// ExecuteWithResult is Execute for functions that also return a value
func ExecuteWithResult[T any](lm *LockManager, opType OperationType, fn func() (T, error)) (T, error) {
	var result T
	err := lm.Execute(opType, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
