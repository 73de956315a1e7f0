package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock guards a slot file against writers in other processes
type FileLock interface {
	// TryLockContext retries every retryInterval until locked or ctx ends
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates FileLock instances
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory creates locks backed by github.com/gofrs/flock.
// *flock.Flock already satisfies FileLock.
type FlockFactory struct{}

// New implements FileLockFactory.New
func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}
