package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
)

// Constants for file locking
const (
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// FileSlot stores a slot as <dir>/<key>.json.
// Every read and write holds a cross-process lock on <file>.lock and writes
// go through a temp file and a rename.
type FileSlot struct {
	path        string
	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock

	mu     sync.Mutex
	closed bool
}

// FileSlotOption is a function that modifies FileSlot configuration
type FileSlotOption func(*FileSlot)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) FileSlotOption {
	return func(s *FileSlot) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) FileSlotOption {
	return func(s *FileSlot) {
		s.lockFactory = factory
	}
}

// SlotPath returns the file backing key inside dir
func SlotPath(dir, key string) string {
	if key == "" {
		key = storage.DefaultKey
	}
	return filepath.Join(dir, key+".json")
}

// ErrInvalidKey is returned for keys that do not name a file inside the store directory
var ErrInvalidKey = errors.New("invalid slot key")

// ValidateKey rejects keys carrying a path separator or naming a directory
func ValidateKey(key string) error {
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w %q: must be a plain name without / or ..", ErrInvalidKey, key)
	}
	return nil
}

// NewFileSlot creates the slot for key inside dir, creating dir if needed
func NewFileSlot(dir, key string, opts ...FileSlotOption) (*FileSlot, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s := &FileSlot{path: SlotPath(dir, key)}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = OSFileSystem{}
	}
	if s.lockFactory == nil {
		s.lockFactory = FlockFactory{}
	}

	if dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	s.fileLock = s.lockFactory.New(s.path + ".lock")
	return s, nil
}

// Path returns the file backing the slot
func (s *FileSlot) Path() string {
	return s.path
}

// acquireLock attempts to acquire the file lock with retry logic
func (s *FileSlot) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

func (s *FileSlot) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrSlotClosed
	}
	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()
	return fn()
}

// Read implements storage.Slot.Read
func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.withLock(ctx, func() error {
		if _, err := s.fs.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			// File doesn't exist yet, that's OK
			return nil
		}
		content, err := s.fs.ReadFile(s.path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write implements storage.Slot.Write
func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	return s.withLock(ctx, func() error {
		tmpFile := s.path + ".tmp"
		if err := s.fs.WriteFile(tmpFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := s.fs.Rename(tmpFile, s.path); err != nil {
			_ = s.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		return nil
	})
}

// Close implements storage.Slot.Close
func (s *FileSlot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
