package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
)

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

// Config selects and configures a slot backend
type Config struct {
	Backend string // file (default), memory, mysql or postgres
	Dir     string // Directory for the file backend
	Key     string // Slot key; defaults to storage.DefaultKey
	DSN     string // Connection string for SQL backends
}

// Backends lists the accepted backend names
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendMySQL, BackendPostgres}
}

// Open creates the slot described by cfg
func Open(ctx context.Context, cfg Config) (storage.Slot, error) {
	key := cfg.Key
	if key == "" {
		key = storage.DefaultKey
	}

	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileSlot(cfg.Dir, key)
	case BackendMemory:
		return storage.NewMemorySlot(nil), nil
	case BackendMySQL, BackendPostgres, "postgresql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("backend %s requires a DSN", cfg.Backend)
		}
		dialect, err := ParseDialect(cfg.Backend)
		if err != nil {
			return nil, err
		}
		return OpenSQLSlot(ctx, dialect, cfg.DSN, key)
	}
	return nil, fmt.Errorf("unknown backend %q (available: %s)", cfg.Backend, strings.Join(Backends(), ", "))
}
