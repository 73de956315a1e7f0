package imports

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

// ReadFile parses a JSON array of task records in the persisted layout,
// such as a JSON export or a copy of a browser's stored "tasks" value
func ReadFile(path string) ([]types.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Read parses task records from r
func Read(r io.Reader) ([]types.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import data: %w", err)
	}
	tasks, err := storage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid import data: %w", err)
	}
	return tasks, nil
}
