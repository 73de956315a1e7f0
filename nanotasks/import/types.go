package imports

import (
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// Store is what an import needs from a task store
type Store interface {
	List() []types.Task
	Insert(task types.Task) (types.Task, error)
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	// DryRun performs validation without actually importing tasks
	DryRun bool `json:"dry_run,omitempty"`
}

// ImportResult contains the results of an import operation
type ImportResult struct {
	// Imported contains the tasks added to the store, in file order
	Imported []ImportedTask `json:"imported"`

	// Skipped contains tasks whose id is already in the store
	Skipped []SkippedTask `json:"skipped"`

	// Failed contains tasks that failed to import with error details
	Failed []FailedTask `json:"failed"`

	// Summary statistics
	Summary ImportSummary `json:"summary"`
}

// ImportedTask represents a successfully imported task
type ImportedTask struct {
	OriginalID string `json:"original_id,omitempty"` // ID from the import data (if any)
	ID         string `json:"id"`                    // ID in the store
	Text       string `json:"text"`
}

// SkippedTask represents a task that was already present
type SkippedTask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// FailedTask represents a task that failed to import
type FailedTask struct {
	Index int    `json:"index"` // Position in the import data
	ID    string `json:"id,omitempty"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

// ImportSummary provides statistics about the import operation
type ImportSummary struct {
	TotalTasks        int       `json:"total_tasks"`
	SuccessfulImports int       `json:"successful_imports"`
	SkippedTasks      int       `json:"skipped_tasks"`
	FailedImports     int       `json:"failed_imports"`
	DryRun            bool      `json:"dry_run"`
	ProcessingTime    string    `json:"processing_time"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}
