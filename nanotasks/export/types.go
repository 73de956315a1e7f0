package export

import (
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// Lister is the read side of a task store
type Lister interface {
	List() []types.Task
}

// ExportOptions configures what to export and where
type ExportOptions struct {
	// Filter selects the tasks to export; empty means all
	Filter types.Filter

	// Format is a formats registry name; empty means "json"
	Format string

	// Title heads the document and names the generated file.
	// Defaults to "Tasks" (all) or "<Filter> tasks".
	Title string

	// OutputPath is the exact destination. When empty the file is created in
	// Dir under a generated name.
	OutputPath string

	// Dir receives generated files; empty means the system temp directory
	Dir string
}

// ExportData is a rendered export that has not been written yet
type ExportData struct {
	Filename  string       `json:"filename"`
	Format    string       `json:"format"`
	Filter    types.Filter `json:"filter"`
	TaskCount int          `json:"task_count"`
	Created   time.Time    `json:"created"`
	Content   []byte       `json:"-"`
}

// ExportMetadata describes what an export would contain
type ExportMetadata struct {
	Filename  string       `json:"filename"`
	Format    string       `json:"format"`
	Filter    types.Filter `json:"filter"`
	TaskCount int          `json:"task_count"`
	Tasks     []TaskInfo   `json:"tasks"`
}

// TaskInfo is the summary of one exported task
type TaskInfo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
