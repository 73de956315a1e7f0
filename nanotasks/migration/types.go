// Package migration inspects and rewrites stored task lists outside the
// normal store operations: checking a list for records the store would not
// have written, repairing them, and moving a list between backends.
package migration

import (
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// MessageLevel represents the severity of a message
type MessageLevel int

const (
	LevelDebug MessageLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Message represents a single output message from a migration
type Message struct {
	Level   MessageLevel
	Text    string
	Details map[string]interface{} // Optional structured data
}

// Result encapsulates the outcome of a migration operation
type Result struct {
	Success  bool
	Code     int // 0 = success, >0 = specific error codes
	Messages []Message
	Modified []string // IDs of tasks changed (or that would change in a dry run)
	Stats    Stats
}

// Stats provides migration statistics
type Stats struct {
	TotalTasks    int
	ModifiedTasks int
	SkippedTasks  int
	Duration      time.Duration
}

// Context holds the state for a migration operation
type Context struct {
	Tasks  []types.Task
	DryRun bool

	// NewID and Now supply ids and creation times for repaired records
	NewID func() string
	Now   func() time.Time
}

// Command is a single migration step
type Command interface {
	Description() string
	Validate(ctx *Context) []Message
	Execute(ctx *Context) *Result
}

// Options configures migration behavior
type Options struct {
	DryRun  bool
	Verbose bool

	// DropBlank removes records whose text is empty instead of keeping them
	DropBlank bool

	// Force lets a copy overwrite a target that already holds tasks
	Force bool
}

// Error codes
const (
	CodeSuccess = iota
	CodeValidationError
	CodeExecutionError
	CodePartialFailure
)

func (r *Result) addMessage(level MessageLevel, text string, details map[string]interface{}) {
	r.Messages = append(r.Messages, Message{Level: level, Text: text, Details: details})
}

func (r *Result) fail(code int, text string) *Result {
	r.Success = false
	r.Code = code
	r.addMessage(LevelError, text, nil)
	return r
}
