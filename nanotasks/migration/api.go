package migration

import (
	"time"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/types"
)

// API provides the public interface for migrations
type API struct {
	newID func() string
	now   func() time.Time
}

// NewAPI creates a new migration API instance
func NewAPI() *API {
	return &API{
		newID: nanotasks.NewID,
		now:   time.Now,
	}
}

// ValidateTasks reports records the store would not have written
func (a *API) ValidateTasks(tasks []types.Task, opts Options) *Result {
	ctx := &Context{
		Tasks:  cloneTasks(tasks),
		DryRun: true,
	}
	return (&ValidateTasks{}).Execute(ctx)
}

// RepairTasks returns a repaired copy of tasks. In a dry run the input is
// returned unchanged and the result describes what would change.
func (a *API) RepairTasks(tasks []types.Task, opts Options) ([]types.Task, *Result) {
	ctx := &Context{
		Tasks:  cloneTasks(tasks),
		DryRun: opts.DryRun,
		NewID:  a.newID,
		Now:    a.now,
	}

	cmd := &RepairTasks{DropBlank: opts.DropBlank}
	result := cmd.Execute(ctx)
	return ctx.Tasks, result
}
