package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
)

// CopyTasks copies the task list stored in src to dst. The source must
// decode cleanly; a target that already holds tasks is only overwritten with
// Force.
func (a *API) CopyTasks(ctx context.Context, src, dst storage.Slot, opts Options) *Result {
	startTime := time.Now()
	result := &Result{
		Success:  true,
		Code:     CodeSuccess,
		Messages: []Message{},
	}

	raw, err := src.Read(ctx)
	if err != nil {
		return result.fail(CodeExecutionError, fmt.Sprintf("failed to read source: %v", err))
	}
	if raw == nil {
		return result.fail(CodeValidationError, "source holds no task list")
	}
	tasks, err := storage.Decode(raw)
	if err != nil {
		return result.fail(CodeValidationError, fmt.Sprintf("source does not hold a valid task list: %v", err))
	}
	result.Stats.TotalTasks = len(tasks)

	existing, err := dst.Read(ctx)
	if err != nil {
		return result.fail(CodeExecutionError, fmt.Sprintf("failed to read target: %v", err))
	}
	if existing != nil {
		current, err := storage.Decode(existing)
		switch {
		case err != nil && !opts.Force:
			return result.fail(CodeValidationError, "target holds unreadable data (use force to overwrite)")
		case err != nil:
			result.addMessage(LevelWarning, "Replacing unreadable data in the target", nil)
		case len(current) > 0 && !opts.Force:
			return result.fail(CodeValidationError,
				fmt.Sprintf("target already holds %d tasks (use force to overwrite)", len(current)))
		case len(current) > 0:
			result.addMessage(LevelWarning, fmt.Sprintf("Replacing %d tasks in the target", len(current)), nil)
		}
	}

	check := a.ValidateTasks(tasks, opts)
	if !check.Success {
		result.addMessage(LevelWarning, "Source has invalid records; they are copied as stored", nil)
	}

	for _, t := range tasks {
		result.Modified = append(result.Modified, t.ID)
	}
	result.Stats.ModifiedTasks = len(tasks)

	if !opts.DryRun {
		data, err := storage.Encode(tasks)
		if err != nil {
			return result.fail(CodeExecutionError, fmt.Sprintf("failed to encode tasks: %v", err))
		}
		if err := dst.Write(ctx, data); err != nil {
			return result.fail(CodeExecutionError, fmt.Sprintf("failed to write target: %v", err))
		}
	}

	result.Stats.Duration = time.Since(startTime)
	result.addMessage(LevelInfo, fmt.Sprintf("Copied %d tasks", len(tasks)), nil)
	return result
}
