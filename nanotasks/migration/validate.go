package migration

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/nanotasks/internal/validation"
	"github.com/arthur-debert/nanotasks/types"
)

// maxErrorSamples bounds the per-task problems attached to a result
const maxErrorSamples = 5

// ValidateTasks checks that every stored record is one the store itself
// could have written
type ValidateTasks struct{}

// Description returns a human-readable description of the command
func (v *ValidateTasks) Description() string {
	return "Validate stored tasks"
}

// Validate checks if validation can be executed
func (v *ValidateTasks) Validate(ctx *Context) []Message {
	if len(ctx.Tasks) == 0 {
		return []Message{{Level: LevelWarning, Text: "The task list is empty"}}
	}
	return []Message{{
		Level: LevelInfo,
		Text:  fmt.Sprintf("Will validate %d tasks", len(ctx.Tasks)),
	}}
}

// problems lists what is wrong with task. seen tracks ids of earlier records.
func problems(task types.Task, seen map[string]bool) (errs []string, warnings []string) {
	switch {
	case task.ID == "":
		errs = append(errs, "id: missing")
	case seen[task.ID]:
		errs = append(errs, "id: duplicate of an earlier task")
	}
	if validation.IsBlank(task.Text) {
		errs = append(errs, "text: empty")
	} else if task.Text != strings.TrimSpace(task.Text) {
		warnings = append(warnings, "text: surrounding whitespace")
	}
	if _, err := validation.ValidateDate(task.Date); err != nil {
		errs = append(errs, fmt.Sprintf("date: %v", err))
	}
	if _, err := validation.ValidateTime(task.Time); err != nil {
		errs = append(errs, fmt.Sprintf("time: %v", err))
	}
	if task.CreatedAt.IsZero() {
		warnings = append(warnings, "createdAt: missing")
	}
	return errs, warnings
}

// Execute performs the validation
func (v *ValidateTasks) Execute(ctx *Context) *Result {
	result := &Result{
		Success:  true,
		Code:     CodeSuccess,
		Messages: []Message{},
		Stats: Stats{
			TotalTasks: len(ctx.Tasks),
		},
	}

	startTime := time.Now()
	result.Messages = append(result.Messages, v.Validate(ctx)...)

	totalErrors, totalWarnings := 0, 0
	var samples []map[string]interface{}
	seen := make(map[string]bool, len(ctx.Tasks))

	for i, task := range ctx.Tasks {
		errs, warnings := problems(task, seen)
		if task.ID != "" {
			seen[task.ID] = true
		}
		totalWarnings += len(warnings)
		if len(errs) == 0 {
			continue
		}

		totalErrors += len(errs)
		result.Stats.SkippedTasks++ // Count as "skipped" since they have errors
		if len(samples) < maxErrorSamples {
			samples = append(samples, map[string]interface{}{
				"index":  i,
				"id":     task.ID,
				"errors": errs,
			})
		}
	}

	result.Stats.Duration = time.Since(startTime)
	result.Stats.ModifiedTasks = len(ctx.Tasks) - result.Stats.SkippedTasks // Valid tasks

	if totalWarnings > 0 {
		result.addMessage(LevelWarning, fmt.Sprintf("Found %d minor issues that repair would fix", totalWarnings), nil)
	}

	if totalErrors > 0 {
		result.Success = false
		result.Code = CodeValidationError
		result.addMessage(LevelError,
			fmt.Sprintf("Found %d validation errors in %d tasks", totalErrors, result.Stats.SkippedTasks),
			map[string]interface{}{
				"total_errors":  totalErrors,
				"failed_tasks":  result.Stats.SkippedTasks,
				"error_samples": samples,
			})
		return result
	}

	result.addMessage(LevelInfo, fmt.Sprintf("All %d tasks passed validation", len(ctx.Tasks)), nil)
	return result
}
