package migration

import (
	"fmt"
	"slices"
	"time"

	"github.com/arthur-debert/nanotasks/internal/validation"
	"github.com/arthur-debert/nanotasks/types"
)

// RepairTasks rewrites records so that the list validates: missing and
// duplicate ids get fresh ones, text is trimmed, unparseable dates and times
// are cleared and missing creation times are set to now. Records with empty
// text are kept unless DropBlank is set.
type RepairTasks struct {
	DropBlank bool
}

// Description returns a human-readable description of the command
func (r *RepairTasks) Description() string {
	return "Repair stored tasks"
}

// Validate checks if the repair can be executed
func (r *RepairTasks) Validate(ctx *Context) []Message {
	var messages []Message
	if ctx.NewID == nil || ctx.Now == nil {
		messages = append(messages, Message{Level: LevelError, Text: "repair needs an id generator and a clock"})
	}
	return messages
}

// Execute performs the repair
func (r *RepairTasks) Execute(ctx *Context) *Result {
	result := &Result{
		Success:  true,
		Code:     CodeSuccess,
		Messages: []Message{},
		Stats: Stats{
			TotalTasks: len(ctx.Tasks),
		},
	}

	startTime := time.Now()

	for _, msg := range r.Validate(ctx) {
		if msg.Level == LevelError {
			return result.fail(CodeValidationError, msg.Text)
		}
		result.Messages = append(result.Messages, msg)
	}

	taken := make(map[string]bool, len(ctx.Tasks))
	for _, t := range ctx.Tasks {
		taken[t.ID] = true
	}
	seen := make(map[string]bool, len(ctx.Tasks))

	repaired := make([]types.Task, 0, len(ctx.Tasks))
	for i, task := range ctx.Tasks {
		var changes []string

		if validation.IsBlank(task.Text) && r.DropBlank {
			result.Stats.SkippedTasks++
			result.addMessage(LevelInfo, fmt.Sprintf("Dropped task %d with empty text", i), map[string]interface{}{"id": task.ID})
			continue
		}

		if task.ID == "" || seen[task.ID] {
			task.ID = freshID(ctx.NewID, taken)
			taken[task.ID] = true
			changes = append(changes, "id")
		}
		seen[task.ID] = true

		if text, err := validation.NormalizeText(task.Text); err == nil && text != task.Text {
			task.Text = text
			changes = append(changes, "text")
		} else if err != nil {
			result.addMessage(LevelWarning, fmt.Sprintf("Task %s has empty text (use drop-blank to remove it)", task.ID), nil)
		}

		if date, err := validation.ValidateDate(task.Date); err != nil || date != task.Date {
			task.Date = date
			changes = append(changes, "date")
		}
		if clock, err := validation.ValidateTime(task.Time); err != nil || clock != task.Time {
			task.Time = clock
			changes = append(changes, "time")
		}

		if task.CreatedAt.IsZero() {
			task.CreatedAt = ctx.Now().UTC().Truncate(time.Millisecond)
			changes = append(changes, "createdAt")
		}

		if len(changes) > 0 {
			result.Modified = append(result.Modified, task.ID)
			result.addMessage(LevelDebug, fmt.Sprintf("Repaired task %s", task.ID), map[string]interface{}{"fields": changes})
		}
		repaired = append(repaired, task)
	}

	result.Stats.ModifiedTasks = len(result.Modified)
	result.Stats.Duration = time.Since(startTime)

	if !ctx.DryRun {
		ctx.Tasks = repaired
	}

	if result.Stats.ModifiedTasks == 0 && result.Stats.SkippedTasks == 0 {
		result.addMessage(LevelInfo, "Nothing to repair", nil)
	} else {
		result.addMessage(LevelInfo, fmt.Sprintf("Repaired %d tasks, dropped %d", result.Stats.ModifiedTasks, result.Stats.SkippedTasks), nil)
	}
	return result
}

func freshID(gen func() string, taken map[string]bool) string {
	for {
		if id := gen(); id != "" && !taken[id] {
			return id
		}
	}
}

// cloneTasks copies the input so commands never write through to it
func cloneTasks(tasks []types.Task) []types.Task {
	if tasks == nil {
		return []types.Task{}
	}
	return slices.Clone(tasks)
}
