// Package imports merges task records from a file into a store.
//
// Records already in the store are skipped, so importing the same file twice
// is harmless. A record with an id matches on its id; a record without one
// matches a task with the same text, schedule and, when the record carries
// one, creation time. The imported tasks keep their id, completion flag and
// creation time, and end up on top of the list in file order.
package imports

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/arthur-debert/nanotasks/internal/validation"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

// Process imports tasks into store
func Process(store Store, tasks []types.Task, options ImportOptions) (*ImportResult, error) {
	startTime := time.Now()

	result := &ImportResult{
		Imported: make([]ImportedTask, 0),
		Skipped:  make([]SkippedTask, 0),
		Failed:   make([]FailedTask, 0),
		Summary: ImportSummary{
			TotalTasks: len(tasks),
			DryRun:     options.DryRun,
			StartedAt:  startTime,
		},
	}

	tasks = slices.Clone(tasks)
	seen := newPresence(store.List())

	// Decide in file order; the first valid occurrence of a task wins
	var pending []int
	for i, task := range tasks {
		text, date, clock, err := validation.TaskFields(task.Text, task.Date, task.Time)
		if err != nil {
			result.Failed = append(result.Failed, failure(i, task, err))
			continue
		}
		task.Text, task.Date, task.Time = text, date, clock
		tasks[i] = task

		if seen.has(task) {
			result.Skipped = append(result.Skipped, SkippedTask{ID: task.ID, Text: task.Text})
			continue
		}
		seen.add(task)
		pending = append(pending, i)
	}

	// The store prepends, so insert backwards to keep file order on top
	imported := make([]ImportedTask, 0, len(pending))
	for _, i := range slices.Backward(pending) {
		task := tasks[i]
		stored := task
		if !options.DryRun {
			var err error
			stored, err = store.Insert(task)
			if err != nil {
				if !isContinuableError(err) {
					finish(result, imported, startTime)
					return result, fmt.Errorf("import stopped at record %d: %w", i, err)
				}
				result.Failed = append(result.Failed, failure(i, task, err))
				continue
			}
		}
		imported = append(imported, ImportedTask{
			OriginalID: task.ID,
			ID:         stored.ID,
			Text:       stored.Text,
		})
	}

	finish(result, imported, startTime)
	return result, nil
}

func failure(index int, task types.Task, err error) FailedTask {
	return FailedTask{
		Index: index,
		ID:    task.ID,
		Text:  task.Text,
		Error: err.Error(),
	}
}

// presence tracks which tasks are already in the store or earlier in the file
type presence struct {
	ids      map[string]bool
	content  map[string]bool // text, schedule and creation time
	schedule map[string]bool // text and schedule only
}

func newPresence(existing []types.Task) *presence {
	p := &presence{
		ids:      make(map[string]bool),
		content:  make(map[string]bool),
		schedule: make(map[string]bool),
	}
	for _, t := range existing {
		p.add(t)
	}
	return p
}

func scheduleKey(t types.Task) string {
	return t.Text + "\x00" + t.Date + "\x00" + t.Time
}

func contentKey(t types.Task) string {
	return scheduleKey(t) + "\x00" + storage.FormatTimestamp(t.CreatedAt)
}

func (p *presence) add(t types.Task) {
	if t.ID != "" {
		p.ids[t.ID] = true
	}
	p.schedule[scheduleKey(t)] = true
	if !t.CreatedAt.IsZero() {
		p.content[contentKey(t)] = true
	}
}

func (p *presence) has(t types.Task) bool {
	switch {
	case t.ID != "":
		return p.ids[t.ID]
	case t.CreatedAt.IsZero():
		// The store stamps a creation time on insert, so match without it
		return p.schedule[scheduleKey(t)]
	default:
		return p.content[contentKey(t)]
	}
}

func finish(result *ImportResult, imported []ImportedTask, startTime time.Time) {
	// Report in file order
	slices.Reverse(imported)
	result.Imported = imported
	slices.SortStableFunc(result.Failed, func(a, b FailedTask) int {
		return cmp.Compare(a.Index, b.Index)
	})

	result.Summary.SuccessfulImports = len(result.Imported)
	result.Summary.SkippedTasks = len(result.Skipped)
	result.Summary.FailedImports = len(result.Failed)
	result.Summary.CompletedAt = time.Now()
	result.Summary.ProcessingTime = result.Summary.CompletedAt.Sub(startTime).String()
}

// isContinuableError reports whether the import can go on with the next record.
// Storage failures stop the import.
func isContinuableError(err error) bool {
	return !errors.Is(err, types.ErrPersistence)
}
