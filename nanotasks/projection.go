package nanotasks

import (
	"github.com/arthur-debert/nanotasks/types"
)

// Project returns the tasks visible under f, in collection order.
// The result is a fresh slice; tasks is never modified.
func Project(tasks []types.Task, f types.Filter) []types.Task {
	out := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Count tallies the tasks visible under each filter
func Count(tasks []types.Task) types.Counts {
	c := types.Counts{All: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}
