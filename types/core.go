package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout and TimeLayout are the accepted layouts for a task's schedule.
// They match what an HTML date/time input produces.
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	TimeLayoutSeconds = "15:04:05"
)

// Task is a single to-do item.
type Task struct {
	ID        string    // Opaque identifier, immutable once generated
	Text      string    // Display text, never empty once stored
	Completed bool      // Completion flag
	Date      string    // Optional due date (YYYY-MM-DD), empty when absent
	Time      string    // Optional due time (HH:MM), empty when absent
	CreatedAt time.Time // Creation timestamp (UTC, millisecond precision)
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool {
	return t.Date != ""
}

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterPending}
}

// Matches reports whether a task is visible under the filter.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// String implements fmt.Stringer
func (f Filter) String() string {
	if f == "" {
		return string(FilterAll)
	}
	return string(f)
}

// ParseFilter converts user input into a Filter.
// The empty string selects FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "pending", "open":
		return FilterPending, nil
	}
	return "", &ValidationError{
		Field:  "filter",
		Value:  s,
		Reason: fmt.Sprintf("must be one of %s", strings.Join(filterNames(), ", ")),
	}
}

func filterNames() []string {
	names := make([]string, 0, 3)
	for _, f := range Filters() {
		names = append(names, string(f))
	}
	return names
}

// Counts holds the number of tasks visible under each filter.
type Counts struct {
	All       int `json:"all" yaml:"all"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
}

// For returns the count for a single filter.
func (c Counts) For(f Filter) int {
	switch f {
	case FilterCompleted:
		return c.Completed
	case FilterPending:
		return c.Pending
	default:
		return c.All
	}
}
