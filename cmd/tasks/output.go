package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/nanotasks/formats"
	"github.com/arthur-debert/nanotasks/types"
)

// minShortID is the shortest id prefix shown in tables
const minShortID = 8

var titleCaser = cases.Title(language.English)

// emptyMessages are shown under "No tasks found" for each filter
var emptyMessages = map[types.Filter]string{
	types.FilterAll:       "Add your first task to get started!",
	types.FilterCompleted: "No completed tasks yet!",
	types.FilterPending:   "All tasks are completed! Great job!",
}

// filterLabel renders a filter for headings ("Pending")
func filterLabel(f types.Filter) string {
	return titleCaser.String(f.String())
}

// shortIDs maps every id to its shortest unique prefix of at least
// minShortID bytes. Ids created close together share long prefixes, so the
// length grows per id until no other id in the collection starts the same way.
func shortIDs(tasks []types.Task) map[string]string {
	out := make(map[string]string, len(tasks))
	for i, t := range tasks {
		n := min(minShortID, len(t.ID))
		for n < len(t.ID) && (!utf8.ValidString(t.ID[:n]) || sharesPrefix(tasks, i, t.ID[:n])) {
			n++
		}
		out[t.ID] = t.ID[:n]
	}
	return out
}

func sharesPrefix(tasks []types.Task, self int, prefix string) bool {
	prefix = strings.ToLower(prefix)
	for j, other := range tasks {
		if j != self && strings.HasPrefix(strings.ToLower(other.ID), prefix) {
			return true
		}
	}
	return false
}

func checkbox(t types.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// writeEmptyState prints the message shown when a view has no tasks
func writeEmptyState(w io.Writer, f types.Filter) {
	fmt.Fprintln(w, "No tasks found")
	fmt.Fprintln(w, emptyMessages[f])
}

// writeTaskTable prints tasks as an aligned table. texts overrides the text
// column per id (search highlights); it may be nil.
func writeTaskTable(w io.Writer, tasks []types.Task, ids map[string]string, texts map[string]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTASK\tDUE\tCREATED")
	for _, t := range tasks {
		text := t.Text
		if override, ok := texts[t.ID]; ok {
			text = override
		}
		id := ids[t.ID]
		if id == "" {
			id = t.ID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, checkbox(t), text,
			formats.FormatDue(t.Date, t.Time), formats.FormatCreated(t.CreatedAt.Local()))
	}
	return tw.Flush()
}

// writeCountsFooter prints the per-filter totals
func writeCountsFooter(w io.Writer, counts types.Counts) {
	parts := make([]string, 0, 3)
	for _, f := range types.Filters() {
		parts = append(parts, fmt.Sprintf("%s: %d", filterLabel(f), counts.For(f)))
	}
	fmt.Fprintf(w, "\n%s\n", strings.Join(parts, " · "))
}

// writeStructured renders tasks with one of the document formats
func writeStructured(w io.Writer, output, title string, tasks []types.Task) error {
	format, err := formats.Get(output)
	if err != nil {
		return NewValidationError("render output", err.Error(), err, "Use --output table, json or yaml")
	}
	data, err := format.Render(title, tasks)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format.Name, err)
	}
	_, err = w.Write(data)
	return err
}

// describeTask is the one-line form used in confirmations
func describeTask(t types.Task, shortID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", checkbox(t), t.Text)
	if due := formats.FormatDue(t.Date, t.Time); due != "" {
		fmt.Fprintf(&b, " (%s)", due)
	}
	if shortID != "" {
		fmt.Fprintf(&b, "  [%s]", shortID)
	}
	return b.String()
}
