package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// timestampLayout mirrors JavaScript's Date.toISOString, so collections
// written by the browser app load unchanged and vice versa.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// record is the persisted shape of a task. Missing fields decode to their
// zero value, which is also the field's default.
type record struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	CreatedAt string `json:"createdAt"`
}

// FormatTimestamp renders a creation time in the persisted layout.
// The zero time renders as an empty string.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a persisted creation time.
// Empty input yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Millisecond), nil
}

func toRecord(t types.Task) record {
	return record{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Date:      t.Date,
		Time:      t.Time,
		CreatedAt: FormatTimestamp(t.CreatedAt),
	}
}

func fromRecord(r record) types.Task {
	// An unparsable timestamp degrades to "unknown" rather than dropping the task
	created, _ := ParseTimestamp(r.CreatedAt)
	return types.Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		Date:      r.Date,
		Time:      r.Time,
		CreatedAt: created,
	}
}

// Encode serializes a collection into the persisted layout.
// A nil collection encodes as an empty array.
func Encode(tasks []types.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	// Leave <, > and & unescaped, as JSON.stringify does
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses the persisted layout. It fails when the value is not a
// JSON array of task objects; callers decide how to degrade.
func Decode(data []byte) ([]types.Task, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	tasks := make([]types.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, fromRecord(r))
	}
	return tasks, nil
}
