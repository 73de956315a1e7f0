package imports

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

const browserDump = `[
  {"id":"lq2x9k3abc","text":"Buy milk","completed":false,"date":"2024-01-01","time":"","createdAt":"2024-01-01T10:00:00.000Z"},
  {"id":"lq2x8j1def","text":"Call mom","completed":true,"date":"","time":"","createdAt":"2023-12-31T09:00:00.000Z"},
  {"id":"lq2x7h0ghi","text":"   ","completed":false},
  {"text":"No id yet"}
]`

func newStore(t *testing.T, initial string) (*nanotasks.Store, *storage.MemorySlot) {
	t.Helper()
	var data []byte
	if initial != "" {
		data = []byte(initial)
	}
	slot := storage.NewMemorySlot(data)
	return nanotasks.New(storage.NewAdapter(slot)), slot
}

func textsOf(tasks []types.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestProcess(t *testing.T) {
	store, _ := newStore(t, `[{"id":"lq2x8j1def","text":"Call mom (already here)"},{"id":"old","text":"Existing"}]`)
	records, err := Read(strings.NewReader(browserDump))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	result, err := Process(store, records, ImportOptions{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.Summary.TotalTasks != 4 || result.Summary.SuccessfulImports != 2 ||
		result.Summary.SkippedTasks != 1 || result.Summary.FailedImports != 1 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
	if result.Skipped[0].ID != "lq2x8j1def" {
		t.Errorf("unexpected skipped: %+v", result.Skipped)
	}
	if result.Failed[0].Index != 2 || !strings.Contains(result.Failed[0].Error, "empty") {
		t.Errorf("unexpected failure: %+v", result.Failed)
	}
	if result.Imported[0].ID != "lq2x9k3abc" || result.Imported[1].OriginalID != "" || result.Imported[1].ID == "" {
		t.Errorf("unexpected imported: %+v", result.Imported)
	}

	want := []string{"Buy milk", "No id yet", "Call mom (already here)", "Existing"}
	if diff := cmp.Diff(want, textsOf(store.List())); diff != "" {
		t.Errorf("unexpected collection (-want +got):\n%s", diff)
	}

	milk, err := store.Get("lq2x9k3abc")
	if err != nil {
		t.Fatalf("imported task missing: %v", err)
	}
	if !milk.CreatedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) || milk.Date != "2024-01-01" {
		t.Errorf("imported fields not kept: %+v", milk)
	}
}

func TestProcessTwiceIsIdempotent(t *testing.T) {
	store, _ := newStore(t, "")
	records, _ := Read(strings.NewReader(`[{"id":"a","text":"one"},{"id":"b","text":"two","completed":true}]`))

	if _, err := Process(store, records, ImportOptions{}); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	before := store.List()

	result, err := Process(store, records, ImportOptions{})
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if result.Summary.SuccessfulImports != 0 || result.Summary.SkippedTasks != 2 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
	if diff := cmp.Diff(before, store.List()); diff != "" {
		t.Errorf("collection changed (-before +after):\n%s", diff)
	}
}

func TestProcessDuplicateWithinFile(t *testing.T) {
	store, _ := newStore(t, "")
	records := []types.Task{{ID: "x", Text: "first"}, {ID: "x", Text: "second"}}

	result, err := Process(store, records, ImportOptions{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if diff := cmp.Diff([]string{"first"}, textsOf(store.List())); diff != "" {
		t.Errorf("first occurrence should win (-want +got):\n%s", diff)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Text != "second" {
		t.Errorf("unexpected skipped: %+v", result.Skipped)
	}
}

func TestProcessRecordsWithoutIDTwice(t *testing.T) {
	store, slot := newStore(t, "")
	records := []types.Task{
		{Text: "No id yet"},
		{Text: "Dated", Date: "2024-03-01", CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)},
	}

	if _, err := Process(store, records, ImportOptions{}); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	writes := slot.Writes

	result, err := Process(store, records, ImportOptions{})
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if result.Summary.SuccessfulImports != 0 || result.Summary.SkippedTasks != 2 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
	if diff := cmp.Diff([]string{"No id yet", "Dated"}, textsOf(store.List())); diff != "" {
		t.Errorf("unexpected collection (-want +got):\n%s", diff)
	}
	if slot.Writes != writes {
		t.Errorf("second import wrote %d times", slot.Writes-writes)
	}
}

func TestProcessMatchesCreationTimeWhenPresent(t *testing.T) {
	store, _ := newStore(t, `[{"id":"a","text":"Standup","createdAt":"2024-01-01T09:00:00.000Z"}]`)
	records := []types.Task{
		{Text: "Standup", CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{Text: "Standup", CreatedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)},
	}

	result, err := Process(store, records, ImportOptions{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.Summary.SkippedTasks != 1 || result.Summary.SuccessfulImports != 1 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
	if len(store.List()) != 2 {
		t.Errorf("expected the later standup to be added, got %d tasks", len(store.List()))
	}
}

func TestProcessInvalidRecordDoesNotClaimID(t *testing.T) {
	store, _ := newStore(t, "")
	records := []types.Task{{ID: "x", Text: "  "}, {ID: "x", Text: "valid"}}

	result, err := Process(store, records, ImportOptions{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.Summary.SuccessfulImports != 1 || result.Summary.SkippedTasks != 0 || result.Summary.FailedImports != 1 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
	if result.Failed[0].Index != 0 {
		t.Errorf("expected the blank record to fail, got %+v", result.Failed)
	}
	task, err := store.Get("x")
	if err != nil || task.Text != "valid" {
		t.Errorf("expected the valid record under id x, got %+v (%v)", task, err)
	}
}

func TestProcessLeavesInputUntouched(t *testing.T) {
	store, _ := newStore(t, "")
	records := []types.Task{{ID: "a", Text: "  padded  "}}

	if _, err := Process(store, records, ImportOptions{}); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if records[0].Text != "  padded  " {
		t.Errorf("input record changed: %q", records[0].Text)
	}
}

func TestProcessDryRun(t *testing.T) {
	store, slot := newStore(t, "")
	records, _ := Read(strings.NewReader(browserDump))

	result, err := Process(store, records, ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !result.Summary.DryRun || result.Summary.SuccessfulImports != 3 || result.Summary.FailedImports != 1 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
	if len(store.List()) != 0 || slot.Writes != 0 {
		t.Error("dry run must not change the store")
	}
}

func TestProcessStopsOnPersistenceError(t *testing.T) {
	store, slot := newStore(t, "")
	slot.SetWriteError(errors.New("quota exceeded"))

	result, err := Process(store, []types.Task{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}}, ImportOptions{})
	if !errors.Is(err, types.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if result == nil || result.Summary.SuccessfulImports != 0 {
		t.Errorf("unexpected partial result: %+v", result)
	}
	if len(store.List()) != 0 {
		t.Error("nothing should be imported")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "tasks.json")
	if err := os.WriteFile(good, []byte(browserDump), 0644); err != nil {
		t.Fatal(err)
	}
	tasks, err := ReadFile(good)
	if err != nil || len(tasks) != 4 {
		t.Fatalf("expected 4 records, got %d (%v)", len(tasks), err)
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte(`{"not":"an array"}`), 0644)
	if _, err := ReadFile(bad); err == nil {
		t.Error("expected invalid data error")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected open error")
	}
}
