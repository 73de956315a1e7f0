package nanotasks_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

var fixedTime = time.Date(2024, 1, 1, 10, 0, 0, 123456789, time.UTC)

func newTestStore(t *testing.T, initial string) (*nanotasks.Store, *storage.MemorySlot) {
	t.Helper()
	var data []byte
	if initial != "" {
		data = []byte(initial)
	}
	slot := storage.NewMemorySlot(data)
	counter := 0
	store := nanotasks.New(storage.NewAdapter(slot),
		nanotasks.WithClock(func() time.Time { return fixedTime }),
		nanotasks.WithIDGenerator(func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		}),
	)
	return store, slot
}

// persisted decodes what is currently in the slot
func persisted(t *testing.T, slot *storage.MemorySlot) []types.Task {
	t.Helper()
	tasks, err := storage.Decode(slot.Bytes())
	if err != nil {
		t.Fatalf("slot holds invalid data: %v", err)
	}
	return tasks
}

func TestCreate(t *testing.T) {
	store, slot := newTestStore(t, "")

	first, err := store.Create("  Buy milk  ", "2024-01-01", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := store.Create("Walk dog", "", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if first.Text != "Buy milk" {
		t.Errorf("expected trimmed text, got %q", first.Text)
	}
	if first.Completed {
		t.Error("new task should be pending")
	}
	if first.ID == second.ID {
		t.Error("ids must be unique")
	}
	if want := fixedTime.Truncate(time.Millisecond); !first.CreatedAt.Equal(want) {
		t.Errorf("expected CreatedAt %v, got %v", want, first.CreatedAt)
	}

	list := store.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("newest task should be first: %+v", list)
	}
	if diff := cmp.Diff(list, persisted(t, slot)); diff != "" {
		t.Errorf("slot differs from memory (-memory +slot):\n%s", diff)
	}
}

func TestCreateRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			store, slot := newTestStore(t, "")

			_, err := store.Create(text, "", "")
			if !errors.Is(err, types.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(store.List()) != 0 {
				t.Error("collection should be untouched")
			}
			if slot.Writes != 0 {
				t.Errorf("expected no writes, got %d", slot.Writes)
			}
		})
	}
}

func TestCreateRejectsMalformedSchedule(t *testing.T) {
	store, _ := newTestStore(t, "")

	if _, err := store.Create("x", "01/02/2024", ""); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected date validation error, got %v", err)
	}
	if _, err := store.Create("x", "", "25:00"); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected time validation error, got %v", err)
	}
	if task, err := store.Create("x", "", "09:30"); err != nil || task.Time != "09:30" {
		t.Errorf("time without date should be accepted: %+v %v", task, err)
	}
}

func TestCreateSkipsCollidingIDs(t *testing.T) {
	slot := storage.NewMemorySlot([]byte(`[{"id":"dup","text":"existing"}]`))
	calls := 0
	store := nanotasks.New(storage.NewAdapter(slot), nanotasks.WithIDGenerator(func() string {
		calls++
		if calls < 3 {
			return "dup"
		}
		return "fresh"
	}))

	task, err := store.Create("new", "", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.ID != "fresh" {
		t.Errorf("expected colliding ids to be skipped, got %s", task.ID)
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	store := nanotasks.New(storage.NewAdapter(storage.NewMemorySlot(nil)))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		task, err := store.Create(fmt.Sprintf("task %d", i), "", "")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestUpdate(t *testing.T) {
	store, slot := newTestStore(t, "")
	created, _ := store.Create("Buy milk", "2024-01-01", "08:00")
	other, _ := store.Create("Other", "", "")
	toggled, _ := store.ToggleCompleted(created.ID)

	updated, err := store.Update(created.ID, "Buy oat milk", "2024-02-02", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	want := types.Task{
		ID:        created.ID,
		Text:      "Buy oat milk",
		Completed: toggled.Completed,
		Date:      "2024-02-02",
		Time:      "",
		CreatedAt: created.CreatedAt,
	}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Errorf("unexpected update result (-want +got):\n%s", diff)
	}

	list := store.List()
	if list[0].ID != other.ID || list[1].ID != created.ID {
		t.Error("update must keep the task's position")
	}
	if diff := cmp.Diff(list, persisted(t, slot)); diff != "" {
		t.Errorf("slot differs from memory (-memory +slot):\n%s", diff)
	}
}

func TestUpdateErrors(t *testing.T) {
	store, slot := newTestStore(t, "")
	created, _ := store.Create("Keep me", "", "")
	writes := slot.Writes
	before := store.List()

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Update("nope", "x", "", "")
		var nf *types.NotFoundError
		if !errors.As(err, &nf) || nf.ID != "nope" {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := store.Update(created.ID, "  ", "", "")
		var ve *types.ValidationError
		if !errors.As(err, &ve) || ve.Field != "text" {
			t.Errorf("expected text ValidationError, got %v", err)
		}
	})

	if diff := cmp.Diff(before, store.List()); diff != "" {
		t.Errorf("collection changed (-before +after):\n%s", diff)
	}
	if slot.Writes != writes {
		t.Error("failed updates must not write")
	}
}

func TestUpdateKeepsStoredScheduleLayout(t *testing.T) {
	store, _ := newTestStore(t, `[{"id":"a","text":"Hand edited","date":"01/02/2024","time":"9am"}]`)

	updated, err := store.Update("a", "Hand edited, fixed text", "01/02/2024", "9am")
	if err != nil {
		t.Fatalf("text edit should not revalidate an unchanged schedule: %v", err)
	}
	if updated.Date != "01/02/2024" || updated.Time != "9am" {
		t.Errorf("schedule should be kept as stored: %+v", updated)
	}

	_, err = store.Update("a", "Hand edited", "02/02/2024", "9am")
	var ve *types.ValidationError
	if !errors.As(err, &ve) || ve.Field != "date" {
		t.Errorf("a changed date is still validated, got %v", err)
	}

	cleared, err := store.Update("a", "Hand edited", "", "")
	if err != nil || cleared.Date != "" || cleared.Time != "" {
		t.Errorf("clearing the schedule should succeed: %+v (%v)", cleared, err)
	}
}

func TestToggleCompletedTwiceRestores(t *testing.T) {
	store, _ := newTestStore(t, "")
	a, _ := store.Create("a", "", "")
	_, _ = store.Create("b", "", "")
	before := store.List()

	first, err := store.ToggleCompleted(a.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !first.Completed {
		t.Error("first toggle should complete the task")
	}
	if _, err := store.ToggleCompleted(a.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if diff := cmp.Diff(before, store.List()); diff != "" {
		t.Errorf("double toggle should restore state (-before +after):\n%s", diff)
	}

	if _, err := store.ToggleCompleted("missing"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteTwiceIsNoop(t *testing.T) {
	store, slot := newTestStore(t, "")
	a, _ := store.Create("a", "", "")
	b, _ := store.Create("b", "", "")

	if err := store.Delete(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	writes := slot.Writes
	if err := store.Delete(a.ID); err != nil {
		t.Errorf("second delete should not error: %v", err)
	}
	if slot.Writes != writes {
		t.Error("deleting an unknown id should not write")
	}

	list := store.List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("unexpected collection: %+v", list)
	}
	if diff := cmp.Diff(list, persisted(t, slot)); diff != "" {
		t.Errorf("slot differs from memory (-memory +slot):\n%s", diff)
	}
}

func TestListIsSnapshot(t *testing.T) {
	store, _ := newTestStore(t, "")
	_, _ = store.Create("a", "", "")

	list := store.List()
	list[0].Text = "mutated"

	if store.List()[0].Text != "a" {
		t.Error("List must return a copy")
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	store, slot := newTestStore(t, "")
	a, _ := store.Create("a", "", "")
	before := store.List()
	bytesBefore := slot.Bytes()

	slot.SetWriteError(errors.New("quota exceeded"))

	checks := map[string]func() error{
		"create": func() error { _, err := store.Create("b", "", ""); return err },
		"update": func() error { _, err := store.Update(a.ID, "changed", "", ""); return err },
		"toggle": func() error { _, err := store.ToggleCompleted(a.ID); return err },
		"delete": func() error { return store.Delete(a.ID) },
		"insert": func() error { _, err := store.Insert(types.Task{ID: "imported", Text: "x"}); return err },
	}
	for name, op := range checks {
		t.Run(name, func(t *testing.T) {
			err := op()
			var pe *types.PersistenceError
			if !errors.As(err, &pe) {
				t.Fatalf("expected PersistenceError, got %v", err)
			}
			if !strings.Contains(err.Error(), "quota exceeded") {
				t.Errorf("cause should be kept: %v", err)
			}
			if diff := cmp.Diff(before, store.List()); diff != "" {
				t.Errorf("memory diverged from storage (-before +after):\n%s", diff)
			}
		})
	}

	if string(slot.Bytes()) != string(bytesBefore) {
		t.Error("slot should be unchanged")
	}

	slot.SetWriteError(nil)
	if _, err := store.Create("after recovery", "", ""); err != nil {
		t.Errorf("store should keep working: %v", err)
	}
}

type plainErrorPersister struct{}

func (plainErrorPersister) Load() []types.Task       { return nil }
func (plainErrorPersister) Save([]types.Task) error { return errors.New("disk full") }

func TestSaveErrorsAreWrapped(t *testing.T) {
	store := nanotasks.New(plainErrorPersister{})
	_, err := store.Create("x", "", "")
	if !errors.Is(err, types.ErrPersistence) {
		t.Errorf("expected persistence error, got %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("failed create must not be kept")
	}
}

func TestNewRepairsIDs(t *testing.T) {
	store, _ := newTestStore(t, `[
		{"id":"a","text":"first"},
		{"text":"no id"},
		{"id":"a","text":"dup"},
		{"id":"id-1","text":"taken"}
	]`)

	list := store.List()
	if len(list) != 4 {
		t.Fatalf("all records should be kept, got %d", len(list))
	}
	seen := make(map[string]bool)
	for _, task := range list {
		if task.ID == "" || seen[task.ID] {
			t.Errorf("id %q is missing or repeated", task.ID)
		}
		seen[task.ID] = true
	}
	if list[0].ID != "a" || list[3].ID != "id-1" {
		t.Errorf("valid ids should be untouched: %+v", list)
	}
	if list[1].Text != "no id" || list[2].Text != "dup" {
		t.Error("order should be kept")
	}
}

func TestInsert(t *testing.T) {
	store, _ := newTestStore(t, "")
	existing, _ := store.Create("existing", "", "")

	created := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	task, err := store.Insert(types.Task{ID: "ext-1", Text: " imported ", Completed: true, CreatedAt: created})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	want := types.Task{ID: "ext-1", Text: "imported", Completed: true, CreatedAt: created}
	if diff := cmp.Diff(want, task); diff != "" {
		t.Errorf("unexpected task (-want +got):\n%s", diff)
	}
	if store.List()[0].ID != "ext-1" {
		t.Error("inserted task should be first")
	}

	if _, err := store.Insert(types.Task{ID: existing.ID, Text: "again"}); !errors.Is(err, types.ErrValidation) {
		t.Errorf("duplicate id should be rejected, got %v", err)
	}
	if _, err := store.Insert(types.Task{Text: ""}); !errors.Is(err, types.ErrValidation) {
		t.Errorf("empty text should be rejected, got %v", err)
	}

	generated, err := store.Insert(types.Task{Text: "no id"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if generated.ID == "" || generated.CreatedAt.IsZero() {
		t.Errorf("id and timestamp should be generated: %+v", generated)
	}
}

func TestGetAndResolve(t *testing.T) {
	slot := storage.NewMemorySlot([]byte(`[
		{"id":"abc123","text":"one"},
		{"id":"abd456","text":"two"},
		{"id":"ab","text":"three"}
	]`))
	store := nanotasks.New(storage.NewAdapter(slot))

	if task, err := store.Get("abd456"); err != nil || task.Text != "two" {
		t.Errorf("get failed: %+v %v", task, err)
	}
	if _, err := store.Get("zzz"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{ref: "ab", want: "ab"},
		{ref: "abc", want: "abc123"},
		{ref: "ABD", want: "abd456"},
		{ref: "a", wantErr: types.ErrAmbiguousID},
		{ref: "x", wantErr: types.ErrNotFound},
		{ref: " ", wantErr: types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := store.Resolve(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %s, got %s (%v)", tt.want, got, err)
			}
		})
	}

	_, err := store.Resolve("a")
	var amb *types.AmbiguousIDError
	if !errors.As(err, &amb) || len(amb.Matches) != 3 {
		t.Errorf("expected three matches, got %v", err)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	store, slot := newTestStore(t, "")

	task, err := store.Create("Buy milk", "2024-01-01", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	list := store.List()
	if len(list) != 1 || list[0].Text != "Buy milk" || list[0].Completed {
		t.Fatalf("unexpected list after create: %+v", list)
	}

	if _, err := store.ToggleCompleted(task.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !store.List()[0].Completed {
		t.Error("task should be completed")
	}

	if err := store.Delete(task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("list should be empty")
	}

	// A fresh store over the same slot sees the same state
	reopened := nanotasks.New(storage.NewAdapter(slot))
	if len(reopened.List()) != 0 {
		t.Error("persisted collection should be empty")
	}
}

func TestScenarioReload(t *testing.T) {
	store, slot := newTestStore(t, "")
	_, _ = store.Create("a", "2024-01-01", "09:00")
	b, _ := store.Create("b", "", "")
	_, _ = store.ToggleCompleted(b.ID)

	reopened := nanotasks.New(storage.NewAdapter(slot))
	if diff := cmp.Diff(store.List(), reopened.List()); diff != "" {
		t.Errorf("reloaded collection differs (-saved +loaded):\n%s", diff)
	}
}
