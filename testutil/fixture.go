// Package testutil provides a canned task collection and store builders for tests.
package testutil

import (
	_ "embed"
	"testing"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

//go:embed testdata/tasks.json
var fixtureJSON []byte

// FixtureData provides typed access to the fixture collection
type FixtureData struct {
	Standup     types.Task // Pending, due with date and time, newest
	PayRent     types.Task // Completed, date only
	WaterPlants types.Task // Pending, no schedule, emoji in text
	CallMom     types.Task // Completed, date and time
	BuyMilk     types.Task // Pending, date only, markup characters in text
	ReadBook    types.Task // Pending, time without date, quotes in text, oldest

	// All tasks in collection order (newest first)
	Tasks []types.Task

	// All tasks by id
	ByID map[string]types.Task
}

// Fixture decodes the canned collection
func Fixture(t testing.TB) *FixtureData {
	t.Helper()

	tasks, err := storage.Decode(fixtureJSON)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	if len(tasks) != 6 {
		t.Fatalf("fixture should hold 6 tasks, got %d", len(tasks))
	}

	data := &FixtureData{
		Standup:     tasks[0],
		PayRent:     tasks[1],
		WaterPlants: tasks[2],
		CallMom:     tasks[3],
		BuyMilk:     tasks[4],
		ReadBook:    tasks[5],
		Tasks:       tasks,
		ByID:        make(map[string]types.Task, len(tasks)),
	}
	for _, task := range tasks {
		data.ByID[task.ID] = task
	}
	return data
}

// FixtureBytes returns the raw persisted form of the fixture
func FixtureBytes() []byte {
	return append([]byte(nil), fixtureJSON...)
}

// LoadFixture returns a store over an in-memory slot pre-populated with the
// fixture, together with the slot and the typed fixture data
func LoadFixture(t testing.TB, opts ...nanotasks.Option) (*nanotasks.Store, *storage.MemorySlot, *FixtureData) {
	t.Helper()
	slot := storage.NewMemorySlot(FixtureBytes())
	store := nanotasks.New(storage.NewAdapter(slot), opts...)
	return store, slot, Fixture(t)
}

// NewStore returns a store over an empty in-memory slot
func NewStore(t testing.TB, opts ...nanotasks.Option) (*nanotasks.Store, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot(nil)
	t.Cleanup(func() { _ = slot.Close() })
	return nanotasks.New(storage.NewAdapter(slot), opts...), slot
}

// IDs returns the ids of tasks in order
func IDs(tasks []types.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

// AssertIDs fails the test when tasks do not have exactly the wanted ids, in order
func AssertIDs(t testing.TB, tasks []types.Task, want ...string) {
	t.Helper()
	got := IDs(tasks)
	if len(got) != len(want) {
		t.Errorf("expected %d tasks %v, got %d %v", len(want), want, len(got), got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: expected id %s, got %s (all: %v)", i, want[i], got[i], got)
		}
	}
}
