package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

func TestFixture(t *testing.T) {
	data := Fixture(t)

	if data.Standup.Text != "Prepare standup notes" || data.Standup.Time != "09:15" {
		t.Errorf("unexpected first task: %+v", data.Standup)
	}
	if !data.PayRent.Completed || !data.CallMom.Completed {
		t.Error("PayRent and CallMom should be completed")
	}
	if data.ReadBook.Date != "" || data.ReadBook.Time == "" {
		t.Errorf("ReadBook should have a time without a date: %+v", data.ReadBook)
	}
	if len(data.ByID) != len(data.Tasks) {
		t.Error("ids should be unique")
	}

	counts := nanotasks.Count(data.Tasks)
	if diff := cmp.Diff(types.Counts{All: 6, Completed: 2, Pending: 4}, counts); diff != "" {
		t.Errorf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestFixtureRoundTrip(t *testing.T) {
	data := Fixture(t)

	encoded, err := storage.Encode(data.Tasks)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	back, err := storage.Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(data.Tasks, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFixture(t *testing.T) {
	store, slot, data := LoadFixture(t)

	if diff := cmp.Diff(data.Tasks, store.List()); diff != "" {
		t.Errorf("store should hold the fixture (-want +got):\n%s", diff)
	}
	AssertIDs(t, nanotasks.Project(store.List(), types.FilterCompleted), data.PayRent.ID, data.CallMom.ID)

	if err := store.Delete(data.BuyMilk.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if slot.Writes != 1 {
		t.Errorf("expected one write, got %d", slot.Writes)
	}
}

func TestNewStore(t *testing.T) {
	store, slot := NewStore(t)
	if len(store.List()) != 0 || slot.Bytes() != nil {
		t.Error("store should start empty")
	}
}
