package actor

import (
	"testing"
	"time"
)

func newState(t *testing.T) *State {
	t.Helper()
	return NewRegistry().GetOrCreate("a1", DefaultSettings())
}

func TestLockSingleHolder(t *testing.T) {
	t.Parallel()

	st := newState(t)
	if !st.TryAcquire(LockDepart) {
		t.Fatal("first acquire refused")
	}
	if st.TryAcquire(LockDepart) {
		t.Fatal("second acquire succeeded while held")
	}
	if !st.Held(LockDepart) {
		t.Fatal("lock not reported held")
	}

	// other names are independent
	if !st.TryAcquire(LockFuelPurchase) {
		t.Fatal("unrelated lock refused")
	}

	st.Release(LockDepart)
	if st.Held(LockDepart) {
		t.Fatal("lock still held after release")
	}
	if !st.TryAcquire(LockDepart) {
		t.Fatal("re-acquire refused after release")
	}
}

func TestReleaseFreeLockIsNoop(t *testing.T) {
	t.Parallel()

	st := newState(t)
	st.Release(LockRepair)
	if !st.TryAcquire(LockRepair) {
		t.Fatal("acquire refused after no-op release")
	}
}

func TestLockSnapshot(t *testing.T) {
	t.Parallel()

	st := newState(t)
	st.TryAcquire(LockDepart)
	st.TryAcquire(LockCO2Purchase)

	snap := st.Locks()
	want := LockSnapshot{Depart: true, CO2Purchase: true}
	if snap != want {
		t.Fatalf("snapshot %+v, want %+v", snap, want)
	}
}

func TestFuelFailurePurgeOnHigherReading(t *testing.T) {
	t.Parallel()

	st := newState(t)
	now := time.Now()
	st.RecordFuelFailure(101, 30, 45, now)
	st.RecordFuelFailure(102, 30, 80, now)
	if st.FuelFailureCount() != 2 {
		t.Fatalf("cached %d failures, want 2", st.FuelFailureCount())
	}

	// same level keeps every negative
	st.SetBunker(Bunker{Fuel: 30})
	if st.FuelFailureCount() != 2 {
		t.Fatal("cache purged on equal fuel reading")
	}

	// fuel only rises through a purchase, so one higher reading voids all
	st.SetBunker(Bunker{Fuel: 60})
	if st.FuelFailureCount() != 0 {
		t.Fatalf("cache kept %d entries after higher reading", st.FuelFailureCount())
	}
	if _, ok := st.FuelFailureFor(101); ok {
		t.Fatal("stale failure still retrievable")
	}
}

func TestFuelFailureFor(t *testing.T) {
	t.Parallel()

	st := newState(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.RecordFuelFailure(7, 12.5, 44, at)

	f, ok := st.FuelFailureFor(7)
	if !ok {
		t.Fatal("recorded failure not found")
	}
	if f.FuelAtCheck != 12.5 || f.RequiredFuel != 44 || !f.At.Equal(at) {
		t.Fatalf("unexpected failure %+v", f)
	}
	if _, ok := st.FuelFailureFor(8); ok {
		t.Fatal("unknown vessel reported cached")
	}
}

func TestRegistryGetOrCreate(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if _, ok := reg.Get("a1"); ok {
		t.Fatal("empty registry returned an actor")
	}

	defaults := DefaultSettings()
	a := reg.GetOrCreate("a1", defaults)
	if a.ID() != "a1" {
		t.Fatalf("id %q, want a1", a.ID())
	}
	if a.Settings() != defaults {
		t.Fatal("defaults not stamped")
	}

	// second call returns the same state, later defaults ignored
	changed := defaults
	changed.MinFuelFloor = 999
	if reg.GetOrCreate("a1", changed) != a {
		t.Fatal("GetOrCreate created a second state")
	}
	if a.Settings().MinFuelFloor == 999 {
		t.Fatal("existing settings overwritten")
	}

	ids := reg.IDs()
	if len(ids) != 1 || ids[0] != "a1" {
		t.Fatalf("ids %v, want [a1]", ids)
	}
}

func TestBunkerKnown(t *testing.T) {
	t.Parallel()

	st := newState(t)
	if _, ok := st.Bunker(); ok {
		t.Fatal("fresh state claims a bunker reading")
	}
	st.SetBunker(Bunker{Fuel: 10, Cash: 500})
	b, ok := st.Bunker()
	if !ok || b.Fuel != 10 || b.Cash != 500 {
		t.Fatalf("bunker %+v known=%v", b, ok)
	}
}
