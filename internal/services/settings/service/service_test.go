package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shipmate/internal/core/actor"
	"shipmate/internal/platform/testkit"
)

func TestProfileLoading(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	profile := `
min_fuel_floor: 35
speed_pct: 80
auto_depart: false
`
	if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := New(actor.NewRegistry(), nil, nil, Config{ProfilePath: path})
	p := svc.Profile()
	if p.MinFuelFloor != 35 || p.SpeedPct != 80 || p.AutoDepart {
		t.Fatalf("profile not applied: %+v", p)
	}
	// untouched keys keep compiled-in defaults
	if p.HighFeeRatio != actor.DefaultSettings().HighFeeRatio {
		t.Fatalf("default lost: %+v", p)
	}
}

func TestProfileMissingFallsBack(t *testing.T) {
	t.Parallel()

	svc := New(actor.NewRegistry(), nil, nil, Config{ProfilePath: "/does/not/exist.yaml"})
	if svc.Profile() != actor.DefaultSettings() {
		t.Fatal("missing profile must fall back to defaults")
	}
}

func TestProfileInvalidValuesRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	// speed over 100 violates validation, whole profile is discarded
	if err := os.WriteFile(path, []byte("speed_pct: 250\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := New(actor.NewRegistry(), nil, nil, Config{ProfilePath: path})
	if svc.Profile() != actor.DefaultSettings() {
		t.Fatal("invalid profile must fall back to defaults")
	}
}

func TestUpdateValidatesAndStamps(t *testing.T) {
	t.Parallel()

	reg := actor.NewRegistry()
	reg.GetOrCreate("a1", actor.DefaultSettings())
	svc := New(reg, nil, nil, Config{})

	bad := actor.DefaultSettings()
	bad.SpeedPct = 0
	testkit.MustErr(t, svc.Update(context.Background(), "a1", bad))

	good := actor.DefaultSettings()
	good.MinFuelFloor = 42
	testkit.MustNoErr(t, svc.Update(context.Background(), "a1", good))

	got, err := svc.Get(context.Background(), "a1")
	testkit.MustNoErr(t, err)
	if got.MinFuelFloor != 42 {
		t.Fatalf("settings not stamped: %+v", got)
	}
}

func TestUpdateUnknownActor(t *testing.T) {
	t.Parallel()

	svc := New(actor.NewRegistry(), nil, nil, Config{})
	testkit.MustErr(t, svc.Update(context.Background(), "nobody", actor.DefaultSettings()))
}

func TestHydrateWithoutStorageUsesProfile(t *testing.T) {
	t.Parallel()

	reg := actor.NewRegistry()
	svc := New(reg, nil, nil, Config{})

	set, err := svc.Hydrate(context.Background(), "a1")
	testkit.MustNoErr(t, err)
	if set != actor.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", set)
	}
	if _, ok := reg.Get("a1"); !ok {
		t.Fatal("hydrate must create the actor")
	}
}
