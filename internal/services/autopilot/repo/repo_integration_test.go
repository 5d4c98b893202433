//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"shipmate/internal/core/actor"
	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/store"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestSnapshotRepo_RoundTrip_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "shipmate-snapshot-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	_, err = st.PG.Exec(ctx, `
		CREATE TABLE actor_snapshots (
			actor_id      text PRIMARY KEY,
			fuel          double precision NOT NULL,
			co2           double precision NOT NULL,
			cash          double precision NOT NULL,
			max_fuel      double precision NOT NULL,
			max_co2       double precision NOT NULL,
			fuel_price    double precision NOT NULL,
			co2_price     double precision NOT NULL,
			repair_count  int NOT NULL,
			drydock_count int NOT NULL,
			updated_at    timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	r := NewPG().Bind(st.PG)

	if _, err := r.Load(ctx, "nobody"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing actor: got %v, want not found", err)
	}

	want := Snapshot{
		Bunker:       actor.Bunker{Fuel: 310.5, CO2: 120, Cash: 987654.25, MaxFuel: 1000, MaxCO2: 400},
		Prices:       actor.Prices{Fuel: 355, CO2: 118},
		RepairCount:  3,
		DrydockCount: 1,
	}
	if err := r.Save(ctx, "a1", want); err != nil {
		t.Fatalf("first save: %v", err)
	}
	got, err := r.Load(ctx, "a1")
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// refresh overwrites the same row
	want.Bunker.Fuel = 120
	want.RepairCount = 0
	if err := r.Save(ctx, "a1", want); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = r.Load(ctx, "a1")
	if err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
	if got.Bunker.Fuel != 120 || got.RepairCount != 0 {
		t.Fatalf("overwrite not applied: %+v", got)
	}
}
