// Package repo persists last-seen actor snapshots to Postgres
package repo

import (
	"context"

	"shipmate/internal/core/actor"
	"shipmate/internal/modkit/repokit"
	perr "shipmate/internal/platform/errors"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Snapshot is the last-seen view of an actor's live numbers. Saved on every
// badge refresh so observers reconnecting after a restart get answers
// without waiting for the next upstream round trip
type Snapshot struct {
	Bunker       actor.Bunker
	Prices       actor.Prices
	RepairCount  int
	DrydockCount int
}

// Storage defines the snapshot repository
type Storage interface {
	Load(ctx context.Context, actorID string) (Snapshot, error)
	Save(ctx context.Context, actorID string, s Snapshot) error
}

// Load implements Storage. Returns ErrorCodeNotFound when the actor has
// never been refreshed
func (r *pg) Load(ctx context.Context, actorID string) (Snapshot, error) {
	var s Snapshot
	row := r.q.QueryRow(ctx, `
		SELECT fuel, co2, cash, max_fuel, max_co2,
		       fuel_price, co2_price, repair_count, drydock_count
		FROM actor_snapshots WHERE actor_id = $1`, actorID)
	err := row.Scan(
		&s.Bunker.Fuel, &s.Bunker.CO2, &s.Bunker.Cash,
		&s.Bunker.MaxFuel, &s.Bunker.MaxCO2,
		&s.Prices.Fuel, &s.Prices.CO2,
		&s.RepairCount, &s.DrydockCount,
	)
	if err != nil {
		return Snapshot{}, perr.NotFoundf("no snapshot for actor %q", actorID)
	}
	return s, nil
}

// Save implements Storage
func (r *pg) Save(ctx context.Context, actorID string, s Snapshot) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO actor_snapshots
			(actor_id, fuel, co2, cash, max_fuel, max_co2,
			 fuel_price, co2_price, repair_count, drydock_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (actor_id) DO UPDATE SET
			fuel = EXCLUDED.fuel, co2 = EXCLUDED.co2, cash = EXCLUDED.cash,
			max_fuel = EXCLUDED.max_fuel, max_co2 = EXCLUDED.max_co2,
			fuel_price = EXCLUDED.fuel_price, co2_price = EXCLUDED.co2_price,
			repair_count = EXCLUDED.repair_count,
			drydock_count = EXCLUDED.drydock_count,
			updated_at = now()`,
		actorID,
		s.Bunker.Fuel, s.Bunker.CO2, s.Bunker.Cash, s.Bunker.MaxFuel, s.Bunker.MaxCO2,
		s.Prices.Fuel, s.Prices.CO2, s.RepairCount, s.DrydockCount,
	)
	if err != nil {
		return perr.FromPG(err, "save actor snapshot")
	}
	return nil
}
