// Package repo provides the ClickHouse voyage history repository
package repo

import (
	"context"
	"time"

	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/store"
	"shipmate/internal/services/fleet/domain"
)

// Storage defines the voyage history repository
type Storage interface {
	InsertTrips(ctx context.Context, actorID string, trips []domain.Trip) error
	DailySummary(ctx context.Context, actorID string, days int) ([]domain.VoyageSummary, error)
}

type ch struct{ c store.Clickhouse }

// NewCH constructs the voyage repo over a clickhouse seam
func NewCH(c store.Clickhouse) Storage { return &ch{c: c} }

// InsertTrips appends completed departures to the voyages table.
// Column order must match the table DDL
func (r *ch) InsertTrips(ctx context.Context, actorID string, trips []domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []any{
			actorID,
			t.VesselID,
			t.VesselName,
			t.Destination,
			t.RouteName,
			t.Income,
			t.HarborFee,
			t.FuelUsed,
			t.CO2Used,
			t.CargoLoaded,
			t.Distance,
			t.Duration,
			t.Speed,
			t.Guards,
			t.HighFee,
			t.DepartedAt,
		})
	}
	if err := r.c.Insert(ctx, "voyages", rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "insert voyages")
	}
	return nil
}

// DailySummary aggregates trips per day over the trailing window
func (r *ch) DailySummary(ctx context.Context, actorID string, days int) ([]domain.VoyageSummary, error) {
	if days <= 0 {
		days = 7
	}
	const q = `
		SELECT
			toStartOfDay(departed_at) AS day,
			count()                   AS trips,
			sum(income)               AS revenue,
			sum(harbor_fee)           AS harbor_fee,
			sum(fuel_used)            AS fuel_used
		FROM voyages
		WHERE actor_id = ? AND departed_at >= now() - INTERVAL ? DAY
		GROUP BY day
		ORDER BY day DESC`

	rows, err := r.c.Query(ctx, q, actorID, days)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "voyage summary")
	}
	defer rows.Close()

	var out []domain.VoyageSummary
	for rows.Next() {
		var (
			day       time.Time
			trips     uint64
			rev, fee  float64
			fuelSpent float64
		)
		if err := rows.Scan(&day, &trips, &rev, &fee, &fuelSpent); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan voyage summary")
		}
		out = append(out, domain.VoyageSummary{
			Day: day, Trips: trips, Revenue: rev, HarborFee: fee, FuelUsed: fuelSpent,
		})
	}
	return out, rows.Err()
}
