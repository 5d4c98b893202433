package domain

import "context"

// DeparterPort runs the departure engine for one actor. A nil vesselIDs
// slice means every eligible vessel currently in port
type DeparterPort interface {
	Depart(ctx context.Context, actorID string, vesselIDs []int64) (DepartureResult, error)
}

// HistoryPort reads recorded voyage history
type HistoryPort interface {
	DailySummary(ctx context.Context, actorID string, days int) ([]VoyageSummary, error)
}

// RebuyFunc tops up fuel/CO2 mid-run using partial consumption stats.
// Injected by the scheduler so the engine stays free of pilot wiring
type RebuyFunc func(ctx context.Context, actorID string, stats PartialStats)
