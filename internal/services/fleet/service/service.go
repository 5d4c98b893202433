// Package service implements the vessel departure engine
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	"shipmate/internal/core/cargo"
	"shipmate/internal/modkit"
	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/logger"
	"shipmate/internal/services/fleet/domain"
	"shipmate/internal/services/fleet/repo"
)

// ChunkSize is how many vessels are processed between incremental
// batch notifications and mid-run rebuy passes
const ChunkSize = 20

// Upstream is the slice of the game API the engine needs
type Upstream interface {
	Vessels(ctx context.Context) ([]shipping.Vessel, error)
	AssignedPorts(ctx context.Context) ([]shipping.Port, error)
	BunkerState(ctx context.Context) (shipping.Bunker, error)
	AutoPrice(ctx context.Context, vesselID, routeID int64) (map[string]float64, error)
	Depart(ctx context.Context, vesselID int64, speed float64, guards bool) (shipping.DepartResult, error)
}

// Config for the departure engine
type Config struct {
	ChunkSize int
	DryRun    bool
}

// Service implements domain.DeparterPort and domain.HistoryPort
type Service struct {
	up      Upstream
	reg     *actor.Registry
	history repo.Storage
	rebuy   domain.RebuyFunc
	emit    modkit.Broadcaster
	cfg     Config
	now     func() time.Time
}

// New constructs the engine. history, rebuy, and emit may be nil for
// headless or storage-free operation
func New(up Upstream, reg *actor.Registry, history repo.Storage, rebuy domain.RebuyFunc, emit modkit.Broadcaster, cfg Config) *Service {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = ChunkSize
	}
	if emit == nil {
		emit = func(string, string, any) {}
	}
	if rebuy == nil {
		rebuy = func(context.Context, string, domain.PartialStats) {}
	}
	return &Service{up: up, reg: reg, history: history, rebuy: rebuy, emit: emit, cfg: cfg, now: time.Now}
}

// WithClock overrides the clock, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// DailySummary implements domain.HistoryPort
func (s *Service) DailySummary(ctx context.Context, actorID string, days int) ([]domain.VoyageSummary, error) {
	if s.history == nil {
		return nil, perr.Unavailablef("voyage history storage is not configured")
	}
	return s.history.DailySummary(ctx, actorID, days)
}

// groupKey buckets vessels that compete for the same demand pool
type groupKey struct {
	dest    string
	capType string
}

// Depart implements domain.DeparterPort. A nil vesselIDs means every
// eligible vessel in port. The returned error is non-nil only when the
// upstream is unreachable and the whole run was aborted
func (s *Service) Depart(ctx context.Context, actorID string, vesselIDs []int64) (domain.DepartureResult, error) {
	st, ok := s.reg.Get(actorID)
	if !ok {
		return domain.DepartureResult{}, perr.NotFoundf("unknown actor %q", actorID)
	}

	if !st.TryAcquire(actor.LockDepart) {
		return domain.DepartureResult{Reason: domain.ReasonInProgress}, nil
	}
	defer func() {
		st.Release(actor.LockDepart)
		s.emit(actorID, modkit.EventLocks, st.Locks())
	}()

	ctx = logger.WithActor(ctx, actorID)
	ctx = logger.WithRun(ctx, uuid.NewString())
	log := logger.C(ctx)

	set := st.Settings()

	bk, err := s.up.BunkerState(ctx)
	if err != nil {
		return domain.DepartureResult{}, perr.WithOp(err, "fleet.depart.bunker")
	}
	st.SetBunker(actor.Bunker{Fuel: bk.Fuel, CO2: bk.CO2, Cash: bk.Cash, MaxFuel: bk.MaxFuel, MaxCO2: bk.MaxCO2})
	s.emit(actorID, modkit.EventBunker, bk)

	if bk.Fuel < set.MinFuelFloor {
		log.Warn().Float64("fuel", bk.Fuel).Float64("floor", set.MinFuelFloor).Msg("fuel below safety floor, departure aborted")
		return domain.DepartureResult{Reason: domain.ReasonInsufficientFuel}, nil
	}

	vessels, err := s.up.Vessels(ctx)
	if err != nil {
		return domain.DepartureResult{}, perr.WithOp(err, "fleet.depart.vessels")
	}
	ports, err := s.up.AssignedPorts(ctx)
	if err != nil {
		return domain.DepartureResult{}, perr.WithOp(err, "fleet.depart.ports")
	}
	portByCode := make(map[string]shipping.Port, len(ports))
	for _, p := range ports {
		portByCode[p.Code] = p
	}

	res := domain.DepartureResult{Success: true}

	// the fuel snapshot is fixed for the whole run; only the upstream
	// decrements it, via departures we do not simulate
	fuelSnapshot := bk.Fuel

	groups := make(map[groupKey][]shipping.Vessel)
	wanted := idSet(vesselIDs)
	for _, v := range vessels {
		if v.Status != shipping.StatusPort || v.IsParked {
			continue
		}
		if wanted != nil && !wanted[v.ID] {
			continue
		}
		dest := cargo.NextDestination(v)
		if dest == "" {
			res.Failed = append(res.Failed, domain.FailedVessel{
				VesselID: v.ID, Name: v.Name, Reason: "No route destination assigned",
			})
			continue
		}
		k := groupKey{dest: dest, capType: v.CapacityType}
		groups[k] = append(groups[k], v)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dest != keys[j].dest {
			return keys[i].dest < keys[j].dest
		}
		return keys[i].capType < keys[j].capType
	})

	run := &runState{actorID: actorID, chunk: s.cfg.ChunkSize}

	for _, k := range keys {
		vs := groups[k]
		cargo.SortByCapacityDesc(vs)

		for _, v := range vs {
			if err := s.processVessel(ctx, st, set, k, v, portByCode, fuelSnapshot, run, &res); err != nil {
				// upstream unreachable, abort but keep what we have
				res.Success = false
				return res, err
			}
			if run.processed%run.chunk == 0 {
				s.flushChunk(ctx, run, &res)
			}
		}
	}

	// remaining buffered results ride along with the final event rather
	// than a trailing incremental flush
	if run.processed > 0 {
		s.rebuy(ctx, actorID, domain.PartialStats{FuelUsed: res.TotalFuelUsed, CO2Used: res.TotalCO2Used})
	}

	s.recordHistory(ctx, actorID, res.Departed, log)

	// observers must see fresh bunker and vessel counts before the final
	// result lands
	if fresh, err := s.up.BunkerState(ctx); err == nil {
		st.SetBunker(actor.Bunker{Fuel: fresh.Fuel, CO2: fresh.CO2, Cash: fresh.Cash, MaxFuel: fresh.MaxFuel, MaxCO2: fresh.MaxCO2})
		s.emit(actorID, modkit.EventBunker, fresh)
	} else {
		log.Warn().Err(err).Msg("post-run bunker refresh failed")
	}
	s.emit(actorID, modkit.EventVesselCount, map[string]int{"in_port": countInPort(vessels) - len(res.Departed)})
	s.emit(actorID, modkit.EventDepartureResult, res)

	log.Info().
		Int("departed", len(res.Departed)).
		Int("failed", len(res.Failed)).
		Int("warnings", len(res.Warnings)).
		Float64("revenue", res.TotalRevenue).
		Msg("departure run complete")

	return res, nil
}

// runState carries the per-run chunk buffers
type runState struct {
	actorID   string
	chunk     int
	processed int

	batchDeparted []domain.Trip
	batchFailed   []domain.FailedVessel
}

func (s *Service) processVessel(
	ctx context.Context,
	st *actor.State,
	set actor.Settings,
	k groupKey,
	v shipping.Vessel,
	portByCode map[string]shipping.Port,
	fuelSnapshot float64,
	run *runState,
	res *domain.DepartureResult,
) error {
	run.processed++

	fail := func(reason string) {
		f := domain.FailedVessel{VesselID: v.ID, Name: v.Name, Destination: k.dest, Reason: reason}
		res.Failed = append(res.Failed, f)
		run.batchFailed = append(run.batchFailed, f)
	}

	port, ok := portByCode[k.dest]
	if !ok {
		fail(fmt.Sprintf("No assigned-port demand record for %s", k.dest))
		return nil
	}

	remaining := cargo.RemainingDemand(port, v.CapacityType)
	if remaining <= 0 {
		fail(fmt.Sprintf("No remaining demand at %s", k.dest))
		return nil
	}

	// prices are destination and route specific, always a fresh query
	prices, err := s.up.AutoPrice(ctx, v.ID, v.RouteID)
	if err != nil {
		if perr.Retryable(err) {
			return err
		}
		fail(perr.WireFrom(err).Message)
		return nil
	}
	if cargo.AllPricesZero(prices, v.CapacityType) {
		fail(fmt.Sprintf("CRITICAL: every cargo price at %s is zero, departure would lose money", k.dest))
		return nil
	}

	capTotal := cargo.TotalCapacity(v)
	load := cargo.CargoToLoad(remaining, capTotal)
	util := cargo.Utilization(load, capTotal)
	if util*100 < set.MinCargoUtilizationPct {
		fail(fmt.Sprintf("Utilization %.0f%% below minimum %.0f%%", util*100, set.MinCargoUtilizationPct))
		return nil
	}

	// cached negative fuel results short-circuit until a higher reading
	// clears them
	if ff, cached := st.FuelFailureFor(v.ID); cached && fuelSnapshot <= ff.FuelAtCheck {
		fail(fmt.Sprintf("Insufficient fuel: need %.1ft, have %.1ft", ff.RequiredFuel, fuelSnapshot))
		return nil
	}

	need := cargo.RequiredFuel(v, set.SpeedPct)
	if fuelSnapshot < need {
		st.RecordFuelFailure(v.ID, fuelSnapshot, need, s.now())
		fail(fmt.Sprintf("Insufficient fuel: need %.1ft, have %.1ft", need, fuelSnapshot))
		return nil
	}

	speed := cargo.ResolveSpeed(v, set.SpeedPct)

	if s.cfg.DryRun {
		res.Planned = append(res.Planned, domain.Planned{
			VesselID: v.ID, Name: v.Name, Destination: k.dest,
			CargoToLoad: load, RequiredFuel: need, Speed: speed,
		})
		return nil
	}

	dr, err := s.up.Depart(ctx, v.ID, speed, set.Guards)
	if err != nil {
		if perr.Retryable(err) {
			return err
		}
		fail(perr.WireFrom(err).Message)
		return nil
	}

	s.classify(v, k.dest, dr, set, run, res)
	return nil
}

// classify sorts one upstream departure response into the result buckets
func (s *Service) classify(v shipping.Vessel, dest string, dr shipping.DepartResult, set actor.Settings, run *runState, res *domain.DepartureResult) {
	if !dr.Success {
		msg := dr.ErrorMessage
		if msg == "" {
			msg = dr.Error
		}
		switch {
		case shipping.IsAlreadyDeparted(msg):
			// benign race, another process won
			f := domain.FailedVessel{VesselID: v.ID, Name: v.Name, Destination: dest, Reason: "Already departed"}
			res.Failed = append(res.Failed, f)
			run.batchFailed = append(run.batchFailed, f)
		case shipping.MentionsCO2(msg):
			// known false negative: the vessel actually departed, but the
			// response carries no usable stats, so record nothing
		default:
			f := domain.FailedVessel{VesselID: v.ID, Name: v.Name, Destination: dest, Reason: msg}
			res.Failed = append(res.Failed, f)
			run.batchFailed = append(run.batchFailed, f)
		}
		return
	}

	switch {
	case dr.Income == 0 && dr.FuelUsed == 0:
		// no income, no burn: the call produced no real effect
		f := domain.FailedVessel{VesselID: v.ID, Name: v.Name, Destination: dest, Reason: "Silent failure: departure had no effect"}
		res.Failed = append(res.Failed, f)
		run.batchFailed = append(run.batchFailed, f)
	case dr.Income == 0 && dr.HarborFee == 0:
		// demand was eaten mid-batch by concurrent consumption
		res.Warnings = append(res.Warnings, domain.FailedVessel{
			VesselID: v.ID, Name: v.Name, Destination: dest,
			Reason: "Demand exhausted before loading",
		})
	default:
		trip := domain.Trip{
			VesselID:    v.ID,
			VesselName:  dr.VesselName,
			Destination: dr.Destination,
			RouteName:   dr.RouteName,
			Income:      dr.Income,
			HarborFee:   dr.HarborFee,
			FuelUsed:    dr.FuelUsed,
			CO2Used:     dr.CO2Used,
			CargoLoaded: dr.CargoLoaded,
			Distance:    dr.Distance,
			Duration:    dr.Duration,
			Speed:       dr.Speed,
			Guards:      dr.Guards,

			TeuDry:          dr.TeuDry,
			TeuRefrigerated: dr.TeuRefrigerated,
			FuelCargo:       dr.FuelCargo,
			CrudeCargo:      dr.CrudeCargo,

			DepartedAt: s.now(),
		}
		if dr.Income > 0 && dr.HarborFee/dr.Income > set.HighFeeRatio {
			trip.HighFee = true
			res.HighFee = append(res.HighFee, trip.VesselName)
		}
		res.Departed = append(res.Departed, trip)
		run.batchDeparted = append(run.batchDeparted, trip)

		res.TotalRevenue += dr.Income
		res.TotalFuelUsed += dr.FuelUsed
		res.TotalCO2Used += dr.CO2Used
		res.TotalHarborFees += dr.HarborFee
	}
}

// flushChunk emits an incremental batch event, runs a rebuy pass on the
// partial stats, and clears the chunk buffers. Failures stay on the
// run-level result
func (s *Service) flushChunk(ctx context.Context, run *runState, res *domain.DepartureResult) {
	st, _ := s.reg.Get(run.actorID)
	var bk actor.Bunker
	if st != nil {
		bk, _ = st.Bunker()
	}
	s.emit(run.actorID, modkit.EventDepartureBatch, domain.BatchEvent{
		Departed: run.batchDeparted,
		Failed:   run.batchFailed,
		Fuel:     bk.Fuel,
		CO2:      bk.CO2,
		Cash:     bk.Cash,
	})
	s.rebuy(ctx, run.actorID, domain.PartialStats{FuelUsed: res.TotalFuelUsed, CO2Used: res.TotalCO2Used})
	run.batchDeparted = nil
	run.batchFailed = nil
}

func (s *Service) recordHistory(ctx context.Context, actorID string, trips []domain.Trip, log *logger.Logger) {
	if s.history == nil || len(trips) == 0 {
		return
	}
	if err := s.history.InsertTrips(ctx, actorID, trips); err != nil {
		log.Warn().Err(err).Int("trips", len(trips)).Msg("voyage history insert failed")
	}
}

func idSet(ids []int64) map[int64]bool {
	if ids == nil {
		return nil
	}
	m := make(map[int64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func countInPort(vs []shipping.Vessel) int {
	n := 0
	for _, v := range vs {
		if v.Status == shipping.StatusPort {
			n++
		}
	}
	return n
}
