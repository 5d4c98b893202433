// Package service implements the dual-interval scheduler and the pilots it
// drives. Two fixed-delay loops per actor: the fast loop keeps badges live
// and runs the money-critical pilots, the slow loop handles the leisurely
// ones. Neither loop may ever die on error
package service

import (
	"context"
	"runtime/debug"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	"shipmate/internal/core/readthrough"
	"shipmate/internal/modkit"
	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/logger"
	"shipmate/internal/services/autopilot/repo"
	fleetdomain "shipmate/internal/services/fleet/domain"
)

// Interval defaults observed in live operation
const (
	DefaultFastInterval = 60 * time.Second
	DefaultSlowInterval = 5 * time.Minute
	DefaultIndexTTL     = 20 * time.Second
)

// Upstream is the slice of the game API the pilots need
type Upstream interface {
	Index(ctx context.Context) (shipping.GameIndex, error)
	BunkerState(ctx context.Context) (shipping.Bunker, error)
	PurchaseFuel(ctx context.Context, amount, price float64) (shipping.PurchaseResult, error)
	PurchaseCO2(ctx context.Context, amount, price float64) (shipping.PurchaseResult, error)
	RepairVessels(ctx context.Context) (int, error)
	DrydockVessels(ctx context.Context) (int, error)
	Campaigns(ctx context.Context) ([]shipping.Campaign, error)
	RenewCampaign(ctx context.Context, category string) error
	CoopStatus(ctx context.Context) (shipping.CoopStatus, error)
	Contribute(ctx context.Context, amount float64) (float64, error)
	StockQuotes(ctx context.Context) ([]shipping.StockQuote, error)
	TradeStock(ctx context.Context, symbol string, qty int64) error
	Staff(ctx context.Context) (shipping.StaffSummary, error)
	RaiseMorale(ctx context.Context) error
	Hijackings(ctx context.Context) ([]shipping.Hijacking, error)
	NegotiateHijack(ctx context.Context, id int64) error
}

// Config for the scheduler
type Config struct {
	FastInterval time.Duration
	SlowInterval time.Duration
	IndexTTL     time.Duration
}

// Service runs the scheduler loops and implements the pilots
type Service struct {
	up       Upstream
	reg      *actor.Registry
	departer fleetdomain.DeparterPort
	emit     modkit.Broadcaster
	cfg      Config

	index *readthrough.Cache[shipping.GameIndex]
	coop  *readthrough.Cache[shipping.CoopStatus]

	// snap is optional; nil means snapshots are neither saved nor restored
	snap repo.Storage

	sleep func(ctx context.Context, d time.Duration)
	pr    *message.Printer
}

// New constructs the scheduler. departer may be nil to disable auto-depart
// entirely; emit may be nil for headless operation
func New(up Upstream, reg *actor.Registry, departer fleetdomain.DeparterPort, emit modkit.Broadcaster, cfg Config) *Service {
	if cfg.FastInterval <= 0 {
		cfg.FastInterval = DefaultFastInterval
	}
	if cfg.SlowInterval <= 0 {
		cfg.SlowInterval = DefaultSlowInterval
	}
	if cfg.IndexTTL <= 0 {
		cfg.IndexTTL = DefaultIndexTTL
	}
	if emit == nil {
		emit = func(string, string, any) {}
	}
	s := &Service{
		up:       up,
		reg:      reg,
		departer: departer,
		emit:     emit,
		cfg:      cfg,
		pr:       message.NewPrinter(language.English),
		sleep: func(ctx context.Context, d time.Duration) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
			}
		},
	}
	s.index = readthrough.New(cfg.IndexTTL, up.Index)
	s.coop = readthrough.New(cfg.IndexTTL, up.CoopStatus)
	return s
}

// WithSleep overrides the re-arm wait, for tests
func (s *Service) WithSleep(fn func(ctx context.Context, d time.Duration)) *Service {
	s.sleep = fn
	return s
}

// WithStorage attaches last-seen snapshot persistence
func (s *Service) WithStorage(st repo.Storage) *Service {
	s.snap = st
	return s
}

// Restore loads the persisted snapshot for one actor, if any, so observers
// reconnecting after a restart see numbers before the first refresh lands
func (s *Service) Restore(ctx context.Context, actorID string) {
	if s.snap == nil {
		return
	}
	st, ok := s.reg.Get(actorID)
	if !ok {
		return
	}
	if (st.Prices() != actor.Prices{}) {
		// already bootstrapped from a live fetch, keep the fresh numbers
		return
	}
	snap, err := s.snap.Load(ctx, actorID)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			logger.C(ctx).Warn().Err(err).Str("actor", actorID).Msg("snapshot restore failed")
		}
		return
	}
	st.SetBunker(snap.Bunker)
	st.SetPrices(snap.Prices)
	st.SetCounts(snap.RepairCount, snap.DrydockCount)
}

// Rebuy satisfies fleet's RebuyFunc so the departure engine can top up
// bunker mid-run from partial consumption stats
func (s *Service) Rebuy(ctx context.Context, actorID string, _ fleetdomain.PartialStats) {
	st, ok := s.reg.Get(actorID)
	if !ok {
		return
	}
	s.rebuyPass(ctx, st)
}

// RunFast drives the 60 s loop for one actor until ctx ends. Fixed-delay
// re-arm: a slow tick pushes the next tick out rather than overlapping it
func (s *Service) RunFast(ctx context.Context, actorID string) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.TickFast(ctx, actorID)
		s.sleep(ctx, s.cfg.FastInterval)
	}
}

// RunSlow drives the 5 min loop for one actor until ctx ends
func (s *Service) RunSlow(ctx context.Context, actorID string) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.TickSlow(ctx, actorID)
		s.sleep(ctx, s.cfg.SlowInterval)
	}
}

// TickFast is one fast-loop iteration, exported so tests can single-step
func (s *Service) TickFast(ctx context.Context, actorID string) {
	ctx = logger.WithActor(ctx, actorID)
	log := logger.C(ctx)
	defer recoverTick(log, "fast")

	st, ok := s.reg.Get(actorID)
	if !ok {
		return
	}
	if (st.Prices() == actor.Prices{}) {
		// not bootstrapped yet, no-op reschedule
		return
	}

	// badges refresh unconditionally, operators see live numbers even
	// while paused
	idx, err := s.index.Get(ctx)
	if err != nil {
		logTickErr(log, "index refresh", err)
		return
	}
	s.refreshBadges(ctx, st, idx)

	if st.Paused() {
		return
	}

	s.rebuyPass(ctx, st)

	set := st.Settings()
	if set.AutoDepart && s.departer != nil {
		if _, err := s.departer.Depart(ctx, actorID, nil); err != nil {
			logTickErr(log, "auto depart", err)
		}
	}
	if err := s.repairPilot(ctx, st, idx); err != nil {
		logTickErr(log, "repair", err)
	}
	if err := s.drydockPilot(ctx, st, idx); err != nil {
		logTickErr(log, "drydock", err)
	}
	if err := s.hijackPilot(ctx, st); err != nil {
		logTickErr(log, "hijack", err)
	}
	if err := s.campaignPilot(ctx, st, idx); err != nil {
		logTickErr(log, "campaign", err)
	}
}

// TickSlow is one slow-loop iteration, exported so tests can single-step
func (s *Service) TickSlow(ctx context.Context, actorID string) {
	ctx = logger.WithActor(ctx, actorID)
	log := logger.C(ctx)
	defer recoverTick(log, "slow")

	st, ok := s.reg.Get(actorID)
	if !ok || st.Paused() {
		return
	}

	if err := s.coopPilot(ctx, st); err != nil {
		logTickErr(log, "coop", err)
	}
	if err := s.stocksPilot(ctx, st); err != nil {
		logTickErr(log, "stocks", err)
	}
	if err := s.staffPilot(ctx, st); err != nil {
		logTickErr(log, "staff", err)
	}
}

// refreshBadges pushes live counts and bunker numbers to observers and
// stamps them onto actor state. The persisted copy is best effort
func (s *Service) refreshBadges(ctx context.Context, st *actor.State, idx shipping.GameIndex) {
	st.SetBunker(actor.Bunker{
		Fuel: idx.Bunker.Fuel, CO2: idx.Bunker.CO2, Cash: idx.Bunker.Cash,
		MaxFuel: idx.Bunker.MaxFuel, MaxCO2: idx.Bunker.MaxCO2,
	})
	st.SetPrices(actor.Prices{Fuel: idx.Prices.Fuel, CO2: idx.Prices.CO2})
	st.SetCounts(idx.RepairableCount, idx.DrydockDueCount)

	id := st.ID()
	s.emit(id, modkit.EventBunker, idx.Bunker)
	s.emit(id, modkit.EventPrices, idx.Prices)
	s.emit(id, modkit.EventVesselCount, map[string]int{"in_port": countInPort(idx.Vessels)})
	s.emit(id, modkit.EventRepairCount, idx.RepairableCount)
	s.emit(id, modkit.EventDrydockCount, idx.DrydockDueCount)

	if s.snap != nil {
		err := s.snap.Save(ctx, id, repo.Snapshot{
			Bunker:       actor.Bunker{Fuel: idx.Bunker.Fuel, CO2: idx.Bunker.CO2, Cash: idx.Bunker.Cash, MaxFuel: idx.Bunker.MaxFuel, MaxCO2: idx.Bunker.MaxCO2},
			Prices:       actor.Prices{Fuel: idx.Prices.Fuel, CO2: idx.Prices.CO2},
			RepairCount:  idx.RepairableCount,
			DrydockCount: idx.DrydockDueCount,
		})
		if err != nil {
			logger.C(ctx).Warn().Err(err).Msg("snapshot save failed")
		}
	}
}

func recoverTick(log *logger.Logger, loop string) {
	if r := recover(); r != nil {
		log.Error().
			Str("loop", loop).
			Interface("panic", r).
			Bytes("stack", debug.Stack()).
			Msg("tick panicked, loop continues")
	}
}

// logTickErr separates recoverable network noise from real trouble.
// Either way the loop lives on
func logTickErr(log *logger.Logger, pilot string, err error) {
	if perr.Retryable(err) {
		log.Warn().Err(err).Str("pilot", pilot).Msg("recoverable upstream error")
		return
	}
	log.Error().Err(err).Str("pilot", pilot).Bytes("stack", debug.Stack()).Msg("pilot failed")
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
