package service

import (
	"context"
	"sync"
	"testing"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	fleetdomain "shipmate/internal/services/fleet/domain"
)

type fakeUpstream struct {
	mu sync.Mutex

	index    shipping.GameIndex
	indexErr error

	staff     shipping.StaffSummary
	quotes    []shipping.StockQuote
	coop      shipping.CoopStatus
	hijacks   []shipping.Hijacking
	campaigns []shipping.Campaign

	indexCalls    int
	fuelBuys      []float64
	co2Buys       []float64
	repairCalls   int
	drydockCalls  int
	renewals      []string
	contributions []float64
	trades        map[string]int64
	moraleRaises  int
	negotiations  []int64
}

func (f *fakeUpstream) Index(context.Context) (shipping.GameIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexCalls++
	return f.index, f.indexErr
}

func (f *fakeUpstream) BunkerState(context.Context) (shipping.Bunker, error) {
	return f.index.Bunker, nil
}

func (f *fakeUpstream) PurchaseFuel(_ context.Context, amount, _ float64) (shipping.PurchaseResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fuelBuys = append(f.fuelBuys, amount)
	return shipping.PurchaseResult{NewTotal: f.index.Bunker.Fuel + amount, Cost: amount * 300}, nil
}

func (f *fakeUpstream) PurchaseCO2(_ context.Context, amount, _ float64) (shipping.PurchaseResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.co2Buys = append(f.co2Buys, amount)
	return shipping.PurchaseResult{NewTotal: f.index.Bunker.CO2 + amount, Cost: amount * 100}, nil
}

func (f *fakeUpstream) RepairVessels(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repairCalls++
	return f.index.RepairableCount, nil
}

func (f *fakeUpstream) DrydockVessels(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drydockCalls++
	return f.index.DrydockDueCount, nil
}

func (f *fakeUpstream) Campaigns(context.Context) ([]shipping.Campaign, error) {
	return f.campaigns, nil
}

func (f *fakeUpstream) RenewCampaign(_ context.Context, category string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renewals = append(f.renewals, category)
	return nil
}

func (f *fakeUpstream) CoopStatus(context.Context) (shipping.CoopStatus, error) {
	return f.coop, nil
}

func (f *fakeUpstream) Contribute(_ context.Context, amount float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contributions = append(f.contributions, amount)
	return amount / 2, nil
}

func (f *fakeUpstream) StockQuotes(context.Context) ([]shipping.StockQuote, error) {
	return f.quotes, nil
}

func (f *fakeUpstream) TradeStock(_ context.Context, symbol string, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.trades == nil {
		f.trades = make(map[string]int64)
	}
	f.trades[symbol] += qty
	return nil
}

func (f *fakeUpstream) Staff(context.Context) (shipping.StaffSummary, error) {
	return f.staff, nil
}

func (f *fakeUpstream) RaiseMorale(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moraleRaises++
	return nil
}

func (f *fakeUpstream) Hijackings(context.Context) ([]shipping.Hijacking, error) {
	return f.hijacks, nil
}

func (f *fakeUpstream) NegotiateHijack(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.negotiations = append(f.negotiations, id)
	return nil
}

type fakeDeparter struct {
	mu    sync.Mutex
	calls int
	panic bool
}

func (d *fakeDeparter) Depart(context.Context, string, []int64) (fleetdomain.DepartureResult, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if d.panic {
		panic("departer exploded")
	}
	return fleetdomain.DepartureResult{Success: true}, nil
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) emit(_ string, event string, _ any) {
	e.mu.Lock()
	e.events = append(e.events, event)
	e.mu.Unlock()
}

func (e *eventLog) count(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, ev := range e.events {
		if ev == event {
			n++
		}
	}
	return n
}

func bootstrapped(set actor.Settings) (*actor.Registry, *actor.State) {
	reg := actor.NewRegistry()
	st := reg.GetOrCreate("a1", set)
	st.SetPrices(actor.Prices{Fuel: 400, CO2: 130})
	st.SetBunker(actor.Bunker{Fuel: 500, CO2: 200, Cash: 1e6, MaxFuel: 1000, MaxCO2: 400})
	return reg, st
}

func baseIndex() shipping.GameIndex {
	return shipping.GameIndex{
		Bunker: shipping.Bunker{Fuel: 500, CO2: 200, Cash: 1e6, MaxFuel: 1000, MaxCO2: 400},
		Prices: shipping.Prices{Fuel: 400, CO2: 130},
	}
}

func TestTickFastSkipsUnbootstrappedActor(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	reg := actor.NewRegistry()
	reg.GetOrCreate("a1", actor.DefaultSettings())
	svc := New(up, reg, nil, nil, Config{})

	svc.TickFast(context.Background(), "a1")
	if up.indexCalls != 0 {
		t.Fatal("unbootstrapped actor must be a no-op tick")
	}
}

func TestTickFastRefreshesBadgesWhilePaused(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	up.index.RepairableCount = 3
	reg, st := bootstrapped(actor.DefaultSettings())
	st.SetPaused(true)
	rec := &eventLog{}
	dep := &fakeDeparter{}
	svc := New(up, reg, dep, rec.emit, Config{})

	svc.TickFast(context.Background(), "a1")

	if rec.count("bunker.update") == 0 || rec.count("repair.count") == 0 {
		t.Fatal("badges must refresh even while paused")
	}
	if dep.calls != 0 || up.repairCalls != 0 {
		t.Fatal("pilots must not run while paused")
	}
	if rp, _ := st.Counts(); rp != 3 {
		t.Fatalf("repair count not stamped, got %d", rp)
	}
}

func TestTickFastRunsPilotsWhenActive(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	up.index.RepairableCount = 2
	set := actor.DefaultSettings()
	reg, _ := bootstrapped(set)
	dep := &fakeDeparter{}
	svc := New(up, reg, dep, nil, Config{})

	svc.TickFast(context.Background(), "a1")

	if dep.calls != 1 {
		t.Fatalf("auto-depart calls %d", dep.calls)
	}
	if up.repairCalls != 1 {
		t.Fatalf("repair calls %d", up.repairCalls)
	}
}

func TestTickFastSurvivesPanickingPilot(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	reg, _ := bootstrapped(actor.DefaultSettings())
	dep := &fakeDeparter{panic: true}
	svc := New(up, reg, dep, nil, Config{})

	// must not propagate
	svc.TickFast(context.Background(), "a1")
	svc.TickFast(context.Background(), "a1")
	if dep.calls != 2 {
		t.Fatalf("loop died after panic, calls %d", dep.calls)
	}
}

func TestRebuyBuysUnderThreshold(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	reg, st := bootstrapped(actor.DefaultSettings())
	// prices under the default rebuy thresholds
	st.SetPrices(actor.Prices{Fuel: 350, CO2: 110})
	svc := New(up, reg, nil, nil, Config{})

	svc.Rebuy(context.Background(), "a1", fleetdomain.PartialStats{})

	if len(up.fuelBuys) != 1 || up.fuelBuys[0] != 500 {
		t.Fatalf("expected fuel top-up to capacity, got %v", up.fuelBuys)
	}
	if len(up.co2Buys) != 1 || up.co2Buys[0] != 200 {
		t.Fatalf("expected co2 top-up to capacity, got %v", up.co2Buys)
	}
	if st.Held(actor.LockFuelPurchase) || st.Held(actor.LockCO2Purchase) {
		t.Fatal("purchase locks leaked")
	}
}

func TestRebuySkipsWhenLockHeld(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	reg, st := bootstrapped(actor.DefaultSettings())
	st.SetPrices(actor.Prices{Fuel: 350, CO2: 200})
	st.TryAcquire(actor.LockFuelPurchase)
	svc := New(up, reg, nil, nil, Config{})

	svc.Rebuy(context.Background(), "a1", fleetdomain.PartialStats{})
	if len(up.fuelBuys) != 0 {
		t.Fatal("a held fuelPurchase lock must block the rebuy")
	}
}

func TestRebuyAlertsOverThreshold(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	reg, st := bootstrapped(actor.DefaultSettings())
	// over the default alert thresholds
	st.SetPrices(actor.Prices{Fuel: 500, CO2: 160})
	rec := &eventLog{}
	svc := New(up, reg, nil, rec.emit, Config{})

	svc.Rebuy(context.Background(), "a1", fleetdomain.PartialStats{})
	if len(up.fuelBuys) != 0 {
		t.Fatal("no purchase over the alert threshold")
	}
	if rec.count("notice") != 2 {
		t.Fatalf("expected fuel and co2 alerts, got %d notices", rec.count("notice"))
	}
}

func TestCampaignRenewalUnderFloor(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	up.index.ActiveCampaigns = []shipping.Campaign{{ID: 1, Category: "container"}}
	reg, _ := bootstrapped(actor.DefaultSettings())
	svc := New(up, reg, nil, nil, Config{})

	svc.TickFast(context.Background(), "a1")

	if len(up.renewals) != 2 {
		t.Fatalf("expected renewal of the two missing categories, got %v", up.renewals)
	}
	for _, cat := range up.renewals {
		if cat == "container" {
			t.Fatal("active category must not be renewed")
		}
	}
}

func TestCampaignNoRenewalAtFloor(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{index: baseIndex()}
	up.index.ActiveCampaigns = []shipping.Campaign{
		{Category: "container"}, {Category: "tanker"}, {Category: "reputation"},
	}
	reg, _ := bootstrapped(actor.DefaultSettings())
	svc := New(up, reg, nil, nil, Config{})

	svc.TickFast(context.Background(), "a1")
	if len(up.renewals) != 0 {
		t.Fatalf("unexpected renewals %v", up.renewals)
	}
}

func TestTickSlowPilots(t *testing.T) {
	t.Parallel()

	set := actor.DefaultSettings()
	set.AutoCoop = true
	set.AutoStocks = true
	up := &fakeUpstream{
		index: baseIndex(),
		coop:  shipping.CoopStatus{TargetCargo: 1000, ContributedCargo: 400},
		staff: shipping.StaffSummary{Morale: 50, RaiseFee: 2000},
		quotes: []shipping.StockQuote{
			{Symbol: "CHEAP", Price: 80},
			{Symbol: "FAIR", Price: 100},
			{Symbol: "RICH", Price: 120, Owned: 5},
		},
	}
	reg, _ := bootstrapped(set)
	svc := New(up, reg, nil, nil, Config{})

	svc.TickSlow(context.Background(), "a1")

	if len(up.contributions) != 1 || up.contributions[0] != 600 {
		t.Fatalf("coop contribution %v", up.contributions)
	}
	if up.moraleRaises != 1 {
		t.Fatalf("morale raises %d", up.moraleRaises)
	}
	// avg 100: CHEAP sits under the buy band, RICH over the sell band
	if up.trades["CHEAP"] != 10 {
		t.Fatalf("expected CHEAP buy, trades %v", up.trades)
	}
	if up.trades["RICH"] != -5 {
		t.Fatalf("expected RICH liquidation, trades %v", up.trades)
	}
}

func TestTickSlowSkipsWhilePaused(t *testing.T) {
	t.Parallel()

	set := actor.DefaultSettings()
	set.AutoCoop = true
	up := &fakeUpstream{index: baseIndex(), coop: shipping.CoopStatus{TargetCargo: 100}}
	reg, st := bootstrapped(set)
	st.SetPaused(true)
	svc := New(up, reg, nil, nil, Config{})

	svc.TickSlow(context.Background(), "a1")
	if len(up.contributions) != 0 || up.moraleRaises != 0 {
		t.Fatal("slow pilots must not run while paused")
	}
}
