// Package actor owns per-account mutable engine state: pause flag, named
// locks, bunker/price snapshots, settings, and the fuel-failure cache.
// Everything lives behind an explicit Registry so tests can construct and
// inspect it; there are no package-level globals
package actor

import (
	"sync"
	"time"
)

// LockName identifies a single-holder lock scoped to one actor
type LockName string

// Lock names used by the pilots and the departure engine
const (
	LockDepart       LockName = "depart"
	LockFuelPurchase LockName = "fuelPurchase"
	LockCO2Purchase  LockName = "co2Purchase"
	LockRepair       LockName = "repair"
	LockBulkBuy      LockName = "bulkBuy"
)

// LockSnapshot is the broadcastable view of an actor's lock table
type LockSnapshot struct {
	Depart       bool `json:"depart"`
	FuelPurchase bool `json:"fuelPurchase"`
	CO2Purchase  bool `json:"co2Purchase"`
	Repair       bool `json:"repair"`
	BulkBuy      bool `json:"bulkBuy"`
}

// Bunker is the account-level resource snapshot
type Bunker struct {
	Fuel    float64 `json:"fuel"`
	CO2     float64 `json:"co2"`
	Cash    float64 `json:"cash"`
	MaxFuel float64 `json:"max_fuel"`
	MaxCO2  float64 `json:"max_co2"`
}

// Prices are the current bunker purchase prices
type Prices struct {
	Fuel float64 `json:"fuel"`
	CO2  float64 `json:"co2"`
}

// FuelFailure is a cached negative fuel-precondition result for one vessel
type FuelFailure struct {
	FuelAtCheck  float64
	RequiredFuel float64
	At           time.Time
}

// State is one actor's mutable engine state. All access goes through
// methods; the zero value is not usable, construct via Registry
type State struct {
	mu sync.Mutex

	id     string
	paused bool

	bunker      Bunker
	bunkerKnown bool
	prices      Prices

	settings Settings

	lastRepairCount  int
	lastDrydockCount int

	locks    map[LockName]bool
	fuelFail map[int64]FuelFailure
}

// ID returns the actor id
func (s *State) ID() string { return s.id }

// Paused reports the pause flag
func (s *State) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetPaused flips the pause flag
func (s *State) SetPaused(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = v
}

// TryAcquire takes the named lock if free. Non-blocking, single holder
func (s *State) TryAcquire(name LockName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[name] {
		return false
	}
	s.locks[name] = true
	return true
}

// Release frees the named lock. Releasing a free lock is a no-op
func (s *State) Release(name LockName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, name)
}

// Held reports whether the named lock is currently held
func (s *State) Held(name LockName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks[name]
}

// Locks returns a broadcastable snapshot of the lock table
func (s *State) Locks() LockSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LockSnapshot{
		Depart:       s.locks[LockDepart],
		FuelPurchase: s.locks[LockFuelPurchase],
		CO2Purchase:  s.locks[LockCO2Purchase],
		Repair:       s.locks[LockRepair],
		BulkBuy:      s.locks[LockBulkBuy],
	}
}

// Bunker returns the last-seen bunker snapshot and whether one exists yet
func (s *State) Bunker() (Bunker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bunker, s.bunkerKnown
}

// SetBunker stores a fresh bunker reading. A fuel level above any cached
// fuel-failure reading invalidates the whole failure cache for this actor:
// fuel only rises through a purchase, so every cached negative is stale
func (s *State) SetBunker(b Bunker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bunker = b
	s.bunkerKnown = true
	for _, f := range s.fuelFail {
		if b.Fuel > f.FuelAtCheck {
			s.fuelFail = make(map[int64]FuelFailure)
			break
		}
	}
}

// Prices returns the last-seen purchase prices
func (s *State) Prices() Prices {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prices
}

// SetPrices stores fresh purchase prices
func (s *State) SetPrices(p Prices) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = p
}

// Settings returns an immutable snapshot of the actor's settings
func (s *State) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings replaces the settings snapshot
func (s *State) SetSettings(v Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = v
}

// Counts returns the last-seen repair and drydock badge counts
func (s *State) Counts() (repair, drydock int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRepairCount, s.lastDrydockCount
}

// SetCounts stores fresh badge counts
func (s *State) SetCounts(repair, drydock int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRepairCount = repair
	s.lastDrydockCount = drydock
}

// RecordFuelFailure caches a negative fuel-precondition result for a vessel
func (s *State) RecordFuelFailure(vesselID int64, fuelAtCheck, required float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fuelFail[vesselID] = FuelFailure{FuelAtCheck: fuelAtCheck, RequiredFuel: required, At: at}
}

// FuelFailureFor returns a cached negative result for the vessel, if any
func (s *State) FuelFailureFor(vesselID int64) (FuelFailure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fuelFail[vesselID]
	return f, ok
}

// FuelFailureCount reports how many vessels are cached as fuel-short
func (s *State) FuelFailureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fuelFail)
}

// Registry owns all actor states for the process. Constructed once at
// startup and injected where needed
type Registry struct {
	mu     sync.RWMutex
	actors map[string]*State
}

// NewRegistry constructs an empty registry
func NewRegistry() *Registry {
	return &Registry{actors: make(map[string]*State)}
}

// Get returns the state for an actor id if it exists
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.actors[id]
	return s, ok
}

// GetOrCreate returns the state for an actor id, creating it with the
// given settings on first sight. States are never deleted while the
// process lives
func (r *Registry) GetOrCreate(id string, defaults Settings) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.actors[id]; ok {
		return s
	}
	s := &State{
		id:       id,
		settings: defaults,
		locks:    make(map[LockName]bool),
		fuelFail: make(map[int64]FuelFailure),
	}
	r.actors[id] = s
	return s
}

// IDs returns all known actor ids
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.actors))
	for id := range r.actors {
		out = append(out, id)
	}
	return out
}
