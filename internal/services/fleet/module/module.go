// Package module implements the fleet service module
package module

import (
	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	"shipmate/internal/modkit"
	"shipmate/internal/modkit/httpkit"
	"shipmate/internal/services/fleet/domain"
	"shipmate/internal/services/fleet/repo"
	"shipmate/internal/services/fleet/service"
)

// Ports exposed by the fleet module
type Ports struct {
	Departer domain.DeparterPort
	History  domain.HistoryPort
}

// Module implements the fleet service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the fleet module. rebuy may be nil when no pilot wiring
// is attached yet
func New(deps modkit.Deps, client *shipping.Client, reg *actor.Registry, rebuy domain.RebuyFunc) *Module {
	opts := FromConfig(deps.Cfg)

	var hist repo.Storage
	if deps.CH != nil {
		hist = repo.NewCH(deps.CH)
	}

	svc := service.New(client, reg, hist, rebuy, deps.Broadcast, service.Config{
		ChunkSize: opts.ChunkSize,
		DryRun:    opts.DryRun,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Departer: svc, History: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "fleet" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
