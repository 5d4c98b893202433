// Package module implements the autopilot service module
package module

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	"shipmate/internal/modkit"
	"shipmate/internal/modkit/httpkit"
	"shipmate/internal/modkit/repokit"
	fleetdomain "shipmate/internal/services/fleet/domain"

	"shipmate/internal/services/autopilot/repo"
	"shipmate/internal/services/autopilot/service"
)

// Ports exposed by the autopilot module
type Ports struct {
	Scheduler *service.Service
}

// Module implements the autopilot service module
type Module struct {
	deps  modkit.Deps
	reg   *actor.Registry
	ports Ports
}

// New constructs the autopilot module
func New(deps modkit.Deps, client *shipping.Client, reg *actor.Registry, departer fleetdomain.DeparterPort) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(client, reg, departer, deps.Broadcast, service.Config{
		FastInterval: time.Duration(opts.FastSeconds) * time.Second,
		SlowInterval: time.Duration(opts.SlowSeconds) * time.Second,
		IndexTTL:     time.Duration(opts.IndexTTLSeconds) * time.Second,
	})
	if deps.PG != nil {
		svc = svc.WithStorage(repokit.MustBind(repo.NewPG(), deps.PG))
	}

	m := &Module{deps: deps, reg: reg}
	m.ports = Ports{Scheduler: svc}
	return m
}

// Run starts both loops for every registered actor and blocks until ctx
// ends. Actors are fully independent, each pair of loops runs on its own
func (m *Module) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range m.reg.IDs() {
		m.ports.Scheduler.Restore(ctx, id)
		g.Go(func() error { return m.ports.Scheduler.RunFast(ctx, id) })
		g.Go(func() error { return m.ports.Scheduler.RunSlow(ctx, id) })
	}
	return g.Wait()
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "autopilot" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
