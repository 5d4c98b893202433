// Package module implements the courier service module
package module

import (
	"context"
	"time"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/modkit"
	"shipmate/internal/modkit/httpkit"
	"shipmate/internal/services/courier/domain"
	"shipmate/internal/services/courier/service"
)

// Ports exposed by the courier module
type Ports struct {
	Queue domain.QueuePort
}

// Module implements the courier service module
type Module struct {
	deps  modkit.Deps
	svc   *service.Service
	ports Ports
}

// New constructs the courier module around the game's message endpoint
func New(deps modkit.Deps, client *shipping.Client) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(client.SendMessage, deps.Broadcast, service.Config{
		Interval:   time.Duration(opts.IntervalSeconds) * time.Second,
		MaxRetries: opts.MaxRetries,
	})

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{Queue: svc}
	return m
}

// Run starts the single global drainer and blocks until ctx ends
func (m *Module) Run(ctx context.Context) error { return m.svc.Run(ctx) }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "courier" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
