// Package module implements the settings service module
package module

import (
	"shipmate/internal/core/actor"
	"shipmate/internal/modkit"
	"shipmate/internal/modkit/httpkit"
	"shipmate/internal/services/settings/domain"
	"shipmate/internal/services/settings/repo"
	"shipmate/internal/services/settings/service"
)

// Ports exposed by the settings module
type Ports struct {
	Settings domain.SettingsPort
}

// Module implements the settings service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the settings module
func New(deps modkit.Deps, reg *actor.Registry) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(reg, deps.PG, repo.NewPG(), service.Config{
		ProfilePath: opts.ProfilePath,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Settings: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "settings" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
