// Package module implements the control API module
package module

import (
	"shipmate/internal/modkit"
	"shipmate/internal/modkit/httpkit"
	apihttp "shipmate/internal/services/api/http"
)

// Module implements the control API module
type Module struct {
	deps modkit.Deps
	h    apihttp.Deps
}

// New constructs the control API module around the given ports
func New(deps modkit.Deps, h apihttp.Deps) *Module {
	return &Module{deps: deps, h: h}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "api" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	apihttp.Register(r, m.h)
}
