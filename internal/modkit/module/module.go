// Package module defines the minimal contract for a modkit module
package module

import (
	"context"
	"reflect"

	phttp "shipmate/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Runner is implemented by modules that own a long-running loop.
// Run blocks until ctx is cancelled or the loop fails
type Runner interface {
	Run(ctx context.Context) error
}

// PortsOf pulls an interface T out of a module's Ports() bundle.
// It returns ok=false if no field/value in Ports() implements T
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, ok2 := p.(T); ok2 {
		return v, true
	}
	rv := reflect.ValueOf(p)
	rt := rv.Type()
	if rt.Kind() == reflect.Struct {
		for i := 0; i < rt.NumField(); i++ {
			f := rv.Field(i)
			if !f.CanInterface() {
				continue
			}
			if v, ok2 := f.Interface().(T); ok2 {
				return v, true
			}
		}
	}
	return t, false
}

// MustPortsOf is a convenience that panics with a friendly message
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}
