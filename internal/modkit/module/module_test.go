package module

import (
	"testing"

	phttp "shipmate/internal/platform/net/http"
	kit "shipmate/internal/platform/testkit"
)

type pinger interface{ Ping() string }

type pingImpl struct{}

func (pingImpl) Ping() string { return "pong" }

type fakeModule struct {
	name  string
	ports any
}

func (m *fakeModule) MountRoutes(phttp.Router) {}
func (m *fakeModule) Ports() any               { return m.ports }
func (m *fakeModule) Name() string             { return m.name }

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	Register("scheduler", pingImpl{})
	got, ok := PortsAs[pinger]("scheduler")
	if !ok || got.Ping() != "pong" {
		t.Fatalf("PortsAs miss: ok=%v", ok)
	}

	if _, ok := PortsAs[pinger]("absent"); ok {
		t.Fatal("PortsAs on unknown name should miss")
	}

	// second registration under the same name is a wiring bug
	kit.MustPanic(t, func() { Register("scheduler", pingImpl{}) })

	Reset()
	if _, ok := PortsAs[pinger]("scheduler"); ok {
		t.Fatal("Reset should clear the registry")
	}
}

func TestPortsOf(t *testing.T) {
	// direct hit: Ports() itself implements T
	m := &fakeModule{name: "direct", ports: pingImpl{}}
	if v, ok := PortsOf[pinger](m); !ok || v.Ping() != "pong" {
		t.Fatalf("direct PortsOf: ok=%v", ok)
	}

	// struct hit: a field of Ports() implements T
	type bundle struct {
		P pinger
	}
	m = &fakeModule{name: "bundle", ports: bundle{P: pingImpl{}}}
	if v, ok := PortsOf[pinger](m); !ok || v.Ping() != "pong" {
		t.Fatalf("bundle PortsOf: ok=%v", ok)
	}

	// nil ports
	m = &fakeModule{name: "nil"}
	if _, ok := PortsOf[pinger](m); ok {
		t.Fatal("nil ports should miss")
	}

	// no matching field
	m = &fakeModule{name: "other", ports: bundle{}}
	if _, ok := PortsOf[pinger](m); ok {
		t.Fatal("nil interface field should miss")
	}

	kit.MustPanic(t, func() { MustPortsOf[pinger](&fakeModule{name: "empty"}) })
}
