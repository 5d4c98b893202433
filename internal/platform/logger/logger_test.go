package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "shipmate/internal/platform/testkit"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"   nonsense   ", "debug"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestInit_Get_Named_C(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:      "info",
		Format:     "console",
		Service:    "svc-a",
		Component:  "root",
		Writer:     &buf,
		WithCaller: true,
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("api").Info().Msg("named-msg")

	ctx := WithActor(context.Background(), "acct-123")
	ctx = WithRun(ctx, "run-abc")
	C(ctx).Info().Msg("ctx-msg")

	// empty ctx child (exercise only)
	C(context.Background()).Info().Msg("ctx-empty")

	out := buf.String()

	// robust assertions: tolerate "key=value" vs "key= value" spacing
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "component=")
	kit.MustContain(t, out, "api")
	kit.MustContain(t, out, "actor_id=")
	kit.MustContain(t, out, "acct-123")
	kit.MustContain(t, out, "run_id=")
	kit.MustContain(t, out, "run-abc")
	kit.MustContain(t, out, "service=")
	kit.MustContain(t, out, "svc-a")
}

func TestFromEnv_Independently(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_COMPONENT", "comp-b")
	t.Setenv("LOG_CALLER", "true")

	opt := FromEnv()
	if strings.ToLower(opt.Level) != "warn" {
		t.Fatalf("FromEnv Level = %q, want warn", opt.Level)
	}
	if opt.Format != "json" || opt.Service != "svc-b" || opt.Component != "comp-b" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller {
		t.Fatalf("FromEnv caller mismatch: %+v", opt)
	}
}

func TestEmptyAnnotationsAreNoops(t *testing.T) {
	ctx := context.Background()
	if WithActor(ctx, "") != ctx {
		t.Fatalf("WithActor(\"\") should return ctx unchanged")
	}
	if WithRun(ctx, "") != ctx {
		t.Fatalf("WithRun(\"\") should return ctx unchanged")
	}
	C(ctx).Debug().Msg("no-fields")
}
