package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"shipmate/internal/core/actor"
	phttp "shipmate/internal/platform/net/http"
	"shipmate/internal/services/api/domain"
	courierdomain "shipmate/internal/services/courier/domain"
	fleetdomain "shipmate/internal/services/fleet/domain"
)

type fakeDeparter struct {
	gotActor string
	gotIDs   []int64
}

func (f *fakeDeparter) Depart(_ context.Context, actorID string, ids []int64) (fleetdomain.DepartureResult, error) {
	f.gotActor = actorID
	f.gotIDs = ids
	return fleetdomain.DepartureResult{Success: true}, nil
}

type fakeHistory struct{}

func (fakeHistory) DailySummary(context.Context, string, int) ([]fleetdomain.VoyageSummary, error) {
	return []fleetdomain.VoyageSummary{}, nil
}

type fakeSettings struct{ reg *actor.Registry }

func (f fakeSettings) Get(_ context.Context, id string) (actor.Settings, error) {
	st, _ := f.reg.Get(id)
	return st.Settings(), nil
}

func (f fakeSettings) Update(_ context.Context, id string, s actor.Settings) error {
	st, _ := f.reg.Get(id)
	st.SetSettings(s)
	return nil
}

func (f fakeSettings) Hydrate(context.Context, string) (actor.Settings, error) {
	return actor.DefaultSettings(), nil
}

type fakeQueue struct{ msgs []courierdomain.Message }

func (f *fakeQueue) Enqueue(m courierdomain.Message) <-chan error {
	f.msgs = append(f.msgs, m)
	ch := make(chan error, 1)
	ch <- nil
	return ch
}

func (f *fakeQueue) Len() int { return len(f.msgs) }

func harness(t *testing.T) (*chi.Mux, *actor.Registry, *fakeDeparter, *fakeQueue) {
	t.Helper()
	reg := actor.NewRegistry()
	reg.GetOrCreate("a1", actor.DefaultSettings())
	dep := &fakeDeparter{}
	q := &fakeQueue{}
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), Deps{
		Registry: reg,
		Departer: dep,
		History:  fakeHistory{},
		Settings: fakeSettings{reg: reg},
		Queue:    q,
	})
	return m, reg, dep, q
}

func TestStatusUnknownActor(t *testing.T) {
	t.Parallel()

	m, _, _, _ := harness(t)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/actors/nobody/status", nil))
	if rec.Code != 404 {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestPauseAndResume(t *testing.T) {
	t.Parallel()

	m, reg, _, _ := harness(t)
	st, _ := reg.Get("a1")

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("POST", "/actors/a1/pause", nil))
	if rec.Code != 204 || !st.Paused() {
		t.Fatalf("pause failed: %d paused=%v", rec.Code, st.Paused())
	}

	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("POST", "/actors/a1/resume", nil))
	if rec.Code != 204 || st.Paused() {
		t.Fatalf("resume failed: %d paused=%v", rec.Code, st.Paused())
	}
}

func TestManualDepart(t *testing.T) {
	t.Parallel()

	m, _, dep, _ := harness(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/actors/a1/depart", strings.NewReader(`{"vessel_ids":[4,7]}`))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if dep.gotActor != "a1" || len(dep.gotIDs) != 2 {
		t.Fatalf("departer got %q %v", dep.gotActor, dep.gotIDs)
	}
}

func TestStatusPayload(t *testing.T) {
	t.Parallel()

	m, reg, _, _ := harness(t)
	st, _ := reg.Get("a1")
	st.SetBunker(actor.Bunker{Fuel: 321, MaxFuel: 1000})

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/actors/a1/status", nil))
	if rec.Code != 200 {
		t.Fatalf("status %d", rec.Code)
	}
	var env struct {
		Data domain.StatusOut `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.ActorID != "a1" || env.Data.Bunker.Fuel != 321 {
		t.Fatalf("payload %+v", env.Data)
	}
}

func TestSendMessageValidation(t *testing.T) {
	t.Parallel()

	m, _, _, q := harness(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/actors/a1/messages", strings.NewReader(`{"subject":"hi","body":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rec, req)
	if rec.Code != 400 {
		t.Fatalf("missing recipient must fail validation, got %d", rec.Code)
	}
	if len(q.msgs) != 0 {
		t.Fatal("invalid message must not enqueue")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/actors/a1/messages", strings.NewReader(`{"recipient":"bob","subject":"hi","body":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rec, req)
	if rec.Code != 200 || len(q.msgs) != 1 {
		t.Fatalf("enqueue failed: %d, queued %d", rec.Code, len(q.msgs))
	}
}
