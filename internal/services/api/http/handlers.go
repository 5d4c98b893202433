// Package http provides the control API transport
package http

import (
	stdhttp "net/http"
	"strconv"

	"shipmate/internal/core/actor"
	"shipmate/internal/modkit/httpkit"
	perr "shipmate/internal/platform/errors"
	"shipmate/internal/services/api/domain"
	courierdomain "shipmate/internal/services/courier/domain"
	fleetdomain "shipmate/internal/services/fleet/domain"
	settingsdomain "shipmate/internal/services/settings/domain"
)

// Deps are the ports the control API fronts
type Deps struct {
	Registry *actor.Registry
	Departer fleetdomain.DeparterPort
	History  fleetdomain.HistoryPort
	Settings settingsdomain.SettingsPort
	Queue    courierdomain.QueuePort
}

// Register mounts the router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d: d}
	r.Route("/actors/{actor}", func(ar httpkit.Router) {
		ar.Get("/status", httpkit.Handle(h.status))
		ar.Post("/pause", httpkit.Handle(h.pause))
		ar.Post("/resume", httpkit.Handle(h.resume))
		ar.Get("/settings", httpkit.Handle(h.getSettings))
		ar.Get("/voyages/summary", httpkit.Handle(h.voyageSummary))
		httpkit.PostJSON[domain.DepartInput](ar, "/depart", h.depart)
		httpkit.PutJSON[actor.Settings](ar, "/settings", h.putSettings)
		httpkit.PostJSON[domain.MessageInput](ar, "/messages", h.sendMessage)
	})
}

type handlers struct{ d Deps }

func (h *handlers) state(r *stdhttp.Request) (*actor.State, string, error) {
	id := httpkit.Param(r, "actor")
	st, ok := h.d.Registry.Get(id)
	if !ok {
		return nil, id, perr.NotFoundf("unknown actor %q", id)
	}
	return st, id, nil
}

// @Summary Live actor status
// @Tags actors
// @Produce json
// @Param actor path string true "Actor ID"
// @Success 200 {object} domain.StatusOut "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /actors/{actor}/status [get]
func (h *handlers) status(r *stdhttp.Request) httpkit.Response {
	st, id, err := h.state(r)
	if err != nil {
		return httpkit.Error(err)
	}
	bk, _ := st.Bunker()
	repair, drydock := st.Counts()
	return httpkit.OK(domain.StatusOut{
		ActorID:      id,
		Paused:       st.Paused(),
		Locks:        st.Locks(),
		Bunker:       bk,
		Prices:       st.Prices(),
		RepairCount:  repair,
		DrydockCount: drydock,
		FuelFailures: st.FuelFailureCount(),
	})
}

// @Summary Pause all pilots for an actor
// @Tags actors
// @Produce json
// @Param actor path string true "Actor ID"
// @Success 204 "paused"
// @Router /actors/{actor}/pause [post]
func (h *handlers) pause(r *stdhttp.Request) httpkit.Response {
	st, _, err := h.state(r)
	if err != nil {
		return httpkit.Error(err)
	}
	st.SetPaused(true)
	return httpkit.NoContent()
}

// @Summary Resume all pilots for an actor
// @Tags actors
// @Produce json
// @Param actor path string true "Actor ID"
// @Success 204 "resumed"
// @Router /actors/{actor}/resume [post]
func (h *handlers) resume(r *stdhttp.Request) httpkit.Response {
	st, _, err := h.state(r)
	if err != nil {
		return httpkit.Error(err)
	}
	st.SetPaused(false)
	return httpkit.NoContent()
}

// @Summary Trigger a manual departure run
// @Tags fleet
// @Accept json
// @Produce json
// @Param actor path string true "Actor ID"
// @Param payload body domain.DepartInput true "Departure"
// @Success 200 {object} fleetdomain.DepartureResult "result"
// @Router /actors/{actor}/depart [post]
func (h *handlers) depart(r *stdhttp.Request, in domain.DepartInput) (any, error) {
	id := httpkit.Param(r, "actor")
	return h.d.Departer.Depart(r.Context(), id, in.VesselIDs)
}

// @Summary Current actor settings
// @Tags settings
// @Produce json
// @Param actor path string true "Actor ID"
// @Success 200 {object} actor.Settings "ok"
// @Router /actors/{actor}/settings [get]
func (h *handlers) getSettings(r *stdhttp.Request) httpkit.Response {
	id := httpkit.Param(r, "actor")
	s, err := h.d.Settings.Get(r.Context(), id)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(s)
}

// @Summary Replace actor settings
// @Tags settings
// @Accept json
// @Produce json
// @Param actor path string true "Actor ID"
// @Param payload body actor.Settings true "Settings"
// @Success 200 {object} actor.Settings "stored"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /actors/{actor}/settings [put]
func (h *handlers) putSettings(r *stdhttp.Request, in actor.Settings) (any, error) {
	id := httpkit.Param(r, "actor")
	if err := h.d.Settings.Update(r.Context(), id, in); err != nil {
		return nil, err
	}
	return in, nil
}

// @Summary Daily voyage history summary
// @Tags fleet
// @Produce json
// @Param actor path string true "Actor ID"
// @Param days query int false "Trailing window in days"
// @Success 200 {array} fleetdomain.VoyageSummary "rows"
// @Router /actors/{actor}/voyages/summary [get]
func (h *handlers) voyageSummary(r *stdhttp.Request) httpkit.Response {
	id := httpkit.Param(r, "actor")
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	rows, err := h.d.History.DailySummary(r.Context(), id, days)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(rows)
}

// @Summary Queue an outbound in-game message
// @Tags courier
// @Accept json
// @Produce json
// @Param actor path string true "Actor ID"
// @Param payload body domain.MessageInput true "Message"
// @Success 200 {object} domain.MessageOut "queued"
// @Router /actors/{actor}/messages [post]
func (h *handlers) sendMessage(r *stdhttp.Request, in domain.MessageInput) (any, error) {
	id := httpkit.Param(r, "actor")
	if _, ok := h.d.Registry.Get(id); !ok {
		return nil, perr.NotFoundf("unknown actor %q", id)
	}
	h.d.Queue.Enqueue(courierdomain.Message{
		ActorID:   id,
		Recipient: in.Recipient,
		Subject:   in.Subject,
		Body:      in.Body,
	})
	return domain.MessageOut{Queued: true, QueueLen: h.d.Queue.Len()}, nil
}
