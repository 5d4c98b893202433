package modkit

import (
	"shipmate/internal/modkit/repokit"
	"shipmate/internal/platform/config"
	"shipmate/internal/platform/logger"
	"shipmate/internal/platform/store"
)

// Broadcaster pushes a fire-and-forget event toward whatever presentation
// layer is attached. Implementations must tolerate having no subscribers
type Broadcaster func(actorID, event string, payload any)

// Deps holds core dependencies passed to modules.
// This is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Broadcast is optional; nil means headless operation
	Broadcast Broadcaster
}

// Emit broadcasts when a presentation layer is attached, else no-op
func (d Deps) Emit(actorID, event string, payload any) {
	if d.Broadcast != nil {
		d.Broadcast(actorID, event, payload)
	}
}
