// Package domain defines the settings service contract
package domain

import (
	"context"

	"shipmate/internal/core/actor"
)

// SettingsPort reads and updates per-actor operator settings
type SettingsPort interface {
	// Get returns the actor's current settings snapshot
	Get(ctx context.Context, actorID string) (actor.Settings, error)

	// Update validates, persists, and stamps new settings onto the
	// actor's live state
	Update(ctx context.Context, actorID string, s actor.Settings) error

	// Hydrate loads persisted settings (or profile defaults) into the
	// registry at startup
	Hydrate(ctx context.Context, actorID string) (actor.Settings, error)
}
