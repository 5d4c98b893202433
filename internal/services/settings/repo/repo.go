// Package repo provides the settings repository implementation
package repo

import (
	"context"
	"encoding/json"

	"shipmate/internal/core/actor"
	"shipmate/internal/modkit/repokit"
	perr "shipmate/internal/platform/errors"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the settings repository
type Storage interface {
	Load(ctx context.Context, actorID string) (actor.Settings, error)
	Upsert(ctx context.Context, actorID string, s actor.Settings) error
}

// Load implements Storage. Returns ErrorCodeNotFound when the actor has
// never saved settings
func (r *pg) Load(ctx context.Context, actorID string) (actor.Settings, error) {
	var raw []byte
	row := r.q.QueryRow(ctx, `SELECT settings FROM actor_settings WHERE actor_id = $1`, actorID)
	if err := row.Scan(&raw); err != nil {
		return actor.Settings{}, perr.NotFoundf("no stored settings for actor %q", actorID)
	}
	var s actor.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return actor.Settings{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode stored settings")
	}
	return s, nil
}

// Upsert implements Storage
func (r *pg) Upsert(ctx context.Context, actorID string, s actor.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode settings")
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO actor_settings (actor_id, settings, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (actor_id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = now()`,
		actorID, raw,
	)
	if err != nil {
		return perr.FromPG(err, "upsert settings")
	}
	return nil
}
