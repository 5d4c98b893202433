// Package service implements the settings service
package service

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"shipmate/internal/core/actor"
	"shipmate/internal/modkit/repokit"
	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/logger"
	"shipmate/internal/platform/net/http/bind"
	"shipmate/internal/services/settings/repo"
)

// Config for the settings service
type Config struct {
	// ProfilePath points at an optional YAML defaults profile applied to
	// actors that have no stored settings
	ProfilePath string
}

// Service implements domain.SettingsPort
type Service struct {
	reg      *actor.Registry
	binder   repokit.Binder[repo.Storage]
	db       repokit.TxRunner
	cfg      Config
	profile  actor.Settings
	profiled bool
}

// New constructs the settings service. db may be nil; settings then live
// only in memory for the process lifetime
func New(reg *actor.Registry, db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	s := &Service{reg: reg, db: db, binder: binder, cfg: cfg}
	s.loadProfile()
	return s
}

// loadProfile reads the YAML defaults profile once at construction.
// A missing or broken profile falls back to compiled-in defaults
func (s *Service) loadProfile() {
	s.profile = actor.DefaultSettings()
	if s.cfg.ProfilePath == "" {
		return
	}
	raw, err := os.ReadFile(s.cfg.ProfilePath)
	if err != nil {
		logger.Named("settings").Warn().Err(err).Str("path", s.cfg.ProfilePath).Msg("settings profile unreadable, using defaults")
		return
	}
	p := actor.DefaultSettings()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		logger.Named("settings").Warn().Err(err).Str("path", s.cfg.ProfilePath).Msg("settings profile invalid, using defaults")
		return
	}
	if err := bind.Struct(&p); err != nil {
		logger.Named("settings").Warn().Err(err).Msg("settings profile failed validation, using defaults")
		return
	}
	s.profile = p
	s.profiled = true
}

// Profile returns the startup defaults applied to new actors
func (s *Service) Profile() actor.Settings { return s.profile }

// Get implements domain.SettingsPort
func (s *Service) Get(_ context.Context, actorID string) (actor.Settings, error) {
	st, ok := s.reg.Get(actorID)
	if !ok {
		return actor.Settings{}, perr.NotFoundf("unknown actor %q", actorID)
	}
	return st.Settings(), nil
}

// Update implements domain.SettingsPort
func (s *Service) Update(ctx context.Context, actorID string, v actor.Settings) error {
	if err := bind.Struct(&v); err != nil {
		return err
	}
	st, ok := s.reg.Get(actorID)
	if !ok {
		return perr.NotFoundf("unknown actor %q", actorID)
	}
	if s.db != nil {
		if err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
			return s.binder.Bind(q).Upsert(ctx, actorID, v)
		}); err != nil {
			return err
		}
	}
	st.SetSettings(v)
	return nil
}

// Hydrate implements domain.SettingsPort: persisted settings win, then the
// YAML profile, then compiled-in defaults. The result is stamped onto the
// registry so pilots see it immediately
func (s *Service) Hydrate(ctx context.Context, actorID string) (actor.Settings, error) {
	set := s.profile
	if s.db != nil {
		stored, err := s.binder.Bind(s.db).Load(ctx, actorID)
		switch {
		case err == nil:
			set = stored
		case perr.IsCode(err, perr.ErrorCodeNotFound):
			// first boot for this actor, keep the profile
		default:
			return actor.Settings{}, err
		}
	}
	st := s.reg.GetOrCreate(actorID, set)
	st.SetSettings(set)
	return set, nil
}
