// @title         Shipmate Control API
// @version       0.1.0
// @description   Pause, resume, tune and observe the autopilot engine

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"shipmate/internal/modkit"
	"shipmate/internal/modkit/module"
	"shipmate/internal/platform/config"
	"shipmate/internal/platform/logger"
	phttp "shipmate/internal/platform/net/http"
	"shipmate/internal/platform/net/http/bind"
	"shipmate/internal/platform/net/middleware"
	"shipmate/internal/platform/store"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	"shipmate/internal/transport/observer"

	_ "shipmate/internal/services/api/docs"
	apihttp "shipmate/internal/services/api/http"
	apimod "shipmate/internal/services/api/module"
	automod "shipmate/internal/services/autopilot/module"
	autoservice "shipmate/internal/services/autopilot/service"
	couriermod "shipmate/internal/services/courier/module"
	fleetdomain "shipmate/internal/services/fleet/domain"
	fleetmod "shipmate/internal/services/fleet/module"
	settingsmod "shipmate/internal/services/settings/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	shipCfg := root.Prefix("SHIPPING_")

	l := logger.Get()
	bind.Init()

	// Flags
	var (
		fAPI    = flag.String("api", "", "control API listen port override, e.g. :4100 (empty = CORE_API_PORT)")
		fPaused = flag.Bool("paused", false, "start every actor paused")
		fDryRun = flag.Bool("dryrun", false, "plan departures but do not mutate upstream state")
	)
	flag.Parse()

	// Export flag knobs as env so modules can read them via FromConfig
	mustSetEnv("CORE_API_PORT", *fAPI)
	mustSetEnv("FLEET_DRY_RUN", map[bool]string{true: "1", false: ""}[*fDryRun])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Both backends are optional: no postgres means settings live on the
	// profile only, no clickhouse means voyage history is not recorded
	st, err := store.Open(ctx, store.Config{
		AppName: "shipmate",
		PG: store.PGConfig{
			Enabled:     pgCfg.MayString("DBURL", "") != "",
			URL:         pgCfg.MayString("DBURL", ""),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayString("DBURL", "") != "",
			URL:     chCfg.MayString("DBURL", ""),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	hub := observer.NewHub()

	// Shared deps
	deps := modkit.Deps{
		Log:       *l,
		Cfg:       root,
		PG:        st.PG,
		CH:        st.CH,
		Broadcast: hub.Broadcast,
	}

	client := shipping.NewClient(shipping.Options{
		BaseURL:      shipCfg.MayString("BASE_URL", ""),
		SessionToken: shipCfg.MustString("SESSION_TOKEN"),
		UserAgent:    shipCfg.MayString("USER_AGENT", ""),
		Timeout:      shipCfg.MayDuration("TIMEOUT", 0),
	})

	reg := actor.NewRegistry()

	// Settings first so every actor exists with hydrated thresholds before
	// any loop or handler can see it
	settingsM := settingsmod.New(deps, reg)
	module.Register(settingsM.Name(), settingsM.Ports())
	settingsPorts := module.MustPortsOf[settingsmod.Ports](settingsM)

	root.Require("ACTOR_IDS")
	ids := root.MayCSV("ACTOR_IDS", nil)
	if len(ids) == 0 {
		l.Panic().Msg("ACTOR_IDS is empty")
	}
	for _, id := range ids {
		if _, err := settingsPorts.Settings.Hydrate(ctx, id); err != nil {
			l.Fatal().Err(err).Str("actor", id).Msg("settings hydrate failed")
		}
		if *fPaused {
			if a, ok := reg.Get(id); ok {
				a.SetPaused(true)
			}
		}
	}

	// The departure engine tops up bunker mid-run through the scheduler's
	// rebuy pass; the scheduler in turn departs through the engine. Break
	// the cycle with a late-bound func
	var sched *autoservice.Service
	rebuy := fleetdomain.RebuyFunc(func(ctx context.Context, actorID string, stats fleetdomain.PartialStats) {
		if sched != nil {
			sched.Rebuy(ctx, actorID, stats)
		}
	})

	fleetM := fleetmod.New(deps, client, reg, rebuy)
	module.Register(fleetM.Name(), fleetM.Ports())
	fleetPorts := module.MustPortsOf[fleetmod.Ports](fleetM)

	autoM := automod.New(deps, client, reg, fleetPorts.Departer)
	module.Register(autoM.Name(), autoM.Ports())
	sched = module.MustPortsOf[automod.Ports](autoM).Scheduler

	courierM := couriermod.New(deps, client)
	module.Register(courierM.Name(), courierM.Ports())
	courierPorts := module.MustPortsOf[couriermod.Ports](courierM)

	apiM := apimod.New(deps, apihttp.Deps{
		Registry: reg,
		Departer: fleetPorts.Departer,
		History:  fleetPorts.History,
		Settings: settingsPorts.Settings,
		Queue:    courierPorts.Queue,
	})

	// Persisted snapshots first, then one live fetch on top. The fast loop
	// refuses to run against empty prices, so an actor with neither a
	// snapshot nor a reachable upstream is a hard failure
	for _, id := range ids {
		sched.Restore(ctx, id)
	}
	bootstrap(ctx, l, client, reg, ids)

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range []module.Runner{autoM, courierM} {
		r := r
		g.Go(func() error { return r.Run(ctx) })
	}

	if apiCfg.MayBool("ENABLED", true) {
		srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
			m.Use(middleware.RequestID)
			m.Use(middleware.CORS(middleware.CORSOptions{
				AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			}))
			m.Use(middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Second}))
			m.Use(middleware.RecoverJSON)
		})
		r := srv.Router()
		phttp.MountSwagger(r, apiCfg.MayBool("SWAGGER", true))
		r.Handle("/ws", hub.Handler())
		r.Get("/healthz", phttp.Handle(func(_ *http.Request) phttp.Response {
			return phttp.OK(map[string]string{"status": "ok"})
		}))
		r.Route("/v1", func(v1 phttp.Router) {
			apiM.MountRoutes(v1)
		})
		g.Go(func() error { return srv.Run(ctx) })
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		l.Fatal().Err(err).Msg("engine stopped")
	}
	l.Info().Msg("engine shut down")
}

// bootstrap stamps one fresh index onto every actor. When the fetch fails
// a restored snapshot keeps the loops alive; an actor left with empty
// prices would never tick, and that is a configuration problem
func bootstrap(ctx context.Context, l *logger.Logger, client *shipping.Client, reg *actor.Registry, ids []string) {
	idx, err := client.Index(ctx)
	if err != nil {
		for _, id := range ids {
			if a, ok := reg.Get(id); ok && (a.Prices() == actor.Prices{}) {
				l.Fatal().Err(err).Str("actor", id).
					Msg("initial index fetch failed with no snapshot to fall back on, check SHIPPING_SESSION_TOKEN")
			}
		}
		l.Warn().Err(err).Msg("initial index fetch failed, running from persisted snapshots")
		return
	}
	for _, id := range ids {
		a, ok := reg.Get(id)
		if !ok {
			continue
		}
		a.SetBunker(actor.Bunker{
			Fuel: idx.Bunker.Fuel, CO2: idx.Bunker.CO2, Cash: idx.Bunker.Cash,
			MaxFuel: idx.Bunker.MaxFuel, MaxCO2: idx.Bunker.MaxCO2,
		})
		a.SetPrices(actor.Prices{Fuel: idx.Prices.Fuel, CO2: idx.Prices.CO2})
		a.SetCounts(idx.RepairableCount, idx.DrydockDueCount)
	}
}
