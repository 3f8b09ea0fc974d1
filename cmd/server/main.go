package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crosslist/pricer/internal/cache"
	"github.com/crosslist/pricer/internal/comps"
	"github.com/crosslist/pricer/internal/compsource"
	"github.com/crosslist/pricer/internal/config"
	"github.com/crosslist/pricer/internal/db"
	"github.com/crosslist/pricer/internal/migrations"
	"github.com/crosslist/pricer/internal/profiles"
	"github.com/crosslist/pricer/internal/seed"
)

// compFetcher is the external comp provider dependency, injected so tests
// and offline deployments can run without one.
type compFetcher interface {
	Fetch(ctx context.Context, query string) ([]comps.Observation, error)
}

type server struct {
	db       *sql.DB
	cache    *cache.Store
	profiles *profiles.File
	fetcher  compFetcher // nil when no provider is configured
	cacheTTL time.Duration
	apiToken string
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	if created, err := seed.EnsureProfiles(cfg.ProfilesPath); err != nil {
		log.Fatalf("failed to ensure profiles file: %v", err)
	} else if created {
		log.Printf("wrote starter pricing profiles to %s", cfg.ProfilesPath)
	}

	profileSet, err := profiles.Load(cfg.ProfilesPath)
	if err != nil {
		log.Fatalf("failed to load pricing profiles: %v", err)
	}

	srv := &server{
		db:       database,
		cache:    cache.New(database),
		profiles: profileSet,
		cacheTTL: cfg.CacheTTL,
		apiToken: cfg.APIToken,
	}
	if cfg.CompProviderURL != "" {
		srv.fetcher = compsource.New(cfg.CompProviderURL, cfg.CompProviderKey, nil)
	} else {
		log.Print("no comp provider configured, pricing caller-supplied observations only")
	}

	r := chi.NewRouter()
	r.Get("/healthz", srv.handleHealthz)
	r.Group(func(r chi.Router) {
		r.Use(srv.authMiddleware)
		r.Post("/v1/identity", srv.handleIdentity)
		r.Post("/v1/price", srv.handlePrice)
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
