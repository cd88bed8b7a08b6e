// Package client wires the travelctl application together: config,
// logger, snapshot cache, remote table client and the collection
// registry with one typed store per collection.
package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"zervitravel/internal/cache"
	"zervitravel/internal/config"
	"zervitravel/internal/domain/travel"
	"zervitravel/internal/remote"
	"zervitravel/internal/store"
)

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	remote   *remote.Client
	kv       cache.KV
	registry *store.Registry
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	rc := remote.New(cfg.Client.ServerAddress, log)

	// A broken local cache degrades to in-memory snapshots; it never
	// prevents the client from starting.
	var kv cache.KV
	if err := os.MkdirAll(cfg.Client.DataDir, 0o700); err != nil {
		log.Warn("data dir unavailable, snapshots held in memory", "dir", cfg.Client.DataDir, "error", err)
		kv = cache.NewMemory()
	} else {
		sq, err := cache.NewSQLite(cfg.CachePath(), log)
		if err != nil {
			log.Warn("snapshot cache unavailable, snapshots held in memory", "error", err)
			kv = cache.NewMemory()
		} else {
			kv = sq
		}
	}

	return &App{
		cfg:      cfg,
		log:      log,
		remote:   rc,
		kv:       kv,
		registry: store.NewRegistry(kv, log),
	}, nil
}

// ==================== typed accessors ====================

func (a *App) Destinations() *store.Store[travel.Destination] {
	return open(a, travel.Destinations())
}

func (a *App) ItineraryItems() *store.Store[travel.ItineraryItem] {
	return open(a, travel.ItineraryItems())
}

func (a *App) Suppliers() *store.Store[travel.Supplier] {
	return open(a, travel.Suppliers())
}

func (a *App) Entities() *store.Store[travel.Entity] {
	return open(a, travel.Entities())
}

func (a *App) Trips() *store.Store[travel.Trip] {
	return open(a, travel.Trips())
}

func open[T store.Record](a *App, desc store.Descriptor[T]) *store.Store[T] {
	return store.Open(a.registry, desc, a.remote.Table(desc.Name))
}

// Collection resolves a store by collection name for callers that work
// generically, like the CLI.
func (a *App) Collection(name string) (store.Collection, error) {
	switch name {
	case travel.CollectionDestinations:
		return a.Destinations(), nil
	case travel.CollectionItineraryItems:
		return a.ItineraryItems(), nil
	case travel.CollectionSuppliers:
		return a.Suppliers(), nil
	case travel.CollectionEntities:
		return a.Entities(), nil
	case travel.CollectionTrips:
		return a.Trips(), nil
	default:
		return nil, fmt.Errorf("unknown collection %q", name)
	}
}

// BootstrapAll runs first-run reconciliation for every collection, in
// the fixed collection order. A failing collection does not stop the
// others; it is left serving its sample in memory and the error is
// reported at the end.
func (a *App) BootstrapAll(ctx context.Context) error {
	var errs []error
	for _, name := range travel.CollectionNames() {
		col, err := a.Collection(name)
		if err != nil {
			return err
		}
		if err := col.Bootstrap(ctx); err != nil {
			a.log.Warn("bootstrap failed", "collection", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// SaveAsDefault stores the named collections' current records as the
// bootstrap baseline. Local-only; the collections must have been
// fetched in this session.
func (a *App) SaveAsDefault(names ...string) error {
	return a.registry.SaveAsDefault(names...)
}

// HealthCheck reports whether the remote table service answers.
func (a *App) HealthCheck(ctx context.Context) error {
	return a.remote.HealthCheck(ctx)
}

func (a *App) Close() error {
	a.registry.Close()
	return a.kv.Close()
}
