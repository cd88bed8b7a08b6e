package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"zervitravel/internal/config"
	"zervitravel/internal/server/api"
	"zervitravel/internal/server/storage"
	"zervitravel/internal/server/storage/postgres"
	"zervitravel/internal/server/storage/sqlite"
	"zervitravel/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	store, err := newStorage(cfg, log)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: api.New(store, log),
	}

	go func() {
		log.Info("table service listening", slog.String("address", cfg.Server.RunAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

// newStorage picks the backend: Postgres when DATABASE_URI is set,
// a local SQLite file otherwise.
func newStorage(cfg *config.Config, log *slog.Logger) (storage.TableStorage, error) {
	if cfg.DB.DatabaseURI != "" {
		return postgres.New(context.Background(), cfg.DB.DatabaseURI, log)
	}
	return sqlite.New(cfg.DB.SQLitePath, log)
}
