package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/config"
	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/storage"
)

// clock is the time source for every command. Tests pin it.
var clock = time.Now

// session bundles the storage and services one command invocation needs.
type session struct {
	cfg       *config.Config
	store     *storage.SQLiteStorage
	catalog   *engine.Catalog
	lifecycle *engine.Lifecycle
}

// openSession loads the configuration and opens the migrated database.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &session{
		cfg:       cfg,
		store:     store,
		catalog:   engine.NewCatalog(store, store),
		lifecycle: engine.NewLifecycleWithConfig(store, store, engine.Config{Now: clock}),
	}, nil
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// initStorage opens the database at dbPath and runs migrations.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("%q is not a valid item ID", arg), err)
	}
	return id, nil
}
