package database

import (
	"context"
	"fmt"

	"job-board-api/config"
	"job-board-api/internal/storage"
	"job-board-api/internal/storage/memory"
	"job-board-api/internal/storage/mongo"
	"job-board-api/internal/storage/postgres"

	log "github.com/sirupsen/logrus"
)

// OpenStore connects the backend selected by cfg.Storage.Driver and applies its migrations.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	var store storage.Store

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, err := NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store = mongo.New(client, cfg.Mongo.Database)
	case config.DriverPostgres:
		pool, err := NewConnectionPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		store = postgres.New(pool)
	case config.DriverMemory:
		log.Warn("Using the in-memory store; data is lost on restart")
		store = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("failed to migrate %s store: %w", cfg.Storage.Driver, err)
	}
	return store, nil
}
