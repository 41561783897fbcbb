// Package repository selects the KVStore backend named by configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"deptevents/config"
	"deptevents/internal/domain"
	"deptevents/internal/repository/filestore"
	"deptevents/internal/repository/memory"
	"deptevents/internal/repository/postgres"
	"deptevents/internal/repository/redisstore"
	"deptevents/internal/repository/sqlite"
)

// Open returns the configured store and a function releasing its resources.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewKVStore(), noop, nil
	case config.StoreFile:
		store, err := filestore.NewKVStore(cfg.DataFile, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file store", "path", cfg.DataFile)
		return store, noop, nil
	case config.StoreSQLite:
		if err := ensureDir(cfg.SQLitePath); err != nil {
			return nil, nil, err
		}
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite store", "path", cfg.SQLitePath)
		return sqlite.NewKVStore(db), db.Close, nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres store")
		return postgres.NewKVStore(db), db.Close, nil
	case config.StoreRedis:
		store, err := redisstore.Open(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis store", "prefix", cfg.RedisPrefix)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
