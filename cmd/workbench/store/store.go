// Package store provides storage backend initialization for the workbench.
//
// This package acts as a factory for creating storage.Store implementations
// based on the workbench configuration. It supports two snapshot backends:
//
//   - Memory: In-memory storage (default) - suitable for single-instance
//     deployments and development. Snapshots are lost on restart.
//
//   - Redis: Redis-backed storage - keeps snapshots across restarts and
//     shares them between workbench instances, with optional TTL expiry.
//
// The factory performs fail-fast initialization, validating storage
// connectivity during startup and exiting immediately if the backend is
// unavailable, so the workbench never runs with a broken storage
// configuration.
package store

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/oscillab/oscillab/cmd/workbench/config"
	"github.com/oscillab/oscillab/pkg/storage"
)

// New creates and initializes a storage backend from the configuration.
// Redis backends are pinged before use; any initialization failure exits the
// process with status 1. Never returns nil.
func New(cfg *config.Config, logger *slog.Logger) storage.Store {
	switch cfg.Storage {
	case "redis":
		logger.Info("initializing redis snapshot store",
			"addr", cfg.RedisAddr,
			"db", cfg.RedisDB,
			"ttl", cfg.RedisTTL,
		)
		redisStore, err := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
		if err != nil {
			logger.Error("failed to create redis store", "error", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisStore.Ping(ctx); err != nil {
			logger.Error("redis ping failed", "error", err)
			os.Exit(1)
		}
		logger.Info("redis snapshot store ready")

		return redisStore

	case "memory":
		logger.Info("using in-memory snapshot store")
		return storage.NewMemoryStore()

	default:
		logger.Error("unsupported storage backend", "storage", cfg.Storage)
		os.Exit(1)
	}

	return nil
}
