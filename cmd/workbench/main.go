// Package main implements the oscillab workbench service.
// The workbench runs forecasting experiments over generated or imported
// series, scores baseline models on held-out windows, and serves the
// resulting snapshots via HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oscillab/oscillab/cmd/workbench/config"
	"github.com/oscillab/oscillab/cmd/workbench/logger"
	"github.com/oscillab/oscillab/cmd/workbench/metrics"
	"github.com/oscillab/oscillab/cmd/workbench/router"
	"github.com/oscillab/oscillab/cmd/workbench/store"
	"github.com/oscillab/oscillab/pkg/experiment"
	"github.com/oscillab/oscillab/pkg/httpx"
	"github.com/oscillab/oscillab/pkg/runner"
)

func main() {
	cfg := config.ParseFlags()

	logger := logger.New(cfg)
	slog.SetDefault(logger)

	logger.Info("starting oscillab workbench",
		"version", "v0.1.0",
		"listen", cfg.Listen,
		"storage", cfg.Storage,
	)

	snapshots := store.New(cfg, logger)
	defer func() {
		if closer, ok := snapshots.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("failed to close store", "error", err)
			}
		}
	}()

	m := metrics.New()
	r := runner.New(snapshots, m, logger)

	mux := router.SetupRoutes(r, snapshots, logger)
	handler := httpx.LoggingMiddleware(logger)(httpx.RecoveryMiddleware(logger)(mux))
	httpServer := httpx.NewServer(cfg.Listen, handler, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RunOnStart {
		def, err := experiment.Load(cfg.Manifest)
		if err != nil {
			logger.Error("failed to load manifest", "path", cfg.Manifest, "error", err)
			os.Exit(1)
		}

		go func() {
			snapshot, err := r.Run(ctx, *def)
			if err != nil {
				logger.Error("startup run failed", "name", def.Name, "error", err)
				return
			}
			logger.Info("startup run stored", "id", snapshot.ID, "name", snapshot.Name)
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	}

	logger.Info("shutting down")
	cancel()

	if err := httpServer.Stop(10 * time.Second); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
