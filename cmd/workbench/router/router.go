// Package router configures HTTP routes for the workbench API.
//
// The workbench exposes an HTTP server on port 8080 (configurable) that runs
// experiment manifests and serves the resulting snapshots, plus health checks
// and Prometheus metrics. This package sets up the routes for that server.
//
// Routes configured:
//   - POST /experiments/run - Run a manifest and return its snapshot
//   - GET /experiments/current - Retrieve the most recent snapshot
//   - GET /experiments/snapshot?id=<id> - Retrieve one snapshot by ID
//   - GET /experiments/series?id=<id> - Re-derive a run's series as CSV
//   - GET /healthz - Health check endpoint (returns 200 OK)
//   - GET /metrics - Prometheus metrics endpoint
//
// Snapshots are returned in JSON format. The series endpoint rebuilds the
// frame from the snapshot's stored definition rather than persisting it:
// generation is deterministic, so the reconstruction is exact.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oscillab/oscillab/pkg/experiment"
	"github.com/oscillab/oscillab/pkg/httpx"
	"github.com/oscillab/oscillab/pkg/series"
	"github.com/oscillab/oscillab/pkg/storage"
)

// Runner executes experiment definitions and materializes their series.
// Satisfied by *runner.Runner.
type Runner interface {
	Run(ctx context.Context, def experiment.Definition) (storage.Snapshot, error)
	BuildFrame(def experiment.Definition) (*series.Frame, error)
}

// SetupRoutes configures HTTP endpoints for the workbench.
func SetupRoutes(r Runner, store storage.Store, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.Handle("/healthz", httpx.HealthHandler())

	// Experiment endpoints
	mux.HandleFunc("/experiments/run", handleRun(r, logger))
	mux.HandleFunc("/experiments/current", handleCurrent(store, logger))
	mux.HandleFunc("/experiments/snapshot", handleSnapshot(store, logger))
	mux.HandleFunc("/experiments/series", handleSeries(r, store, logger))

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// handleRun returns a handler for POST /experiments/run.
func handleRun(r Runner, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			httpx.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var def experiment.Definition
		if err := json.NewDecoder(req.Body).Decode(&def); err != nil {
			httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := def.Validate(); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err)
			return
		}

		snapshot, err := r.Run(req.Context(), def)
		if err != nil {
			logger.Error("experiment run failed", "name", def.Name, "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, snapshot)
	}
}

// handleCurrent returns a handler for GET /experiments/current.
func handleCurrent(store storage.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		snapshot, found, err := store.GetLatest(req.Context())
		if err != nil {
			logger.Error("failed to get latest snapshot", "error", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		if !found {
			httpx.WriteErrorMessage(w, http.StatusNotFound, "no experiment has run yet")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, snapshot)
	}
}

// handleSnapshot returns a handler for GET /experiments/snapshot?id=<id>.
func handleSnapshot(store storage.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := req.URL.Query().Get("id")
		if id == "" {
			httpx.WriteErrorMessage(w, http.StatusBadRequest, "id parameter required")
			return
		}

		snapshot, found, err := store.Get(req.Context(), id)
		if err != nil {
			logger.Error("failed to get snapshot", "id", id, "error", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		if !found {
			httpx.WriteErrorMessage(w, http.StatusNotFound, fmt.Sprintf("snapshot %q not found", id))
			return
		}

		httpx.WriteJSON(w, http.StatusOK, snapshot)
	}
}

// handleSeries returns a handler for GET /experiments/series?id=<id>.
// The frame is rebuilt from the stored definition and streamed as CSV.
func handleSeries(r Runner, store storage.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := req.URL.Query().Get("id")
		if id == "" {
			httpx.WriteErrorMessage(w, http.StatusBadRequest, "id parameter required")
			return
		}

		snapshot, found, err := store.Get(req.Context(), id)
		if err != nil {
			logger.Error("failed to get snapshot", "id", id, "error", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		if !found {
			httpx.WriteErrorMessage(w, http.StatusNotFound, fmt.Sprintf("snapshot %q not found", id))
			return
		}

		frame, err := r.BuildFrame(snapshot.Definition)
		if err != nil {
			logger.Error("failed to rebuild series", "id", id, "error", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		if err := series.WriteCSV(w, frame); err != nil {
			logger.Error("failed to write series CSV", "id", id, "error", err)
		}
	}
}
