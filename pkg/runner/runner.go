// Package runner executes experiment manifests end to end: it materializes
// the source series, windows and splits it, scores every model on the test
// windows, and persists the resulting snapshot.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/oscillab/oscillab/pkg/dataset"
	"github.com/oscillab/oscillab/pkg/evaluation"
	"github.com/oscillab/oscillab/pkg/experiment"
	"github.com/oscillab/oscillab/pkg/forecasters"
	"github.com/oscillab/oscillab/pkg/pendulum"
	"github.com/oscillab/oscillab/pkg/series"
	"github.com/oscillab/oscillab/pkg/storage"
)

// Observer receives instrumentation callbacks from runs. The workbench wires
// its Prometheus metrics in here; a nil observer disables instrumentation.
type Observer interface {
	RecordRun(status string)
	ObserveStage(stage string, seconds float64)
	SetWindowsEvaluated(windows int)
	RecordStoreError()
}

type nopObserver struct{}

func (nopObserver) RecordRun(string)             {}
func (nopObserver) ObserveStage(string, float64) {}
func (nopObserver) SetWindowsEvaluated(int)      {}
func (nopObserver) RecordStoreError()            {}

// Runner orchestrates one experiment run: generate → window → evaluate → store.
type Runner struct {
	store  storage.Store
	obs    Observer
	logger *slog.Logger
}

// New creates a Runner persisting snapshots to store. A nil obs disables
// instrumentation; a nil logger falls back to slog.Default().
func New(store storage.Store, obs Observer, logger *slog.Logger) *Runner {
	if obs == nil {
		obs = nopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		store:  store,
		obs:    obs,
		logger: logger,
	}
}

// Run executes one experiment and returns the stored snapshot.
func (r *Runner) Run(ctx context.Context, def experiment.Definition) (storage.Snapshot, error) {
	snapshot, err := r.run(ctx, def)
	if err != nil {
		r.obs.RecordRun("error")
		return storage.Snapshot{}, err
	}

	r.obs.RecordRun("success")
	return snapshot, nil
}

func (r *Runner) run(ctx context.Context, def experiment.Definition) (storage.Snapshot, error) {
	start := time.Now()

	if err := def.Validate(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("invalid definition: %w", err)
	}

	frame, generateDuration, err := r.materialize(def)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("materialize source: %w", err)
	}

	split, windowDuration, err := r.window(frame, def)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("window series: %w", err)
	}

	reports, evaluateDuration, err := r.evaluate(ctx, def, split.Test)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("evaluate models: %w", err)
	}
	r.obs.SetWindowsEvaluated(split.Test.Len())

	summary, err := frame.Describe(frame.Columns()[0])
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("summarize series: %w", err)
	}

	snapshot := storage.Snapshot{
		ID:           uuid.NewString(),
		Name:         def.Name,
		GeneratedAt:  time.Now().UTC(),
		Definition:   def,
		Rows:         frame.Len(),
		TrainWindows: split.Train.Len(),
		ValWindows:   split.Val.Len(),
		TestWindows:  split.Test.Len(),
		Summary:      summary,
		Reports:      reports,
	}

	storeDuration, err := r.storeSnapshot(ctx, snapshot)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("store snapshot: %w", err)
	}

	r.logger.Info("experiment run complete",
		"id", snapshot.ID,
		"name", snapshot.Name,
		"rows", snapshot.Rows,
		"test_windows", snapshot.TestWindows,
		"models", len(reports),
		"generate_ms", generateDuration.Milliseconds(),
		"window_ms", windowDuration.Milliseconds(),
		"evaluate_ms", evaluateDuration.Milliseconds(),
		"store_ms", storeDuration.Milliseconds(),
		"total_ms", time.Since(start).Milliseconds(),
	)

	return snapshot, nil
}

// BuildFrame materializes the univariate series a definition describes.
// Generation is deterministic, so the same definition always yields the same
// frame; the series endpoint relies on this to reconstruct a run's data from
// its stored definition.
func (r *Runner) BuildFrame(def experiment.Definition) (*series.Frame, error) {
	switch def.Source.Kind {
	case "pendulum":
		g := def.Source.Pendulum
		p, err := pendulum.New(g.Length)
		if err != nil {
			return nil, err
		}
		frame, err := p.Generate(g.NumPeriods, g.SamplesPerPeriod, g.InitialAngle, g.Beta)
		if err != nil {
			return nil, err
		}
		return selectTarget(frame, def.Source.Target)

	case "csv":
		file, err := os.Open(def.Source.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("open csv source: %w", err)
		}
		defer file.Close()

		frame, err := series.ReadCSV(file)
		if err != nil {
			return nil, err
		}
		return selectTarget(frame, def.Source.Target)

	default:
		return nil, fmt.Errorf("unknown source kind %q", def.Source.Kind)
	}
}

// selectTarget reduces a frame to the single column being forecast.
func selectTarget(frame *series.Frame, target string) (*series.Frame, error) {
	if target == "" {
		if frame.Width() != 1 {
			return nil, fmt.Errorf("source has %d columns, set source.target to pick one", frame.Width())
		}
		return frame, nil
	}
	return frame.Select(target)
}

func (r *Runner) materialize(def experiment.Definition) (*series.Frame, time.Duration, error) {
	start := time.Now()

	frame, err := r.BuildFrame(def)
	if err != nil {
		return nil, 0, err
	}

	duration := time.Since(start)
	r.obs.ObserveStage("generate", duration.Seconds())
	r.logger.Debug("materialized source",
		"kind", def.Source.Kind,
		"rows", frame.Len(),
		"duration_ms", duration.Milliseconds(),
	)

	return frame, duration, nil
}

func (r *Runner) window(frame *series.Frame, def experiment.Definition) (*dataset.ForecastSplit, time.Duration, error) {
	start := time.Now()

	opts := dataset.SplitOptions{
		TestFraction: def.Split.TestFraction,
		ValFraction:  def.Split.ValFraction,
		Seed:         def.Split.Seed,
	}
	split, err := dataset.SplitForecast(frame, def.Window.HistoryLength, def.Window.Horizon, opts, r.logger)
	if err != nil {
		return nil, 0, err
	}

	duration := time.Since(start)
	r.obs.ObserveStage("window", duration.Seconds())
	r.logger.Debug("windowed series",
		"train", split.Train.Len(),
		"val", split.Val.Len(),
		"test", split.Test.Len(),
		"duration_ms", duration.Milliseconds(),
	)

	return split, duration, nil
}

func (r *Runner) evaluate(ctx context.Context, def experiment.Definition, test *dataset.ForecastDataset) ([]evaluation.Report, time.Duration, error) {
	start := time.Now()

	evaluator, err := evaluation.NewEvaluator(def.Evaluation.Step)
	if err != nil {
		return nil, 0, err
	}

	reports := make([]evaluation.Report, 0, len(def.Models))
	for _, m := range def.Models {
		f, err := forecasters.New(m.Name, def.Window.Horizon, m.Span)
		if err != nil {
			return nil, 0, err
		}

		report, err := evaluator.Evaluate(ctx, f, test)
		if err != nil {
			return nil, 0, fmt.Errorf("evaluate %s: %w", f.Name(), err)
		}
		reports = append(reports, report)

		r.logger.Debug("scored model",
			"model", report.Model,
			"mae", report.MAE,
			"rmse", report.RMSE,
		)
	}

	duration := time.Since(start)
	r.obs.ObserveStage("evaluate", duration.Seconds())

	return reports, duration, nil
}

func (r *Runner) storeSnapshot(ctx context.Context, snapshot storage.Snapshot) (time.Duration, error) {
	start := time.Now()

	if err := r.store.Put(ctx, snapshot); err != nil {
		r.obs.RecordStoreError()
		return 0, err
	}

	duration := time.Since(start)
	r.obs.ObserveStage("store", duration.Seconds())
	r.logger.Debug("stored snapshot", "id", snapshot.ID)

	return duration, nil
}
