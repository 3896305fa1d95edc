// Package storage persists experiment run snapshots.
//
// A Snapshot records everything one run produced apart from the series
// itself: the manifest that drove it, how the data was split, the summary
// statistics of the generated series, and the metric report of every model.
// Stores keep snapshots by ID and track the most recent run. The series is
// not persisted; it re-derives deterministically from the stored definition.
package storage

import (
	"context"
	"time"

	"github.com/oscillab/oscillab/pkg/evaluation"
	"github.com/oscillab/oscillab/pkg/experiment"
	"github.com/oscillab/oscillab/pkg/series"
)

// Snapshot is the persisted outcome of one experiment run.
type Snapshot struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	GeneratedAt  time.Time             `json:"generatedAt"`
	Definition   experiment.Definition `json:"definition"`
	Rows         int                   `json:"rows"`
	TrainWindows int                   `json:"trainWindows"`
	ValWindows   int                   `json:"valWindows"`
	TestWindows  int                   `json:"testWindows"`
	Summary      series.Summary        `json:"summary"`
	Reports      []evaluation.Report   `json:"reports"`
}

// Store persists snapshots keyed by ID and tracks the latest run.
type Store interface {
	Put(ctx context.Context, snapshot Snapshot) error
	Get(ctx context.Context, id string) (Snapshot, bool, error)
	GetLatest(ctx context.Context) (Snapshot, bool, error)
}
