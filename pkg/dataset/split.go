package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/oscillab/oscillab/pkg/series"
)

// SplitOptions configure a train/validation/test split. TestFraction and
// ValFraction must each be in [0, 1). Seed drives the train/validation
// shuffle, so equal options over equal frames produce identical splits.
type SplitOptions struct {
	TestFraction float64
	ValFraction  float64
	Seed         int64
}

func (o SplitOptions) validate() error {
	if o.TestFraction < 0 || o.TestFraction >= 1 {
		return fmt.Errorf("test fraction must be in [0, 1), got %v: %w", o.TestFraction, ErrInvalidParameter)
	}
	if o.ValFraction < 0 || o.ValFraction >= 1 {
		return fmt.Errorf("val fraction must be in [0, 1), got %v: %w", o.ValFraction, ErrInvalidParameter)
	}
	return nil
}

// testRows returns how many tail rows the test fraction holds out of a
// frame of rows total.
func testRows(rows int, fraction float64) int {
	return int(float64(rows) * fraction)
}

// splitIndices partitions [0, n) into train and validation index sets,
// shuffled deterministically by seed. Validation takes floor(valFraction·n)
// windows; the remainder stays in train.
func splitIndices(n int, valFraction float64, seed int64) (train, val []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	valLen := int(math.Floor(valFraction * float64(n)))
	cut := n - valLen
	return perm[:cut], perm[cut:]
}

// ForecastSplit is the outcome of splitting one frame into train,
// validation and test forecast data. Train and Val select shuffled windows
// over the head of the frame; Test is a contiguous dataset over the tail
// rows.
type ForecastSplit struct {
	Train *ForecastSubset
	Val   *ForecastSubset
	Test  *ForecastDataset
}

// SplitForecast holds out the tail TestFraction of rows as the test
// dataset, windows the remaining head, and partitions those windows into
// train and validation subsets with a seeded shuffle.
func SplitForecast(frame *series.Frame, historyLength, horizon int, opts SplitOptions, logger *slog.Logger) (*ForecastSplit, error) {
	if frame == nil {
		return nil, fmt.Errorf("frame is nil: %w", ErrInvalidParameter)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	test := frame.Tail(testRows(frame.Len(), opts.TestFraction))
	head := frame.Head(frame.Len() - test.Len())

	trainVal, err := NewForecastDataset(head, historyLength, horizon, logger)
	if err != nil {
		return nil, err
	}
	testSet, err := NewForecastDataset(test, historyLength, horizon, logger)
	if err != nil {
		return nil, err
	}

	trainIdx, valIdx := splitIndices(trainVal.Len(), opts.ValFraction, opts.Seed)
	return &ForecastSplit{
		Train: &ForecastSubset{dataset: trainVal, indices: trainIdx},
		Val:   &ForecastSubset{dataset: trainVal, indices: valIdx},
		Test:  testSet,
	}, nil
}

// WindowSplit is the outcome of splitting one frame into train, validation
// and test window data.
type WindowSplit struct {
	Train *WindowSubset
	Val   *WindowSubset
	Test  *WindowDataset
}

// SplitWindows is SplitForecast for fixed-size windows.
func SplitWindows(frame *series.Frame, windowSize int, opts SplitOptions, logger *slog.Logger) (*WindowSplit, error) {
	if frame == nil {
		return nil, fmt.Errorf("frame is nil: %w", ErrInvalidParameter)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	test := frame.Tail(testRows(frame.Len(), opts.TestFraction))
	head := frame.Head(frame.Len() - test.Len())

	trainVal, err := NewWindowDataset(head, windowSize, logger)
	if err != nil {
		return nil, err
	}
	testSet, err := NewWindowDataset(test, windowSize, logger)
	if err != nil {
		return nil, err
	}

	trainIdx, valIdx := splitIndices(trainVal.Len(), opts.ValFraction, opts.Seed)
	return &WindowSplit{
		Train: &WindowSubset{dataset: trainVal, indices: trainIdx},
		Val:   &WindowSubset{dataset: trainVal, indices: valIdx},
		Test:  testSet,
	}, nil
}
