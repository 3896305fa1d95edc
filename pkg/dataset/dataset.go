// Package dataset turns series frames into the sliding-window views consumed
// by forecasters and evaluation.
//
// Two window shapes are provided. ForecastDataset pairs every run of history
// rows with the horizon rows that follow it; WindowDataset yields plain
// fixed-size windows. Both validate their frame leniently on construction:
// an unsorted or duplicated time index and missing values are logged as
// warnings, never rejected. Out-of-range access is a hard error.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/oscillab/oscillab/pkg/series"
)

var (
	// ErrInvalidParameter is returned for out-of-range construction
	// parameters.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIndexOutOfRange is returned by Get and Slice for requests outside
	// the dataset.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// validateFrame warns about frame shapes that windowing tolerates but the
// caller probably did not intend.
func validateFrame(f *series.Frame, logger *slog.Logger) {
	unsorted := false
	duplicates := false
	for i := 1; i < f.Len(); i++ {
		switch {
		case f.Time(i).Before(f.Time(i - 1)):
			unsorted = true
		case f.Time(i).Equal(f.Time(i - 1)):
			duplicates = true
		}
	}
	if unsorted {
		logger.Warn("time index is not sorted", "rows", f.Len())
	}
	if duplicates {
		logger.Warn("time index contains duplicate timestamps", "rows", f.Len())
	}
	if hasNaN(f) {
		logger.Warn("frame contains missing values", "rows", f.Len())
	}
}

func hasNaN(f *series.Frame) bool {
	for i := range f.Len() {
		for j := range f.Width() {
			if math.IsNaN(f.At(i, j)) {
				return true
			}
		}
	}
	return false
}

// checkSlice validates a [start, stop) request against n windows: start must
// be non-negative and stop strictly less than n, so slicing the full range
// is out of range. stop <= start passes the check and selects nothing.
func checkSlice(start, stop, n int) error {
	if start < 0 || stop >= n {
		return fmt.Errorf("slice [%d:%d) of %d windows: %w", start, stop, n, ErrIndexOutOfRange)
	}
	return nil
}
