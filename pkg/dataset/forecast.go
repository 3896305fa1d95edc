package dataset

import (
	"fmt"
	"log/slog"

	"github.com/oscillab/oscillab/pkg/series"
)

// Window is one materialized history/future pair. Rows are copies in frame
// column order.
type Window struct {
	History [][]float64
	Future  [][]float64
}

// ForecastDataset is a sliding view pairing histories with the rows that
// follow them: window i covers frame rows [i, i+historyLength) as history
// and [i+historyLength, i+historyLength+horizon) as future.
type ForecastDataset struct {
	frame         *series.Frame
	historyLength int
	horizon       int
}

// NewForecastDataset creates a forecast dataset over frame. historyLength
// and horizon must be positive. logger receives validation warnings; nil
// falls back to slog.Default().
func NewForecastDataset(frame *series.Frame, historyLength, horizon int, logger *slog.Logger) (*ForecastDataset, error) {
	if frame == nil {
		return nil, fmt.Errorf("frame is nil: %w", ErrInvalidParameter)
	}
	if historyLength <= 0 {
		return nil, fmt.Errorf("history length must be positive, got %d: %w", historyLength, ErrInvalidParameter)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d: %w", horizon, ErrInvalidParameter)
	}
	if logger == nil {
		logger = slog.Default()
	}
	validateFrame(frame, logger)

	return &ForecastDataset{frame: frame, historyLength: historyLength, horizon: horizon}, nil
}

// Len returns the number of history/future windows the frame supports.
func (d *ForecastDataset) Len() int {
	n := d.frame.Len() - (d.historyLength + d.horizon) + 1
	if n < 0 {
		return 0
	}
	return n
}

// HistoryLength returns the number of history rows per window.
func (d *ForecastDataset) HistoryLength() int {
	return d.historyLength
}

// Horizon returns the number of future rows per window.
func (d *ForecastDataset) Horizon() int {
	return d.horizon
}

// Width returns the number of value columns per row.
func (d *ForecastDataset) Width() int {
	return d.frame.Width()
}

// Get returns window index. Valid indexes satisfy 0 <= index < Len().
func (d *ForecastDataset) Get(index int) (Window, error) {
	if index < 0 || index >= d.Len() {
		return Window{}, fmt.Errorf("window %d of %d: %w", index, d.Len(), ErrIndexOutOfRange)
	}

	history := make([][]float64, d.historyLength)
	for i := range history {
		history[i] = d.frame.Row(index + i)
	}
	future := make([][]float64, d.horizon)
	for i := range future {
		future[i] = d.frame.Row(index + d.historyLength + i)
	}

	return Window{History: history, Future: future}, nil
}

// Slice returns windows [start, stop). The request must satisfy start >= 0
// and stop < Len(); stop <= start yields an empty result.
func (d *ForecastDataset) Slice(start, stop int) ([]Window, error) {
	if err := checkSlice(start, stop, d.Len()); err != nil {
		return nil, err
	}
	if stop <= start {
		return nil, nil
	}

	out := make([]Window, 0, stop-start)
	for i := start; i < stop; i++ {
		w, err := d.Get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// ForecastSubset is a fixed selection of windows from a ForecastDataset.
type ForecastSubset struct {
	dataset *ForecastDataset
	indices []int
}

// Len returns the number of selected windows.
func (s *ForecastSubset) Len() int {
	return len(s.indices)
}

// Get returns the i-th selected window.
func (s *ForecastSubset) Get(i int) (Window, error) {
	if i < 0 || i >= len(s.indices) {
		return Window{}, fmt.Errorf("subset window %d of %d: %w", i, len(s.indices), ErrIndexOutOfRange)
	}
	return s.dataset.Get(s.indices[i])
}

// Indices returns a copy of the selected window indices.
func (s *ForecastSubset) Indices() []int {
	out := make([]int, len(s.indices))
	copy(out, s.indices)
	return out
}
