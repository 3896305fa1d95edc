package dataset

import (
	"fmt"
	"log/slog"

	"github.com/oscillab/oscillab/pkg/series"
)

// WindowDataset is a sliding view of fixed-size windows: window i covers
// frame rows [i, i+windowSize).
type WindowDataset struct {
	frame      *series.Frame
	windowSize int
}

// NewWindowDataset creates a window dataset over frame. windowSize must be
// positive. logger receives validation warnings; nil falls back to
// slog.Default().
func NewWindowDataset(frame *series.Frame, windowSize int, logger *slog.Logger) (*WindowDataset, error) {
	if frame == nil {
		return nil, fmt.Errorf("frame is nil: %w", ErrInvalidParameter)
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d: %w", windowSize, ErrInvalidParameter)
	}
	if logger == nil {
		logger = slog.Default()
	}
	validateFrame(frame, logger)

	return &WindowDataset{frame: frame, windowSize: windowSize}, nil
}

// Len returns the number of windows the frame supports.
func (d *WindowDataset) Len() int {
	n := d.frame.Len() - d.windowSize + 1
	if n < 0 {
		return 0
	}
	return n
}

// WindowSize returns the number of rows per window.
func (d *WindowDataset) WindowSize() int {
	return d.windowSize
}

// Width returns the number of value columns per row.
func (d *WindowDataset) Width() int {
	return d.frame.Width()
}

// Get returns window index as copied rows. Valid indexes satisfy
// 0 <= index < Len().
func (d *WindowDataset) Get(index int) ([][]float64, error) {
	if index < 0 || index >= d.Len() {
		return nil, fmt.Errorf("window %d of %d: %w", index, d.Len(), ErrIndexOutOfRange)
	}

	rows := make([][]float64, d.windowSize)
	for i := range rows {
		rows[i] = d.frame.Row(index + i)
	}
	return rows, nil
}

// Slice returns windows [start, stop). The request must satisfy start >= 0
// and stop < Len(); stop <= start yields an empty result.
func (d *WindowDataset) Slice(start, stop int) ([][][]float64, error) {
	if err := checkSlice(start, stop, d.Len()); err != nil {
		return nil, err
	}
	if stop <= start {
		return nil, nil
	}

	out := make([][][]float64, 0, stop-start)
	for i := start; i < stop; i++ {
		rows, err := d.Get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, rows)
	}
	return out, nil
}

// WindowSubset is a fixed selection of windows from a WindowDataset.
type WindowSubset struct {
	dataset *WindowDataset
	indices []int
}

// Len returns the number of selected windows.
func (s *WindowSubset) Len() int {
	return len(s.indices)
}

// Get returns the i-th selected window.
func (s *WindowSubset) Get(i int) ([][]float64, error) {
	if i < 0 || i >= len(s.indices) {
		return nil, fmt.Errorf("subset window %d of %d: %w", i, len(s.indices), ErrIndexOutOfRange)
	}
	return s.dataset.Get(s.indices[i])
}

// Indices returns a copy of the selected window indices.
func (s *WindowSubset) Indices() []int {
	out := make([]int, len(s.indices))
	copy(out, s.indices)
	return out
}
