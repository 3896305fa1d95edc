// Package series provides the in-memory time series table shared by the
// generator, windowing and evaluation layers.
//
// A Frame is an ordered sequence of timestamped float64 observations: one
// time key per row plus one or more named value columns. Frames are built
// once (from the signal generator, loose rows, or CSV) and treated as
// immutable afterwards; all views and windows over a Frame share its
// backing storage.
package series

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Frame is a time-indexed table of float64 columns.
type Frame struct {
	times  []time.Time
	names  []string
	values [][]float64
}

// New creates a Frame from parallel slices: one timestamp per row and one
// values row per timestamp, each of width len(names).
func New(times []time.Time, names []string, values [][]float64) (*Frame, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("frame needs at least one value column")
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("frame has %d timestamps but %d value rows", len(times), len(values))
	}
	for i, row := range values {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(names))
		}
	}

	return &Frame{times: times, names: names, values: values}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.times)
}

// Width returns the number of value columns.
func (f *Frame) Width() int {
	return len(f.names)
}

// Columns returns a copy of the value column names.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Time returns the timestamp of row i.
func (f *Frame) Time(i int) time.Time {
	return f.times[i]
}

// Times returns a copy of the time index.
func (f *Frame) Times() []time.Time {
	out := make([]time.Time, len(f.times))
	copy(out, f.times)
	return out
}

// Row returns a copy of the values of row i.
func (f *Frame) Row(i int) []float64 {
	out := make([]float64, len(f.values[i]))
	copy(out, f.values[i])
	return out
}

// At returns the value at row i, column j.
func (f *Frame) At(i, j int) float64 {
	return f.values[i][j]
}

// Column returns a copy of a named column.
func (f *Frame) Column(name string) ([]float64, error) {
	col := -1
	for j, n := range f.names {
		if n == name {
			col = j
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}

	out := make([]float64, len(f.values))
	for i, row := range f.values {
		out[i] = row[col]
	}
	return out, nil
}

// Select returns a new Frame holding only the named columns, in the given
// order. The time index is shared; values are copied.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("select needs at least one column")
	}

	cols := make([]int, len(names))
	for k, name := range names {
		cols[k] = -1
		for j, n := range f.names {
			if n == name {
				cols[k] = j
				break
			}
		}
		if cols[k] < 0 {
			return nil, fmt.Errorf("unknown column %q", name)
		}
	}

	out := make([][]float64, len(f.values))
	for i, row := range f.values {
		picked := make([]float64, len(cols))
		for k, j := range cols {
			picked[k] = row[j]
		}
		out[i] = picked
	}

	selected := make([]string, len(names))
	copy(selected, names)
	return &Frame{times: f.times, names: selected, values: out}, nil
}

// Head returns a view of the first n rows. n is clamped to [0, Len()].
// The view shares backing storage with f.
func (f *Frame) Head(n int) *Frame {
	n = clampRows(n, f.Len())
	return &Frame{times: f.times[:n], names: f.names, values: f.values[:n]}
}

// Tail returns a view of the last n rows. n is clamped to [0, Len()].
// The view shares backing storage with f.
func (f *Frame) Tail(n int) *Frame {
	n = clampRows(n, f.Len())
	return &Frame{times: f.times[f.Len()-n:], names: f.names, values: f.values[f.Len()-n:]}
}

func clampRows(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// Summary holds descriptive statistics of a single column.
type Summary struct {
	Rows int     `json:"rows"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Describe computes summary statistics of a named column. NaN entries are
// excluded from the statistics; Rows reports the full row count.
func (f *Frame) Describe(name string) (Summary, error) {
	col, err := f.Column(name)
	if err != nil {
		return Summary{}, err
	}

	valid := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return Summary{}, fmt.Errorf("column %q has no valid values", name)
	}

	std := 0.0
	if len(valid) > 1 {
		std = stat.StdDev(valid, nil)
	}

	return Summary{
		Rows: f.Len(),
		Mean: stat.Mean(valid, nil),
		Std:  std,
		Min:  floats.Min(valid),
		Max:  floats.Max(valid),
	}, nil
}
