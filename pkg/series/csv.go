package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// ReadCSV loads a Frame from CSV data. The first header field names the time
// column and its cells must hold RFC3339 timestamps; every other column is
// parsed as float64. Empty cells become NaN.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("csv needs a time column and at least one value column, got %d columns", len(header))
	}
	names := header[1:]

	var times []time.Time
	var values [][]float64
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		ts, err := time.Parse(time.RFC3339Nano, record[0])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: parse %q: %w", line, header[0], err)
		}

		row := make([]float64, len(names))
		for j, cell := range record[1:] {
			if cell == "" {
				row[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: parse %q: %w", line, names[j], err)
			}
			row[j] = v
		}

		times = append(times, ts)
		values = append(values, row)
	}

	if len(times) == 0 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	return New(times, names, values)
}

// WriteCSV writes f as CSV with an RFC3339 time column named "ts".
// NaN values are written as "NaN" and round-trip through ReadCSV.
func WriteCSV(w io.Writer, f *Frame) error {
	cw := csv.NewWriter(w)

	header := append([]string{TimeColumn}, f.names...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, 1+len(f.names))
	for i := range f.times {
		record[0] = f.times[i].UTC().Format(time.RFC3339Nano)
		for j, v := range f.values[i] {
			record[1+j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
