package dataset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/oscillab/oscillab/pkg/series"
)

// TimeDelayEmbed unrolls a univariate frame into delay coordinates: row k of
// the result holds the windowSize consecutive values starting at frame row
// k, in columns "0" through strconv.Itoa(windowSize-1), stamped with the
// window's start time. Only full windows are kept, so the result has
// Len()-windowSize+1 rows.
func TimeDelayEmbed(frame *series.Frame, windowSize int) (*series.Frame, error) {
	if frame == nil {
		return nil, fmt.Errorf("frame is nil: %w", ErrInvalidParameter)
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d: %w", windowSize, ErrInvalidParameter)
	}
	if frame.Width() != 1 {
		return nil, fmt.Errorf("delay embedding needs a univariate frame, got %d columns: %w", frame.Width(), ErrInvalidParameter)
	}
	if windowSize > frame.Len() {
		return nil, fmt.Errorf("window size %d exceeds %d rows: %w", windowSize, frame.Len(), ErrInvalidParameter)
	}

	names := make([]string, windowSize)
	for j := range names {
		names[j] = strconv.Itoa(j)
	}

	n := frame.Len() - windowSize + 1
	times := make([]time.Time, n)
	values := make([][]float64, n)
	for k := range n {
		times[k] = frame.Time(k)
		row := make([]float64, windowSize)
		for j := range row {
			row[j] = frame.At(k+j, 0)
		}
		values[k] = row
	}

	return series.New(times, names, values)
}
