package dataset

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/oscillab/oscillab/pkg/series"
)

// makeFrame builds an n-row single-column frame with values 0..n-1 on a
// one-second grid.
func makeFrame(t *testing.T, n int) *series.Frame {
	t.Helper()

	times := make([]time.Time, n)
	values := make([][]float64, n)
	base := time.Unix(0, 0).UTC()
	for i := range n {
		times[i] = base.Add(time.Duration(i) * time.Second)
		values[i] = []float64{float64(i)}
	}

	f, err := series.New(times, []string{"theta"}, values)
	if err != nil {
		t.Fatalf("series.New() error = %v", err)
	}
	return f
}

func TestValidateFrame_Warnings(t *testing.T) {
	base := time.Unix(0, 0).UTC()

	tests := []struct {
		name   string
		times  []time.Time
		values [][]float64
		want   string
	}{
		{
			name:   "unsorted index",
			times:  []time.Time{base.Add(time.Second), base},
			values: [][]float64{{1}, {2}},
			want:   "not sorted",
		},
		{
			name:   "duplicate timestamps",
			times:  []time.Time{base, base},
			values: [][]float64{{1}, {2}},
			want:   "duplicate",
		},
		{
			name:   "missing values",
			times:  []time.Time{base, base.Add(time.Second)},
			values: [][]float64{{1}, {math.NaN()}},
			want:   "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := series.New(tt.times, []string{"theta"}, tt.values)
			if err != nil {
				t.Fatalf("series.New() error = %v", err)
			}

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			if _, err := NewWindowDataset(f, 1, logger); err != nil {
				t.Fatalf("NewWindowDataset() error = %v", err)
			}

			if got := buf.String(); !strings.Contains(got, tt.want) {
				t.Errorf("log output %q does not mention %q", got, tt.want)
			}
		})
	}
}

func TestValidateFrame_CleanFrameIsSilent(t *testing.T) {
	f := makeFrame(t, 10)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if _, err := NewForecastDataset(f, 2, 1, logger); err != nil {
		t.Fatalf("NewForecastDataset() error = %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("expected no warnings, got %q", buf.String())
	}
}
