package forecasters

import (
	"context"
	"errors"
	"testing"
)

func TestNewEMA_Validation(t *testing.T) {
	if _, err := NewEMA(0, 5); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NewEMA(horizon=0) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := NewEMA(3, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NewEMA(span=0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestEMA_Predict(t *testing.T) {
	f, err := NewEMA(4, 5)
	if err != nil {
		t.Fatalf("NewEMA() error = %v", err)
	}

	got, err := f.Predict(context.Background(), []float64{100, 100, 100, 100, 100})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("len(Predict()) = %d, want 4", len(got))
	}
	for i, v := range got {
		if v != 100 {
			t.Errorf("prediction[%d] = %v, want 100", i, v)
		}
	}
}

func TestEMA_Predict_EmptyHistory(t *testing.T) {
	f, err := NewEMA(4, 5)
	if err != nil {
		t.Fatalf("NewEMA() error = %v", err)
	}

	if _, err := f.Predict(context.Background(), []float64{}); err == nil {
		t.Error("Predict(empty history) expected error, got nil")
	}
}

func TestComputeEMA(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		n      int
		want   float64
	}{
		{
			name:   "constant values",
			values: []float64{100, 100, 100, 100, 100},
			n:      5,
			want:   100,
		},
		{
			name:   "increasing values",
			values: []float64{10, 20, 30, 40, 50},
			n:      5,
			want:   34.0, // approximately
		},
		{
			name:   "fewer values than n",
			values: []float64{10, 20, 30},
			n:      5,
			want:   22.5, // approximately
		},
		{
			name:   "single value",
			values: []float64{42},
			n:      5,
			want:   42,
		},
		{
			name:   "more values than n uses the tail",
			values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			n:      5,
			want:   8.33, // approximately
		},
		{
			name:   "empty values",
			values: []float64{},
			n:      5,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeEMA(tt.values, tt.n)

			tolerance := tt.want * 0.01
			if tolerance == 0 {
				tolerance = 0.01
			}
			if got < tt.want-tolerance || got > tt.want+tolerance {
				t.Errorf("computeEMA() = %.2f, want ~%.2f", got, tt.want)
			}
		})
	}
}
