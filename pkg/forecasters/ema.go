package forecasters

import (
	"context"
	"fmt"
)

// DefaultEMASpan is the EMA window used when a manifest does not set one.
const DefaultEMASpan = 5

// EMA forecasts a flat continuation of the exponential moving average level
// of the recent history.
type EMA struct {
	horizon int
	span    int
}

// NewEMA creates an EMA forecaster. horizon and span must be positive.
func NewEMA(horizon, span int) (*EMA, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d: %w", horizon, ErrInvalidParameter)
	}
	if span <= 0 {
		return nil, fmt.Errorf("span must be positive, got %d: %w", span, ErrInvalidParameter)
	}
	return &EMA{horizon: horizon, span: span}, nil
}

// Name returns the model identifier including the span, e.g. "ema(5)".
func (f *EMA) Name() string {
	return fmt.Sprintf("ema(%d)", f.span)
}

// Predict returns the EMA level of the recent history repeated horizon
// times.
func (f *EMA) Predict(ctx context.Context, history []float64) ([]float64, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("history cannot be empty")
	}

	level := computeEMA(history, f.span)
	out := make([]float64, f.horizon)
	for i := range out {
		out[i] = level
	}
	return out, nil
}

// computeEMA calculates the exponential moving average over the most recent
// n points. With fewer than n points the whole history is used.
//
// EMA_t = α * value_t + (1-α) * EMA_{t-1}
// where α = 2 / (w + 1) for the effective window length w, seeded with the
// oldest value in the window.
func computeEMA(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}

	start := 0
	if len(values) > n {
		start = len(values) - n
	}
	window := values[start:]

	alpha := 2.0 / float64(len(window)+1)
	ema := window[0]
	for i := 1; i < len(window); i++ {
		ema = alpha*window[i] + (1-alpha)*ema
	}

	return ema
}
