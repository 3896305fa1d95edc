package forecasters

import (
	"context"
	"fmt"
)

// Drift extends the average historical slope beyond the last observation.
type Drift struct {
	horizon int
}

// NewDrift creates a drift forecaster. horizon must be positive.
func NewDrift(horizon int) (*Drift, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d: %w", horizon, ErrInvalidParameter)
	}
	return &Drift{horizon: horizon}, nil
}

// Name returns the model identifier.
func (f *Drift) Name() string {
	return "drift"
}

// Predict draws the line through the first and last history values and
// continues it past the last observation. A single-point history forecasts
// flat.
func (f *Drift) Predict(ctx context.Context, history []float64) ([]float64, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("history cannot be empty")
	}

	last := history[len(history)-1]
	slope := 0.0
	if len(history) > 1 {
		slope = (last - history[0]) / float64(len(history)-1)
	}

	out := make([]float64, f.horizon)
	for i := range out {
		out[i] = last + float64(i+1)*slope
	}
	return out, nil
}
