package forecasters

import (
	"context"
	"fmt"
)

// LastObservation repeats the most recent observation across the horizon.
type LastObservation struct {
	horizon int
}

// NewLastObservation creates a last-observation forecaster. horizon must be
// positive.
func NewLastObservation(horizon int) (*LastObservation, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d: %w", horizon, ErrInvalidParameter)
	}
	return &LastObservation{horizon: horizon}, nil
}

// Name returns the model identifier.
func (f *LastObservation) Name() string {
	return "last_observation"
}

// Predict returns the last history value repeated horizon times.
func (f *LastObservation) Predict(ctx context.Context, history []float64) ([]float64, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("history cannot be empty")
	}

	last := history[len(history)-1]
	out := make([]float64, f.horizon)
	for i := range out {
		out[i] = last
	}
	return out, nil
}
