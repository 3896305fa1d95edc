// Package forecasters provides the naive univariate baselines the workbench
// benchmarks against.
//
// All models are stateless: Predict reads a history of observations, oldest
// first, and extrapolates a fixed number of values ahead.
package forecasters

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned for model parameters outside their domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// Forecaster produces a fixed-horizon forecast from a history of
// observations.
type Forecaster interface {
	// Name returns the model identifier used in reports.
	Name() string

	// Predict forecasts the horizon values following history.
	Predict(ctx context.Context, history []float64) ([]float64, error)
}

// New builds a forecaster by name: "last_observation", "ema" or "drift".
// span sets the EMA window and is ignored by the other models; span <= 0
// selects DefaultEMASpan.
func New(name string, horizon, span int) (Forecaster, error) {
	switch name {
	case "last_observation":
		return NewLastObservation(horizon)
	case "ema":
		if span <= 0 {
			span = DefaultEMASpan
		}
		return NewEMA(horizon, span)
	case "drift":
		return NewDrift(horizon)
	default:
		return nil, fmt.Errorf("unknown forecaster %q: %w", name, ErrInvalidParameter)
	}
}
