package evaluation

import (
	"context"
	"fmt"

	"github.com/oscillab/oscillab/pkg/dataset"
	"github.com/oscillab/oscillab/pkg/forecasters"
)

// Report carries the metric suite of one forecaster over a dataset.
type Report struct {
	Model   string  `json:"model"`
	Step    int     `json:"step"`
	Windows int     `json:"windows"`
	MAE     float64 `json:"mae"`
	MSE     float64 `json:"mse"`
	RMSE    float64 `json:"rmse"`
	MAPE    float64 `json:"mape"`
	SMAPE   float64 `json:"smape"`
}

// Evaluator scores forecasters over every window of a forecast dataset at
// one fixed step of the horizon.
type Evaluator struct {
	step int
}

// NewEvaluator creates an evaluator for the given horizon step (0-based).
func NewEvaluator(step int) (*Evaluator, error) {
	if step < 0 {
		return nil, fmt.Errorf("step must be non-negative, got %d", step)
	}
	return &Evaluator{step: step}, nil
}

// Step returns the horizon step being scored.
func (e *Evaluator) Step() int {
	return e.step
}

// Truths collects the ground-truth value at the evaluation step of every
// window.
func (e *Evaluator) Truths(ds *dataset.ForecastDataset) ([]float64, error) {
	if err := e.check(ds); err != nil {
		return nil, err
	}

	out := make([]float64, ds.Len())
	for i := range out {
		w, err := ds.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = w.Future[e.step][0]
	}
	return out, nil
}

// Predictions runs the forecaster over the history of every window and
// collects its prediction at the evaluation step.
func (e *Evaluator) Predictions(ctx context.Context, f forecasters.Forecaster, ds *dataset.ForecastDataset) ([]float64, error) {
	if err := e.check(ds); err != nil {
		return nil, err
	}

	out := make([]float64, ds.Len())
	for i := range out {
		w, err := ds.Get(i)
		if err != nil {
			return nil, err
		}

		history := make([]float64, len(w.History))
		for j, row := range w.History {
			history[j] = row[0]
		}

		yhat, err := f.Predict(ctx, history)
		if err != nil {
			return nil, fmt.Errorf("predict window %d: %w", i, err)
		}
		if len(yhat) <= e.step {
			return nil, fmt.Errorf("model %s returned %d values, step %d needs more", f.Name(), len(yhat), e.step)
		}
		out[i] = yhat[e.step]
	}
	return out, nil
}

// Evaluate scores the forecaster over the whole dataset.
func (e *Evaluator) Evaluate(ctx context.Context, f forecasters.Forecaster, ds *dataset.ForecastDataset) (Report, error) {
	truths, err := e.Truths(ds)
	if err != nil {
		return Report{}, err
	}
	preds, err := e.Predictions(ctx, f, ds)
	if err != nil {
		return Report{}, err
	}

	mae, err := MAE(preds, truths)
	if err != nil {
		return Report{}, err
	}
	mse, err := MSE(preds, truths)
	if err != nil {
		return Report{}, err
	}
	rmse, err := RMSE(preds, truths)
	if err != nil {
		return Report{}, err
	}
	mape, err := MAPE(preds, truths)
	if err != nil {
		return Report{}, err
	}
	smape, err := SMAPE(preds, truths)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Model:   f.Name(),
		Step:    e.step,
		Windows: ds.Len(),
		MAE:     mae,
		MSE:     mse,
		RMSE:    rmse,
		MAPE:    mape,
		SMAPE:   smape,
	}, nil
}

// check rejects datasets the evaluator cannot score: the step must fall
// inside the horizon, and histories must be univariate so window columns
// map one-to-one onto forecaster inputs.
func (e *Evaluator) check(ds *dataset.ForecastDataset) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}
	if ds.Width() != 1 {
		return fmt.Errorf("evaluation needs a univariate dataset, got %d columns", ds.Width())
	}
	if e.step >= ds.Horizon() {
		return fmt.Errorf("step %d outside horizon %d", e.step, ds.Horizon())
	}
	if ds.Len() == 0 {
		return fmt.Errorf("dataset has no windows")
	}
	return nil
}
