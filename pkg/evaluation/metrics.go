// Package evaluation scores forecasts against ground truth.
package evaluation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon clamps the denominators of the percentage metrics so zero truths
// keep MAPE and SMAPE finite.
const epsilon = 1.17e-6

func checkPair(pred, truth []float64) error {
	if len(pred) == 0 {
		return fmt.Errorf("metric needs at least one value")
	}
	if len(pred) != len(truth) {
		return fmt.Errorf("prediction and truth lengths differ: %d vs %d", len(pred), len(truth))
	}
	return nil
}

// MAE returns the mean absolute error of pred against truth.
func MAE(pred, truth []float64) (float64, error) {
	if err := checkPair(pred, truth); err != nil {
		return 0, err
	}
	return floats.Distance(pred, truth, 1) / float64(len(pred)), nil
}

// MSE returns the mean squared error of pred against truth.
func MSE(pred, truth []float64) (float64, error) {
	if err := checkPair(pred, truth); err != nil {
		return 0, err
	}
	d := floats.Distance(pred, truth, 2)
	return d * d / float64(len(pred)), nil
}

// RMSE returns the root mean squared error of pred against truth.
func RMSE(pred, truth []float64) (float64, error) {
	mse, err := MSE(pred, truth)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAPE returns the mean absolute percentage error of pred against truth:
// mean(|pred-truth| / max(|truth|, epsilon)).
func MAPE(pred, truth []float64) (float64, error) {
	if err := checkPair(pred, truth); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := range pred {
		sum += math.Abs(pred[i]-truth[i]) / math.Max(math.Abs(truth[i]), epsilon)
	}
	return sum / float64(len(pred)), nil
}

// SMAPE returns the symmetric mean absolute percentage error of pred
// against truth: mean(2·|pred-truth| / max(|pred|+|truth|, epsilon)).
func SMAPE(pred, truth []float64) (float64, error) {
	if err := checkPair(pred, truth); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := range pred {
		sum += 2 * math.Abs(pred[i]-truth[i]) / math.Max(math.Abs(pred[i])+math.Abs(truth[i]), epsilon)
	}
	return sum / float64(len(pred)), nil
}
