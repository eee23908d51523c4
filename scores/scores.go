// Package scores provides the error metrics used when comparing predicted
// values against actuals, e.g. for titling backtest panels or building a
// model comparison table.
package scores

import (
	"errors"
	"math"
)

var (
	ErrLenMismatch    = errors.New("predicted and actual have different lengths")
	ErrNoValidSamples = errors.New("no valid samples to score")
)

// Func scores a prediction against actual values. Implementations skip
// NaN samples.
type Func func(actual, predicted []float64) (float64, error)

// Named pairs a metric function with the label used in panel titles.
type Named struct {
	Name  string
	Score Func
}

// DefaultMetric returns the symmetric mean absolute percentage error,
// the default backtest scoring metric.
func DefaultMetric() Named {
	return Named{Name: "smape", Score: SMAPE}
}

// SMAPE computes the symmetric mean absolute percentage error,
// mean(2*|predicted-actual| / (|actual|+|predicted|)). Samples where both
// values are zero are skipped.
func SMAPE(actual, predicted []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrLenMismatch
	}

	var smape float64
	var n int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		denom := math.Abs(actual[i]) + math.Abs(predicted[i])
		if denom == 0 {
			continue
		}
		smape += 2.0 * math.Abs(predicted[i]-actual[i]) / denom
		n++
	}
	if n == 0 {
		return 0, ErrNoValidSamples
	}
	return smape / float64(n), nil
}

// MAPE computes the mean absolute percentage error skipping samples with
// a zero actual value.
func MAPE(actual, predicted []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrLenMismatch
	}

	var mape float64
	var n int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
		n++
	}
	if n == 0 {
		return 0, ErrNoValidSamples
	}
	return mape / float64(n), nil
}

// MSE computes the mean squared error.
func MSE(actual, predicted []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrLenMismatch
	}

	var mse float64
	var n int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
		n++
	}
	if n == 0 {
		return 0, ErrNoValidSamples
	}
	return mse / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(actual, predicted []float64) (float64, error) {
	mse, err := MSE(actual, predicted)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}
