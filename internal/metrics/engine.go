// Package metrics reduces a rate series to descriptive statistics.
//
// Every function is pure and expects the series in its stored order
// (newest first, as produced by the fetcher). Zero divisors are reported
// as domain.ErrDivisionByZero instead of producing Inf or NaN.
package metrics

import (
	"fmt"
	"math"

	"fxreport/internal/domain"

	"gonum.org/v1/gonum/stat"
)

// StandardDeviation returns the population standard deviation.
func StandardDeviation(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, domain.ErrEmptyInput
	}
	_, std := stat.PopMeanStdDev(series, nil)
	return std, nil
}

// PercentChange returns (first - last) / first * 100. Because series are
// stored newest first, a positive value means the rate fell over the period.
func PercentChange(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, domain.ErrEmptyInput
	}
	first, last := series[0], series[len(series)-1]
	if first == 0 {
		return 0, fmt.Errorf("percent change with zero first value: %w", domain.ErrDivisionByZero)
	}
	return (first - last) / first * 100, nil
}

// RateOfChange returns the percentage change between each pair of
// neighbours, len(series)-1 values. Shorter series give an empty result.
func RateOfChange(series []float64) ([]float64, error) {
	if len(series) < 2 {
		return []float64{}, nil
	}
	roc := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1]
		if prev == 0 {
			return nil, fmt.Errorf("rate of change with zero value at index %d: %w", i-1, domain.ErrDivisionByZero)
		}
		roc = append(roc, (series[i]-prev)/prev*100)
	}
	return roc, nil
}

// MovingAverage returns the simple moving average of every full window.
// When the series is shorter than the window, the mean of the whole series
// is returned as the only value.
func MovingAverage(series []float64, window int) ([]float64, error) {
	switch {
	case window == 0:
		return nil, fmt.Errorf("moving average with zero window: %w", domain.ErrDivisionByZero)
	case window < 0:
		return nil, fmt.Errorf("moving average window %d: %w", window, domain.ErrInvalidRange)
	case len(series) == 0:
		return nil, domain.ErrEmptyInput
	}

	if len(series) < window {
		return []float64{stat.Mean(series, nil)}, nil
	}
	averages := make([]float64, 0, len(series)-window+1)
	for i := 0; i+window <= len(series); i++ {
		averages = append(averages, stat.Mean(series[i:i+window], nil))
	}
	return averages, nil
}

func checkFinite(series []float64) error {
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite rate at index %d: %w", i, domain.ErrInvalidRange)
		}
	}
	return nil
}
