package metrics

import (
	"fmt"
	"math"

	"fxreport/internal/domain"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultShortWindow = 3
	DefaultLongWindow  = 10
)

// Compute derives the metrics row for one series. Empty series yield
// domain.ErrNoDataAvailable so that callers can skip the currency.
func Compute(series domain.TimeSeries, shortWindow, longWindow int) (domain.Metrics, error) {
	if series.Empty() {
		return domain.Metrics{}, fmt.Errorf("currency %s: %w", series.Currency.Display(), domain.ErrNoDataAvailable)
	}
	rates := series.Rates
	if err := checkFinite(rates); err != nil {
		return domain.Metrics{}, err
	}

	std, err := StandardDeviation(rates)
	if err != nil {
		return domain.Metrics{}, fmt.Errorf("failed to compute standard deviation: %w", err)
	}
	change, err := PercentChange(rates)
	if err != nil {
		return domain.Metrics{}, fmt.Errorf("failed to compute percent change: %w", err)
	}
	roc, err := RateOfChange(rates)
	if err != nil {
		return domain.Metrics{}, fmt.Errorf("failed to compute rate of change: %w", err)
	}
	shortMA, err := MovingAverage(rates, shortWindow)
	if err != nil {
		return domain.Metrics{}, fmt.Errorf("failed to compute short moving average: %w", err)
	}
	longMA, err := MovingAverage(rates, longWindow)
	if err != nil {
		return domain.Metrics{}, fmt.Errorf("failed to compute long moving average: %w", err)
	}

	row := domain.Metrics{
		Currency:    series.Currency,
		StdDev:      std,
		PctChange:   change,
		LastROC:     lastOrZero(roc),
		LastShortMA: lastOrZero(shortMA),
		LastLongMA:  lastOrZero(longMA),
		MaxRate:     floats.Max(rates),
		MinRate:     floats.Min(rates),
	}
	if err = checkFiniteRow(row); err != nil {
		return domain.Metrics{}, fmt.Errorf("currency %s: %w", series.Currency.Display(), err)
	}
	return row, nil
}

// checkFiniteRow rejects rows where finite rates still overflowed, e.g. a
// percent change over a subnormal first rate.
func checkFiniteRow(row domain.Metrics) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"stdDev", row.StdDev},
		{"pctChange", row.PctChange},
		{"roc", row.LastROC},
		{"shortMA", row.LastShortMA},
		{"longMA", row.LastLongMA},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("non-finite %s: %w", f.name, domain.ErrInvalidRange)
		}
	}
	return nil
}

func lastOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
