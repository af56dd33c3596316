package adapters

import (
	"context"
	"fxreport/internal/domain"
)

// RateClient returns the rate table of base for a day ("latest" or YYYY-MM-DD).
type RateClient interface {
	GetRates(ctx context.Context, base domain.CurrencyCode, day string) (map[domain.CurrencyCode]float64, error)
}

// RateTableCache keeps rate tables for the duration of a single run.
type RateTableCache interface {
	Get(base domain.CurrencyCode, day string) (map[domain.CurrencyCode]float64, bool)
	Set(base domain.CurrencyCode, day string, table map[domain.CurrencyCode]float64)
}

// ChartRenderer rasterizes the trend of a series into an image file.
type ChartRenderer interface {
	RenderTrend(series domain.TimeSeries, path string) error
}
