package rate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"fxreport/internal/domain"
	"fxreport/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Analysis is the outcome of one run. Series and Rows are aligned: Series[i]
// is the data Rows[i] was computed from. Currencies without data are listed
// in Skipped only.
type Analysis struct {
	RunID   string
	Base    domain.CurrencyCode
	Days    int
	Sampled []domain.CurrencyCode
	Series  []domain.TimeSeries
	Rows    []domain.Metrics
	Skipped []domain.CurrencyCode
	Ranked  domain.RankedList
}

// Usable reports whether at least one currency produced data.
func (a Analysis) Usable() bool { return len(a.Rows) > 0 }

type Service struct {
	fetcher     *Fetcher
	rng         *rand.Rand
	shortWindow int
	longWindow  int
}

// Analyze validates the parameters, samples currencies, fetches their
// series and reduces each to a metrics row. Currencies without usable
// data are skipped, never fatal.
func (s *Service) Analyze(ctx context.Context, runID string, params Params) (Analysis, error) {
	req, err := Validate(params)
	if err != nil {
		return Analysis{}, err
	}
	log := logrus.WithFields(logrus.Fields{"run_id": runID, "base": req.Base.Display()})

	available := s.fetcher.AvailableCurrencies(ctx, req.Base)
	if len(available) == 0 {
		return Analysis{}, fmt.Errorf("base %s: %w", req.Base.Display(), domain.ErrNoCurrencies)
	}
	sampled, err := Sample(available, req.SampleSize, s.rng)
	if err != nil {
		return Analysis{}, err
	}
	log.Infof("Sampled %d of %d currencies over %d days", len(sampled), len(available), req.Days)

	analysis := Analysis{RunID: runID, Base: req.Base, Days: req.Days, Sampled: sampled}
	perf := make([]domain.Performance, 0, len(sampled))
	for _, currency := range sampled {
		if err = ctx.Err(); err != nil {
			return Analysis{}, err
		}
		series := s.fetcher.FetchSeries(ctx, currency, req.Base, req.Days)
		row, computeErr := metrics.Compute(series, s.shortWindow, s.longWindow)
		if computeErr != nil {
			if errors.Is(computeErr, domain.ErrNoDataAvailable) {
				log.Warnf("%s - No Data Available", currency.Display())
			} else {
				log.WithError(computeErr).Errorf("%s - skipped, metrics failed", currency.Display())
			}
			analysis.Skipped = append(analysis.Skipped, currency)
			continue
		}

		log.WithFields(logrus.Fields{
			"std_dev":  row.StdDev,
			"roc":      row.LastROC,
			"short_ma": row.LastShortMA,
			"long_ma":  row.LastLongMA,
		}).Infof("%s - change %.2f%%, max %v, min %v (%d/%d days)",
			currency.Display(), row.PctChange, row.MaxRate, row.MinRate, len(series.Rates), req.Days)

		analysis.Series = append(analysis.Series, series)
		analysis.Rows = append(analysis.Rows, row)
		perf = append(perf, domain.Performance{Currency: currency, PctChange: row.PctChange})
	}

	analysis.Ranked = Rank(perf)
	return analysis, nil
}

// NewService builds the analyzer. Non-positive windows fall back to the
// short (3) and long (10) defaults.
func NewService(fetcher *Fetcher, rng *rand.Rand, shortWindow, longWindow int) *Service {
	if shortWindow <= 0 {
		shortWindow = metrics.DefaultShortWindow
	}
	if longWindow <= 0 {
		longWindow = metrics.DefaultLongWindow
	}
	return &Service{fetcher: fetcher, rng: rng, shortWindow: shortWindow, longWindow: longWindow}
}
