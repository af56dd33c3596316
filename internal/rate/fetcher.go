package rate

import (
	"context"
	"slices"
	"sync"
	"time"

	"fxreport/internal/adapters"
	"fxreport/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultNumWorkers = 5
const perRequestTimeout = 15 * time.Second

// Fetcher builds rate series from the provider's daily tables.
type Fetcher struct {
	client     adapters.RateClient
	cache      adapters.RateTableCache
	numWorkers int
	now        func() time.Time
}

// AvailableCurrencies lists the currencies of the latest table for base,
// sorted. A provider failure yields an empty list; the caller decides what
// an empty supply means.
func (f *Fetcher) AvailableCurrencies(ctx context.Context, base domain.CurrencyCode) []domain.CurrencyCode {
	table, ok := f.fetchTable(ctx, base, domain.LatestDay)
	if !ok {
		return nil
	}
	codes := make([]domain.CurrencyCode, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// FetchSeries collects the rate of currency against base for today and the
// days-1 days before it, newest first. Days the provider cannot serve, or
// whose table lacks the currency, are left out.
func (f *Fetcher) FetchSeries(ctx context.Context, currency, base domain.CurrencyCode, days int) domain.TimeSeries {
	series := domain.TimeSeries{Currency: currency, Base: base, Days: days}
	if days <= 0 {
		return series
	}
	today := f.now()

	// STEP 1: queue day offsets; offset 0 is today
	workQueue := make(chan int, days)
	for offset := 0; offset < days; offset++ {
		workQueue <- offset
	}
	close(workQueue)

	// STEP 2: workers write into the slot of their offset, so completion
	// order never changes the series order
	values := make([]float64, days)
	found := make([]bool, days)

	numWorkers := min(f.numWorkers, days)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.runWorker(ctx, workQueue, today, currency, base, values, found)
		}()
	}
	wg.Wait()

	// STEP 3: compact, keeping newest-first order
	series.Rates = make([]float64, 0, days)
	for offset, ok := range found {
		if ok {
			series.Rates = append(series.Rates, values[offset])
		}
	}
	return series
}

// FetchAll fetches one series per currency, one currency after another.
func (f *Fetcher) FetchAll(ctx context.Context, currencies []domain.CurrencyCode, base domain.CurrencyCode, days int) []domain.TimeSeries {
	all := make([]domain.TimeSeries, 0, len(currencies))
	for _, currency := range currencies {
		all = append(all, f.FetchSeries(ctx, currency, base, days))
	}
	return all
}

func (f *Fetcher) runWorker(ctx context.Context, workQueue <-chan int, today time.Time, currency, base domain.CurrencyCode, values []float64, found []bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case offset, ok := <-workQueue:
			if !ok {
				return
			}
			day := today.AddDate(0, 0, -offset).Format(domain.DayLayout)
			table, ok := f.fetchTable(ctx, base, day)
			if !ok {
				logrus.Warnf("Failed to fetch data for %s on %s", currency.Display(), day)
				continue
			}
			v, ok := table[currency]
			if !ok {
				logrus.Debugf("No %s rate in %s table on %s", currency.Display(), base.Display(), day)
				continue
			}
			values[offset] = v
			found[offset] = true
		}
	}
}

func (f *Fetcher) fetchTable(ctx context.Context, base domain.CurrencyCode, day string) (map[domain.CurrencyCode]float64, bool) {
	if f.cache != nil {
		if table, ok := f.cache.Get(base, day); ok {
			return table, true
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()
	table, err := f.client.GetRates(reqCtx, base, day)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"base": base.Display(), "day": day}).Debug("Rate table request failed")
		return nil, false
	}

	if f.cache != nil {
		f.cache.Set(base, day, table)
	}
	return table, true
}

// NewFetcher builds a fetcher. cache may be nil; numWorkers below 1 falls
// back to the default.
func NewFetcher(client adapters.RateClient, cache adapters.RateTableCache, numWorkers int) *Fetcher {
	if numWorkers < 1 {
		numWorkers = defaultNumWorkers
	}
	return &Fetcher{client: client, cache: cache, numWorkers: numWorkers, now: time.Now}
}
