package rate

import (
	"context"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"fxreport/internal/adapters/currencyapi"
	"fxreport/internal/domain"
	"fxreport/internal/testutil"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProviderService(t *testing.T, provider *testutil.RateProvider) *Service {
	t.Helper()
	client := currencyapi.NewClient(http.DefaultClient, provider.Start(t), nil)
	fetcher := NewFetcher(client, newMapCache(), 3)
	fetcher.now = func() time.Time { return fixedNow }
	return NewService(fetcher, rand.New(rand.NewPCG(42, 42)), 0, 0)
}

func captureLogs(t *testing.T) *logtest.Hook {
	t.Helper()
	hook := logtest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })
	return hook
}

func TestService_Analyze_SkipsCurrencyWithoutData(t *testing.T) {
	hook := captureLogs(t)
	provider := testutil.NewRateProvider()
	provider.SetTable("latest", "usd", map[string]float64{"eur": 0.9, "gbp": 0.8, "jpy": 150, "cad": 1.3, "chf": 0.85})
	for offset := 0; offset < 10; offset++ {
		day := fixedNow.AddDate(0, 0, -offset).Format(domain.DayLayout)
		drift := float64(offset) / 100
		// chf never appears in the daily tables
		provider.SetTable(day, "usd", map[string]float64{
			"eur": 0.9 + drift, "gbp": 0.8 + drift, "jpy": 150 + drift, "cad": 1.3 + drift,
		})
	}
	svc := newProviderService(t, provider)

	analysis, err := svc.Analyze(context.Background(), "run-1", Params{Base: "USD", Days: 10, SampleSize: 5})

	require.NoError(t, err)
	require.True(t, analysis.Usable())
	require.Len(t, analysis.Sampled, 5)
	require.Len(t, analysis.Rows, 4)
	require.Len(t, analysis.Series, 4)
	require.Len(t, analysis.Ranked, 4)
	require.Equal(t, []domain.CurrencyCode{"chf"}, analysis.Skipped)
	for i, row := range analysis.Rows {
		require.Equal(t, analysis.Series[i].Currency, row.Currency)
		require.Len(t, analysis.Series[i].Rates, 10)
	}

	var notice bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "CHF - No Data Available" {
			notice = true
			require.Equal(t, logrus.WarnLevel, entry.Level)
			require.Equal(t, "run-1", entry.Data["run_id"])
		}
	}
	require.True(t, notice, "expected a skip notice for CHF")

	// every day table is downloaded once thanks to the run cache
	require.Equal(t, 1, provider.Requests(fixedNow.Format(domain.DayLayout), "usd"))
}

func TestService_Analyze_RanksByPercentChange(t *testing.T) {
	provider := testutil.NewRateProvider()
	provider.SetTable("latest", "eur", map[string]float64{"usd": 1, "gbp": 1, "jpy": 1})
	provider.SetTable("2026-10-15", "eur", map[string]float64{"usd": 90, "gbp": 100, "jpy": 110})
	provider.SetTable("2026-10-14", "eur", map[string]float64{"usd": 100, "gbp": 100, "jpy": 100})
	svc := newProviderService(t, provider)

	analysis, err := svc.Analyze(context.Background(), "run-2", Params{Base: "eur", Days: 2, SampleSize: 3})

	require.NoError(t, err)
	require.Len(t, analysis.Ranked, 3)
	// (first - last) / first: usd fell into the past, jpy rose
	require.Equal(t, domain.CurrencyCode("jpy"), analysis.Ranked[0].Currency)
	require.InDelta(t, (110.0-100.0)/110.0*100, analysis.Ranked[0].PctChange, 1e-9)
	require.Equal(t, domain.CurrencyCode("gbp"), analysis.Ranked[1].Currency)
	require.Equal(t, domain.CurrencyCode("usd"), analysis.Ranked[2].Currency)
	require.InDelta(t, (90.0-100.0)/90.0*100, analysis.Ranked[2].PctChange, 1e-9)
}

func TestService_Analyze_NoUsableCurrencies(t *testing.T) {
	provider := testutil.NewRateProvider()
	provider.SetTable("latest", "usd", map[string]float64{"eur": 0.9, "gbp": 0.8})
	svc := newProviderService(t, provider)

	analysis, err := svc.Analyze(context.Background(), "run-3", Params{Base: "usd", Days: 3, SampleSize: 2})

	require.NoError(t, err)
	require.False(t, analysis.Usable())
	require.Empty(t, analysis.Ranked)
	require.ElementsMatch(t, []domain.CurrencyCode{"eur", "gbp"}, analysis.Skipped)
}

func TestService_Analyze_NoCurrenciesForBase(t *testing.T) {
	provider := testutil.NewRateProvider()
	svc := newProviderService(t, provider)

	_, err := svc.Analyze(context.Background(), "run-4", Params{Base: "xyz", Days: 3, SampleSize: 2})

	require.ErrorIs(t, err, domain.ErrNoCurrencies)
}

func TestService_Analyze_InsufficientSupply(t *testing.T) {
	provider := testutil.NewRateProvider()
	provider.SetTable("latest", "usd", map[string]float64{"eur": 0.9})
	svc := newProviderService(t, provider)

	_, err := svc.Analyze(context.Background(), "run-5", Params{Base: "usd", Days: 3, SampleSize: 2})

	require.ErrorIs(t, err, domain.ErrInsufficientSupply)
	require.Equal(t, 1, provider.TotalRequests())
}

func TestService_Analyze_ValidationFailsBeforeNetwork(t *testing.T) {
	client := new(MockRateClient)
	svc := NewService(NewFetcher(client, nil, 1), rand.New(rand.NewPCG(1, 1)), 3, 10)

	_, err := svc.Analyze(context.Background(), "run-6", Params{Base: "usd", Days: 101, SampleSize: 2})
	require.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.Analyze(context.Background(), "run-6", Params{Base: "dollar", Days: 5, SampleSize: 2})
	require.ErrorIs(t, err, domain.ErrInvalidCurrencyCode)

	client.AssertNotCalled(t, "GetRates", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Analyze_ZeroRateIsSkipped(t *testing.T) {
	client := new(MockRateClient)
	client.On("GetRates", mock.Anything, domain.CurrencyCode("usd"), "latest").
		Return(map[domain.CurrencyCode]float64{"eur": 0.9}, nil).Once()
	client.On("GetRates", mock.Anything, domain.CurrencyCode("usd"), "2026-10-15").
		Return(map[domain.CurrencyCode]float64{"eur": 0}, nil).Once()
	client.On("GetRates", mock.Anything, domain.CurrencyCode("usd"), "2026-10-14").
		Return(map[domain.CurrencyCode]float64{"eur": 0.9}, nil).Once()
	fetcher := newTestFetcher(client, nil, 1)
	svc := NewService(fetcher, rand.New(rand.NewPCG(1, 1)), 3, 10)

	analysis, err := svc.Analyze(context.Background(), "run-7", Params{Base: "usd", Days: 2, SampleSize: 1})

	require.NoError(t, err)
	require.False(t, analysis.Usable())
	require.Equal(t, []domain.CurrencyCode{"eur"}, analysis.Skipped)
	client.AssertExpectations(t)
}

func TestService_Analyze_OverflowingRateIsSkipped(t *testing.T) {
	client := new(MockRateClient)
	client.On("GetRates", mock.Anything, domain.CurrencyCode("usd"), "latest").
		Return(map[domain.CurrencyCode]float64{"eur": 0.9, "gbp": 0.8}, nil).Once()
	client.On("GetRates", mock.Anything, domain.CurrencyCode("usd"), "2026-10-15").
		Return(map[domain.CurrencyCode]float64{"eur": 1e-310, "gbp": 0.8}, nil).Once()
	client.On("GetRates", mock.Anything, domain.CurrencyCode("usd"), "2026-10-14").
		Return(map[domain.CurrencyCode]float64{"eur": 1, "gbp": 0.79}, nil).Once()
	fetcher := newTestFetcher(client, newMapCache(), 1)
	svc := NewService(fetcher, rand.New(rand.NewPCG(1, 1)), 3, 10)

	analysis, err := svc.Analyze(context.Background(), "run-8", Params{Base: "usd", Days: 2, SampleSize: 2})

	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyCode{"eur"}, analysis.Skipped)
	require.Len(t, analysis.Rows, 1)
	require.Equal(t, domain.CurrencyCode("gbp"), analysis.Rows[0].Currency)
	client.AssertExpectations(t)
}

func TestNewService_DefaultWindows(t *testing.T) {
	svc := NewService(nil, nil, 0, -1)
	require.Equal(t, 3, svc.shortWindow)
	require.Equal(t, 10, svc.longWindow)
}
