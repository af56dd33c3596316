package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"fxreport/internal/adapters/cache"
	"fxreport/internal/adapters/chart"
	"fxreport/internal/adapters/currencyapi"
	"fxreport/internal/config"
	"fxreport/internal/domain"
	httpclient "fxreport/internal/platform/http"
	"fxreport/internal/platform/logging"
	"fxreport/internal/rate"
	"fxreport/internal/report"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	ratelimit "golang.org/x/time/rate"
)

var ErrUsage = errors.New("usage: fxreport [flags] <days> <sample-size> <base-currency>")

// Run parses the command line, validates it, then produces the report once
// or, with --every, on a schedule until ctx is done.
func Run(ctx context.Context, args []string) error {
	flags := config.NewFlagSet("fxreport")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	params, err := parsePositional(flags.Args())
	if err != nil {
		return err
	}
	// fail fast, before touching config files, network or output
	if _, err = rate.Validate(params); err != nil {
		return err
	}

	appCfg, err := config.Init(flags)
	if err != nil {
		return err
	}
	closeLog := logging.Setup(appCfg.Logging)
	defer closeLog()
	logrus.Info("✅ Config initialization successful")

	var limiter *ratelimit.Limiter
	if appCfg.Provider.RequestsPerSecond > 0 {
		limiter = ratelimit.NewLimiter(ratelimit.Limit(appCfg.Provider.RequestsPerSecond), 1)
	}
	rateClient := currencyapi.NewClient(
		httpclient.NewClient(appCfg.HTTPClient),
		appCfg.Provider.BaseURL,
		limiter,
	)
	assembler := report.NewAssembler(
		chart.NewTrendRenderer(appCfg.Report.ChartSizeInches),
		appCfg.Report.OutputDir,
		appCfg.Report.CSVName,
		appCfg.Report.PDFName,
		appCfg.Report.TopN,
	)

	job := func(jobCtx context.Context, runID string) error {
		return runReport(jobCtx, runID, params, appCfg, rateClient, assembler)
	}

	if appCfg.Schedule.Every <= 0 {
		return job(ctx, uuid.NewString())
	}

	scheduler := rate.NewScheduler(job, appCfg.Schedule.Every)
	if err = scheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start scheduler")
		return err
	}
	logrus.Infof("✅ Scheduler activation successful, reporting every %s", appCfg.Schedule.Every)
	<-ctx.Done()
	return scheduler.Shutdown()
}

// runReport performs one analysis with a cache scoped to this run only.
func runReport(ctx context.Context, runID string, params rate.Params, appCfg *config.AppConfig, rateClient *currencyapi.Client, assembler *report.Assembler) error {
	tableCache, err := cache.NewRateTableCache(appCfg.Cache.MaxItems)
	if err != nil {
		return err
	}
	defer tableCache.Close()

	fetcher := rate.NewFetcher(rateClient, tableCache, appCfg.Provider.Workers)
	service := rate.NewService(fetcher, newRand(appCfg.Sample.Seed), appCfg.Report.ShortWindow, appCfg.Report.LongWindow)

	analysis, err := service.Analyze(ctx, runID, params)
	if err != nil {
		return err
	}
	log := logrus.WithField("run_id", runID)
	if !analysis.Usable() {
		log.Warnf("No usable currencies among %d sampled; no report written", len(analysis.Sampled))
		return nil
	}

	artifacts, err := assembler.Write(analysis)
	if err != nil {
		return err
	}
	log.Infof("✅ Report ready: %d currencies, %d skipped (%s, %s)",
		len(analysis.Rows), len(analysis.Skipped), artifacts.CSVPath, artifacts.PDFPath)
	return nil
}

func parsePositional(args []string) (rate.Params, error) {
	if len(args) != 3 {
		return rate.Params{}, ErrUsage
	}
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return rate.Params{}, fmt.Errorf("days %q is not an integer: %w", args[0], domain.ErrInvalidRange)
	}
	sampleSize, err := strconv.Atoi(args[1])
	if err != nil {
		return rate.Params{}, fmt.Errorf("sample size %q is not an integer: %w", args[1], domain.ErrInvalidRange)
	}
	return rate.Params{Days: days, SampleSize: sampleSize, Base: strings.TrimSpace(args[2])}, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
