package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultReportInterval = time.Hour

// ReportJob runs one complete analysis and report. runID identifies the
// execution in logs and output.
type ReportJob func(ctx context.Context, runID string) error

// Scheduler repeats a report job on a fixed interval, starting immediately.
// A run that is still going when the next one is due delays it.
type Scheduler struct {
	job      ReportJob
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	task := func(jobCtx context.Context) {
		runID := uuid.NewString()
		if jobErr := s.job(jobCtx, runID); jobErr != nil {
			logrus.Errorf("Report job %s failed: %v", runID, jobErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(job ReportJob, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultReportInterval
	}
	return &Scheduler{job: job, interval: interval}
}
