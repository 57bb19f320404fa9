package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 5 * time.Minute

type InterestAccruer interface {
	AccrueAll(ctx context.Context) ([]domain.InterestResult, error)
}

// Scheduler runs the periodic interest accrual on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	interest InterestAccruer
	schedule string
	timeout  time.Duration
}

func New(interest InterestAccruer, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Slog().Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Scheduler{
		cron:     c,
		interest: interest,
		schedule: schedule,
		timeout:  defaultJobTimeout,
	}
}

// Start registers the interest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunInterestJob); err != nil {
		logger.Error("scheduler failed to schedule interest job", err, logger.Fields{
			"schedule": s.schedule,
		})
		return err
	}

	logger.Info("scheduler scheduled interest job", logger.Fields{
		"schedule": s.schedule,
	})
	s.cron.Start()
	return nil
}

// Stop stops the cron loop; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) RunInterestJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	started := time.Now()
	results, err := s.interest.AccrueAll(ctx)
	if err != nil {
		logger.Error("scheduler interest job failed", err, logger.Fields{
			"processed": len(results),
		})
		return
	}

	applied := 0
	for _, result := range results {
		if result.InterestApplied != nil {
			applied++
		}
	}

	logger.Info("scheduler interest job completed", logger.Fields{
		"processed":  len(results),
		"applied":    applied,
		"durationMs": time.Since(started).Milliseconds(),
	})
}
