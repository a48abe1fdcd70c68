// Package scheduler runs recurring replay jobs on a cron cadence, typically
// a nightly re-evaluation of the trailing window after new picks are graded.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/model-sentry/internal/ledger"
	"github.com/yourusername/model-sentry/internal/replay"
	"github.com/yourusername/model-sentry/internal/strategy"
)

// Scheduler manages recurring replay jobs
type Scheduler struct {
	cron            *cron.Cron
	loader          *ledger.Loader
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(loader *ledger.Loader, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		loader:          loader,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRecurringReplay schedules a replay of the trailing window. Each
// firing replays [today − trailingDays, today] with a fresh strategy
// instance.
func (s *Scheduler) ScheduleRecurringReplay(cronExpression string, build strategy.Factory, cfg replay.Config, trailingDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if trailingDays <= 0 {
		return fmt.Errorf("trailing days must be positive")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		runCfg := cfg
		runCfg.EndDate = ledger.Normalize(time.Now())
		runCfg.StartDate = runCfg.EndDate.AddDate(0, 0, -trailingDays)

		strat, err := build()
		if err != nil {
			s.logger.WithError(err).Error("Scheduled replay could not build strategy")
			return
		}

		engine, err := replay.NewEngine(runCfg, s.loader, s.logger)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled replay has invalid config")
			return
		}

		result, err := engine.Run(ctx, strat)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled replay failed")
			return
		}

		s.logger.WithFields(logrus.Fields{
			"strategy":       result.Summary.StrategyName,
			"start_date":     runCfg.StartDate.Format("2006-01-02"),
			"end_date":       runCfg.EndDate.Format("2006-01-02"),
			"cumulative_pnl": result.Summary.CumulativePnL,
			"hit_rate":       result.Summary.HitRate,
			"blocked_days":   result.Summary.BlockedDays,
		}).Info("Scheduled replay completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled recurring replay job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for in-flight jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// JobCount returns the number of scheduled jobs
func (s *Scheduler) JobCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobIDs)
}
