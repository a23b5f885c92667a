// Package scheduler runs the periodic settlement cycle and grace period finalization.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/pkg/workerpool"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	jobCycle  = "cycle"
	jobExpiry = "expiry"
)

// Config holds the job schedules. Specs use the standard five-field cron syntax or descriptors such as "@hourly".
type Config struct {
	CycleSpec    string
	ExpirySpec   string
	WindowLength time.Duration
	Workers      int
	ExpiryBatch  int
	// RunTimeout bounds a single job run. Zero leaves runs unbounded.
	RunTimeout time.Duration
}

// Scheduler settles the last closed window of every company on a cron schedule.
type Scheduler struct {
	settler   Settler
	directory Directory
	metrics   Metrics
	cfg       Config
	cron      *cron.Cron
	now       func() time.Time
	logger    *zap.Logger

	startOnce sync.Once
}

func New(settler Settler, directory Directory, metrics Metrics, cfg Config, logger *zap.Logger) (*Scheduler, error) {
	if settler == nil {
		return nil, errors.New("scheduler settler is required")
	}
	if directory == nil {
		return nil, errors.New("scheduler directory is required")
	}
	if metrics == nil {
		return nil, errors.New("scheduler metrics is required")
	}
	if _, err := cron.ParseStandard(cfg.CycleSpec); err != nil {
		return nil, fmt.Errorf("parse cycle spec %q: %w", cfg.CycleSpec, err)
	}
	if _, err := cron.ParseStandard(cfg.ExpirySpec); err != nil {
		return nil, fmt.Errorf("parse expiry spec %q: %w", cfg.ExpirySpec, err)
	}
	if cfg.WindowLength <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %s", cfg.WindowLength)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.ExpiryBatch < 1 {
		return nil, fmt.Errorf("expiry batch must be at least 1, got %d", cfg.ExpiryBatch)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")

	cronLog := newCronLogger(logger)
	return &Scheduler{
		settler:   settler,
		directory: directory,
		metrics:   metrics,
		cfg:       cfg,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		now:    clock.Now,
		logger: logger,
	}, nil
}

// Start registers both jobs and starts the cron loop. Job runs derive their context from ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	var err error
	s.startOnce.Do(func() {
		if _, err = s.cron.AddFunc(s.cfg.CycleSpec, s.job(ctx, jobCycle, s.RunCycle)); err != nil {
			return
		}
		if _, err = s.cron.AddFunc(s.cfg.ExpirySpec, s.job(ctx, jobExpiry, s.RunExpiry)); err != nil {
			return
		}
		s.cron.Start()
		s.logger.Info("scheduler started",
			zap.String("cycle_spec", s.cfg.CycleSpec),
			zap.String("expiry_spec", s.cfg.ExpirySpec),
			zap.Duration("window_length", s.cfg.WindowLength),
			zap.Int("workers", s.cfg.Workers),
		)
	})
	return err
}

// Stop stops scheduling new runs and waits for running ones or ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

func (s *Scheduler) job(ctx context.Context, name string, run func(context.Context) error) func() {
	return func() {
		if ctx.Err() != nil {
			return
		}
		runCtx := ctx
		if s.cfg.RunTimeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
			defer cancel()
		}

		if err := run(runCtx); err != nil {
			s.logger.Warn("scheduled run finished with errors", zap.String("job", name), zap.Error(err))
		}
	}
}

// RunCycle settles the most recent closed window of every active company.
// Company failures are isolated from each other and returned joined.
func (s *Scheduler) RunCycle(ctx context.Context) (err error) {
	started := time.Now()
	companies := 0
	defer func() {
		s.metrics.ObserveRun(jobCycle, companies, err, started)
	}()

	list, err := s.directory.Companies(ctx)
	var skipped error
	switch {
	case errors.Is(err, model.ErrInvalidCompany):
		s.logger.Warn("skipping invalid directory entries", zap.Int("valid", len(list)), zap.Error(err))
		skipped = fmt.Errorf("list companies: %w", err)
	case err != nil:
		return fmt.Errorf("list companies: %w", err)
	}
	companies = len(list)

	at := s.now()
	var confirmed, busy atomic.Int64
	err = workerpool.ProcessEach(ctx, s.cfg.Workers, list, func(ctx context.Context, company model.Company) error {
		window := model.WindowFor(company.ID, company.EmissionCap, at, s.cfg.WindowLength)
		attempt, err := s.settler.Settle(ctx, window)
		if errors.Is(err, model.ErrLockHeld) {
			// Another replica owns this company right now.
			busy.Add(1)
			return nil
		}
		if err != nil {
			return err
		}
		if attempt.State == model.AttemptConfirmed {
			confirmed.Add(1)
		}
		return nil
	})

	s.logger.Info("settlement cycle finished",
		zap.Time("at", at),
		zap.Int("companies", companies),
		zap.Int64("confirmed", confirmed.Load()),
		zap.Int64("busy", busy.Load()),
		zap.Bool("errors", err != nil || skipped != nil),
	)
	return errors.Join(skipped, err)
}

// RunExpiry finalizes windows whose grace period elapsed.
func (s *Scheduler) RunExpiry(ctx context.Context) (err error) {
	started := time.Now()
	settled := 0
	defer func() {
		s.metrics.ObserveRun(jobExpiry, settled, err, started)
	}()

	settled, err = s.settler.FinalizeExpired(ctx, s.cfg.ExpiryBatch)
	return err
}
