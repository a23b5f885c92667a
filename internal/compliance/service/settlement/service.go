// Package settlement turns compliance verdicts into idempotent on-chain settlements with an audit trail.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/retry"
	"go.uber.org/zap"
)

// Config holds the orchestrator knobs.
type Config struct {
	// GracePeriod delays finalizing a penalty so the company can remediate. Zero disables it.
	GracePeriod time.Duration
	// ReconcileTimeout bounds how long a submitted attempt's receipt is polled.
	ReconcileTimeout time.Duration
	Retry            retry.Policy
}

// Dependencies are the collaborators of a Service. Notifier is optional.
type Dependencies struct {
	Reader    Reader
	Evaluator Evaluator
	Directory Directory
	Ledger    Ledger
	Audit     AuditRecorder
	Locker    Locker
	Notifier  Notifier
	Metrics   Metrics
}

// Service is the settlement orchestrator.
type Service struct {
	reader    Reader
	evaluator Evaluator
	directory Directory
	ledger    Ledger
	audit     AuditRecorder
	locker    Locker
	notifier  Notifier
	metrics   Metrics

	gracePeriod      time.Duration
	reconcileTimeout time.Duration
	retry            retry.Policy
	now              func() time.Time
	logger           *zap.Logger
}

func NewService(deps Dependencies, cfg Config, logger *zap.Logger) (*Service, error) {
	switch {
	case deps.Reader == nil:
		return nil, errors.New("settlement reader is required")
	case deps.Evaluator == nil:
		return nil, errors.New("settlement evaluator is required")
	case deps.Directory == nil:
		return nil, errors.New("settlement directory is required")
	case deps.Ledger == nil:
		return nil, errors.New("settlement ledger is required")
	case deps.Audit == nil:
		return nil, errors.New("settlement audit recorder is required")
	case deps.Locker == nil:
		return nil, errors.New("settlement locker is required")
	case deps.Metrics == nil:
		return nil, errors.New("settlement metrics is required")
	}
	if cfg.GracePeriod < 0 {
		return nil, fmt.Errorf("grace period must not be negative, got %s", cfg.GracePeriod)
	}
	if cfg.ReconcileTimeout <= 0 {
		return nil, fmt.Errorf("reconcile timeout must be positive, got %s", cfg.ReconcileTimeout)
	}
	if err := cfg.Retry.Validate(); err != nil {
		return nil, fmt.Errorf("retry policy: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &Service{
		reader:           deps.Reader,
		evaluator:        deps.Evaluator,
		directory:        deps.Directory,
		ledger:           deps.Ledger,
		audit:            deps.Audit,
		locker:           deps.Locker,
		notifier:         notifier,
		metrics:          deps.Metrics,
		gracePeriod:      cfg.GracePeriod,
		reconcileTimeout: cfg.ReconcileTimeout,
		retry:            cfg.Retry,
		now:              clock.Now,
		logger:           logger.Named("orchestrator"),
	}, nil
}

type noopNotifier struct{}

func (noopNotifier) AttemptChanged(context.Context, model.Attempt) {}

// withLock runs fn while holding the company lock and wraps any failure with the window.
func (s *Service) withLock(
	ctx context.Context,
	operation string,
	window model.Window,
	fn func(context.Context, *zap.Logger) (model.Attempt, error),
) (attempt model.Attempt, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveSettle(operation, err, started)
	}()

	wrap := func(attemptID string, err error) error {
		return &model.SettlementError{
			CompanyID:   window.CompanyID,
			PeriodStart: window.PeriodStart,
			PeriodEnd:   window.PeriodEnd,
			AttemptID:   attemptID,
			Err:         err,
		}
	}

	window = window.Normalize()
	if err = window.Validate(); err != nil {
		return model.Attempt{}, wrap("", err)
	}

	// heldCtx ends if the lock is lost; nothing is broadcast after that.
	heldCtx, release, err := s.locker.Lock(ctx, window.CompanyID)
	if err != nil {
		return model.Attempt{}, wrap("", fmt.Errorf("acquire company lock: %w", err))
	}
	defer release()

	logger := s.logger.With(
		zap.String("operation", operation),
		zap.String("company_id", window.CompanyID),
		zap.Time("period_start", window.PeriodStart),
		zap.Time("period_end", window.PeriodEnd),
	)

	attempt, err = fn(heldCtx, logger)
	if err != nil {
		logger.Warn("settlement did not complete",
			zap.String("attempt_id", attempt.ID),
			zap.String("state", string(attempt.State)),
			zap.Error(err),
		)
		return attempt, wrap(attempt.ID, err)
	}
	return attempt, nil
}

// transition records the next state of an attempt. The record is retried on transient store failures.
func (s *Service) transition(
	ctx context.Context,
	logger *zap.Logger,
	attempt model.Attempt,
	state model.AttemptState,
	reason string,
) (model.Attempt, error) {
	next, err := attempt.Transition(state, reason, s.now())
	if err != nil {
		return attempt, err
	}

	record := next.Record()
	err = s.retry.Do(ctx, "append audit", logger, func(ctx context.Context) error {
		return s.audit.AppendAudit(ctx, record)
	})
	if err != nil {
		return attempt, fmt.Errorf("record %s attempt: %w", state, err)
	}

	s.metrics.ObserveTransition(state)
	s.notifier.AttemptChanged(ctx, next)
	logger.Info("attempt transition recorded",
		zap.String("attempt_id", next.ID),
		zap.Uint32("sequence", next.Sequence),
		zap.Uint32("revision", next.Revision),
		zap.String("state", string(state)),
		zap.String("tx_hash", next.TxHash),
		zap.String("reason", reason),
	)
	return next, nil
}

// fail records a terminal rule violation and returns its RevertError.
func (s *Service) fail(ctx context.Context, logger *zap.Logger, attempt model.Attempt, reason string) (model.Attempt, error) {
	failed, err := s.transition(ctx, logger, attempt, model.AttemptFailed, reason)
	if err != nil {
		return attempt, err
	}
	return failed, failed.Err()
}

func (s *Service) confirm(ctx context.Context, logger *zap.Logger, attempt model.Attempt, reason string) (model.Attempt, error) {
	confirmed, err := s.transition(ctx, logger, attempt, model.AttemptConfirmed, reason)
	if err != nil {
		return attempt, err
	}
	if amount := confirmed.SettledAmount; !amount.IsZero() {
		s.metrics.ObserveSettledAmount(confirmed.Verdict.Action(), amount.InexactFloat64())
	}
	return confirmed, nil
}
