package settlement

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Settle evaluates the window and applies the verdict to the ledger at most once.
// A window that already settled is returned unchanged with a nil error.
func (s *Service) Settle(ctx context.Context, window model.Window) (model.Attempt, error) {
	return s.withLock(ctx, "settle", window, func(ctx context.Context, logger *zap.Logger) (model.Attempt, error) {
		return s.settle(ctx, logger, window)
	})
}

func (s *Service) settle(ctx context.Context, logger *zap.Logger, window model.Window) (model.Attempt, error) {
	latest, err := s.latestAttempt(ctx, logger, window)
	if err != nil {
		return model.Attempt{}, err
	}

	attempt := model.NewAttempt(window, 0)
	if latest != nil {
		attempt = *latest
	}
	logger = logger.With(zap.String("attempt_id", attempt.ID), zap.Uint32("sequence", attempt.Sequence))

	confirmed, err := s.confirmedAttempt(ctx, logger, attempt.ID)
	if err != nil {
		return attempt, err
	}
	if confirmed != nil {
		logger.Info("window already settled", zap.String("tx_hash", confirmed.TxHash))
		return *confirmed, nil
	}

	if latest != nil {
		switch latest.State {
		case model.AttemptConfirmed:
			return *latest, nil
		case model.AttemptSubmitted:
			return s.reconcile(ctx, logger, *latest)
		case model.AttemptFailed:
			return *latest, latest.Err()
		case model.AttemptPending:
			if latest.TimerExpiresAt != nil && !latest.TimerExpired(s.now()) {
				logger.Debug("grace period running", zap.Time("timer_expires_at", *latest.TimerExpiresAt))
				return *latest, nil
			}
			// Resumed attempts are evaluated against the cap in force now.
			attempt.Window.EmissionCap = window.EmissionCap
		default:
			return *latest, fmt.Errorf("attempt %s has unknown state %q", latest.ID, latest.State)
		}
	}

	return s.process(ctx, logger, attempt)
}

// process reads, evaluates and settles an attempt that has not reached the chain.
func (s *Service) process(ctx context.Context, logger *zap.Logger, attempt model.Attempt) (model.Attempt, error) {
	window := attempt.Window

	company, err := s.company(ctx, logger, window.CompanyID)
	if err != nil {
		return attempt, err
	}
	records, err := s.readWindow(ctx, logger, window)
	if err != nil {
		return attempt, err
	}

	attempt.Verdict = s.evaluator.Evaluate(window.CompanyID, records, window.EmissionCap, s.now())
	verdict := attempt.Verdict
	logger.Info("window evaluated",
		zap.Int("records", len(records)),
		zap.String("total_emissions", verdict.TotalEmissions.String()),
		zap.String("emission_cap", verdict.EmissionCap.String()),
		zap.Bool("compliant", verdict.IsCompliant),
		zap.String("settlement_amount", verdict.SettlementAmount.String()),
	)

	if verdict.SettlementAmount.IsZero() {
		attempt.SettledAmount = decimal.Zero
		return s.confirm(ctx, logger, attempt, "no settlement due")
	}

	if !verdict.IsCompliant && s.gracePeriod > 0 && attempt.TimerExpiresAt == nil {
		expires := s.now().Add(s.gracePeriod)
		attempt.TimerExpiresAt = &expires
		return s.transition(ctx, logger, attempt, model.AttemptPending, "grace period")
	}

	if attempt.Revision == 0 {
		if attempt, err = s.transition(ctx, logger, attempt, model.AttemptPending, ""); err != nil {
			return attempt, err
		}
	}

	return s.submit(ctx, logger, company, attempt)
}

func (s *Service) latestAttempt(ctx context.Context, logger *zap.Logger, window model.Window) (*model.Attempt, error) {
	var latest *model.Attempt
	err := s.retry.Do(ctx, "latest attempt", logger, func(ctx context.Context) error {
		var err error
		latest, err = s.audit.LatestAttempt(ctx, window.CompanyID, window.PeriodStart, window.PeriodEnd)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load latest attempt: %w", err)
	}
	return latest, nil
}

func (s *Service) confirmedAttempt(ctx context.Context, logger *zap.Logger, attemptID string) (*model.Attempt, error) {
	var confirmed *model.Attempt
	err := s.retry.Do(ctx, "confirmed attempt", logger, func(ctx context.Context) error {
		var err error
		confirmed, err = s.audit.ConfirmedAttempt(ctx, attemptID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load confirmed attempt: %w", err)
	}
	return confirmed, nil
}

func (s *Service) company(ctx context.Context, logger *zap.Logger, companyID string) (model.Company, error) {
	var company model.Company
	err := s.retry.Do(ctx, "company", logger, func(ctx context.Context) error {
		var err error
		company, err = s.directory.Company(ctx, companyID)
		return err
	})
	if err != nil {
		return model.Company{}, fmt.Errorf("load company: %w", err)
	}
	return company, nil
}

func (s *Service) readWindow(ctx context.Context, logger *zap.Logger, window model.Window) ([]model.EmissionRecord, error) {
	var records []model.EmissionRecord
	err := s.retry.Do(ctx, "read window", logger, func(ctx context.Context) error {
		var err error
		records, err = s.reader.ReadWindow(ctx, window.CompanyID, window.PeriodStart, window.PeriodEnd)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read emissions: %w", err)
	}
	return records, nil
}
