package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"go.uber.org/zap"
)

// Retry starts a new attempt for a window whose latest attempt failed.
// It returns model.ErrDuplicateAttempt when the window already settled and
// model.ErrRetryNotAllowed when the latest attempt is not failed.
func (s *Service) Retry(ctx context.Context, window model.Window) (model.Attempt, error) {
	return s.withLock(ctx, "retry", window, func(ctx context.Context, logger *zap.Logger) (model.Attempt, error) {
		var confirmed *model.Attempt
		err := s.retry.Do(ctx, "confirmed for window", logger, func(ctx context.Context) error {
			var err error
			confirmed, err = s.audit.ConfirmedForWindow(ctx, window.CompanyID, window.PeriodStart, window.PeriodEnd)
			return err
		})
		if err != nil {
			return model.Attempt{}, fmt.Errorf("load confirmed attempt: %w", err)
		}
		if confirmed != nil {
			return *confirmed, model.ErrDuplicateAttempt
		}

		latest, err := s.latestAttempt(ctx, logger, window)
		if err != nil {
			return model.Attempt{}, err
		}
		if latest == nil {
			return model.Attempt{}, fmt.Errorf("%w: window has no attempt", model.ErrRetryNotAllowed)
		}
		if latest.State != model.AttemptFailed {
			return *latest, fmt.Errorf("%w: latest attempt is %s", model.ErrRetryNotAllowed, latest.State)
		}

		attempt := model.NewAttempt(window, latest.Sequence+1)
		// An elapsed grace period is not granted again.
		attempt.TimerExpiresAt = latest.TimerExpiresAt
		logger.Info("retrying failed attempt",
			zap.String("failed_attempt_id", latest.ID),
			zap.String("failed_reason", latest.Reason),
			zap.String("attempt_id", attempt.ID),
			zap.Uint32("sequence", attempt.Sequence),
		)
		return s.process(ctx, logger.With(zap.String("attempt_id", attempt.ID)), attempt)
	})
}

// FinalizeExpired settles windows whose grace timer elapsed, re-reading the ledger for each.
// It returns how many of them settled and the joined errors of the rest.
func (s *Service) FinalizeExpired(ctx context.Context, limit int) (int, error) {
	expired, err := s.expiredPending(ctx, limit)
	if err != nil {
		return 0, err
	}

	var (
		settled int
		errs    []error
	)
	for _, attempt := range expired {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.Settle(ctx, attempt.Window); err != nil {
			errs = append(errs, err)
			continue
		}
		settled++
	}

	s.logger.Info("expired grace periods finalized", zap.Int("expired", len(expired)), zap.Int("settled", settled))
	return settled, errors.Join(errs...)
}

func (s *Service) expiredPending(ctx context.Context, limit int) ([]model.Attempt, error) {
	var expired []model.Attempt
	err := s.retry.Do(ctx, "expired pending", s.logger, func(ctx context.Context) error {
		var err error
		expired, err = s.audit.ExpiredPending(ctx, s.now(), limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list expired pending attempts: %w", err)
	}
	return expired, nil
}
