// Package retry wraps exponential backoff around transient settlement failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"go.uber.org/zap"
)

// Policy configures exponential backoff. A zero MaxElapsedTime and MaxRetries retry until the context ends.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxElapsedTime  time.Duration
	MaxRetries      uint64
}

// DefaultPolicy returns the backoff used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     30 * time.Second,
		Multiplier:      2,
		MaxElapsedTime:  5 * time.Minute,
	}
}

// Validate rejects policies that would spin or never back off.
func (p Policy) Validate() error {
	if p.InitialInterval <= 0 {
		return fmt.Errorf("initial interval must be positive, got %s", p.InitialInterval)
	}
	if p.MaxInterval < p.InitialInterval {
		return fmt.Errorf("max interval %s is below initial interval %s", p.MaxInterval, p.InitialInterval)
	}
	if p.Multiplier < 1 {
		return fmt.Errorf("multiplier must be at least 1, got %v", p.Multiplier)
	}
	if p.MaxElapsedTime < 0 {
		return fmt.Errorf("max elapsed time must not be negative, got %s", p.MaxElapsedTime)
	}
	return nil
}

// WithMaxElapsed returns a copy of the policy bounded by d.
func (p Policy) WithMaxElapsed(d time.Duration) Policy {
	p.MaxElapsedTime = d
	return p
}

// Retryable reports whether err is a transient store or chain failure.
func Retryable(err error) bool {
	return errors.Is(err, model.ErrDataUnavailable) || errors.Is(err, model.ErrChainUnavailable)
}

// Permanent stops a Do loop and returns err unchanged.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do runs fn until it succeeds, returns a non-retryable error, or the policy is exhausted.
func (p Policy) Do(ctx context.Context, operation string, logger *zap.Logger, fn func(context.Context) error) error {
	return p.DoWhen(ctx, operation, logger, Retryable, fn)
}

// DoWhen is Do with a custom retry classifier.
func (p Policy) DoWhen(
	ctx context.Context,
	operation string,
	logger *zap.Logger,
	retryable func(error) bool,
	fn func(context.Context) error,
) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	attempt := 0
	op := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return err
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("retrying after transient failure",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("next_in", next),
			zap.Error(err),
		)
	}

	return backoff.RetryNotify(op, p.backOff(ctx), notify)
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.Multiplier = p.Multiplier
	exp.MaxElapsedTime = p.MaxElapsedTime
	exp.Reset()

	var b backoff.BackOff = exp
	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, p.MaxRetries)
	}
	return backoff.WithContext(b, ctx)
}
