package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Failure reasons recorded when a pre-flight check rules out a submission.
const (
	reasonNotRegistered = "company not registered"
	reasonCapExhausted  = "mint cap exhausted"
	reasonNoBalance     = "no balance to deduct"
)

// submit runs the pre-flight views, clamps the amount and sends the transaction.
// The attempt is recorded as submitted from inside the adapter, before broadcast.
func (s *Service) submit(ctx context.Context, logger *zap.Logger, company model.Company, attempt model.Attempt) (model.Attempt, error) {
	verdict := attempt.Verdict
	action := verdict.Action()

	var registered bool
	err := s.retry.Do(ctx, "is registered company", logger, func(ctx context.Context) error {
		var err error
		registered, err = s.ledger.IsRegisteredCompany(ctx, company.Address)
		return err
	})
	if err != nil {
		return s.preflightFailed(ctx, logger, attempt, err)
	}
	if !registered {
		return s.fail(ctx, logger, attempt, reasonNotRegistered)
	}

	amount := verdict.SettlementAmount.Abs()
	switch action {
	case model.ActionMint:
		remaining, err := s.amountView(ctx, logger, "get remaining cap", company.Address, s.ledger.GetRemainingCap)
		if err != nil {
			return s.preflightFailed(ctx, logger, attempt, err)
		}
		if !remaining.IsPositive() {
			return s.fail(ctx, logger, attempt, reasonCapExhausted)
		}
		amount = decimal.Min(amount, remaining)
		attempt.SettledAmount = amount
	case model.ActionDeduct:
		balance, err := s.amountView(ctx, logger, "balance of", company.Address, s.ledger.BalanceOf)
		if err != nil {
			return s.preflightFailed(ctx, logger, attempt, err)
		}
		if !balance.IsPositive() {
			return s.fail(ctx, logger, attempt, reasonNoBalance)
		}
		amount = decimal.Min(amount, balance)
		attempt.SettledAmount = amount.Neg()
	}
	if !amount.Equal(verdict.SettlementAmount.Abs()) {
		logger.Info("settlement amount clamped",
			zap.String("action", string(action)),
			zap.String("requested", verdict.SettlementAmount.Abs().String()),
			zap.String("submitted", amount.String()),
		)
	}

	var submitted *model.Attempt
	req := chain.TxRequest{
		Company:       company.Address,
		Amount:        amount,
		EmissionValue: verdict.TotalEmissions,
		EmissionCap:   verdict.EmissionCap,
		OnSubmitted: func(ctx context.Context, txHash common.Hash, nonce uint64) error {
			// Last point before broadcast: a lost company lock must not reach the chain.
			if ctx.Err() != nil {
				return fmt.Errorf("abort before broadcast: %w", context.Cause(ctx))
			}
			next := attempt
			next.TxHash = txHash.Hex()
			next.TxNonce = &nonce
			recorded, err := s.transition(ctx, logger, next, model.AttemptSubmitted, "")
			if err != nil {
				return err
			}
			submitted = &recorded
			return nil
		},
	}

	// Only failures before the transaction reached the broadcast step are retried.
	retryable := func(err error) bool {
		return submitted == nil && retry.Retryable(err)
	}
	err = s.retry.DoWhen(ctx, string(action), logger, retryable, func(ctx context.Context) error {
		switch action {
		case model.ActionMint:
			_, err := s.ledger.MintForCompliance(ctx, req)
			return err
		default:
			_, _, err := s.ledger.DeductForOverage(ctx, req)
			return err
		}
	})

	// Outcomes after broadcast must be recorded even if the caller has gone away.
	recordCtx := context.WithoutCancel(ctx)

	if submitted == nil {
		var revert *model.RevertError
		if errors.As(err, &revert) {
			return s.fail(recordCtx, logger, attempt, revert.Reason)
		}
		if err == nil {
			return attempt, errors.New("ledger returned without recording the submission")
		}
		// Nothing was broadcast; the pending attempt is resumed by the next settle.
		return attempt, err
	}

	var revert *model.RevertError
	switch {
	case err == nil:
		return s.confirm(recordCtx, logger, *submitted, "")
	case errors.As(err, &revert):
		return s.fail(recordCtx, logger, *submitted, revert.Reason)
	default:
		logger.Warn("submission outcome unknown, reconciling", zap.String("tx_hash", submitted.TxHash), zap.Error(err))
		return s.reconcile(recordCtx, logger, *submitted)
	}
}

// preflightFailed records a terminal view revert and passes transient failures through.
func (s *Service) preflightFailed(ctx context.Context, logger *zap.Logger, attempt model.Attempt, err error) (model.Attempt, error) {
	var revert *model.RevertError
	if errors.As(err, &revert) {
		return s.fail(ctx, logger, attempt, revert.Reason)
	}
	return attempt, err
}

func (s *Service) amountView(
	ctx context.Context,
	logger *zap.Logger,
	operation string,
	company common.Address,
	view func(context.Context, common.Address) (decimal.Decimal, error),
) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.retry.Do(ctx, operation, logger, func(ctx context.Context) error {
		var err error
		amount, err = view(ctx, company)
		return err
	})
	return amount, err
}
