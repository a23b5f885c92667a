package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/retry"
	"go.uber.org/zap"
)

// errDropped ends polling for a transaction whose nonce was consumed by another transaction.
var errDropped = errors.New("transaction dropped or replaced")

// reconcile polls the receipt of a submitted attempt. It never resubmits.
// A transaction still without a receipt after its nonce was mined can never be mined and fails the attempt.
func (s *Service) reconcile(ctx context.Context, logger *zap.Logger, attempt model.Attempt) (model.Attempt, error) {
	if attempt.TxHash == "" {
		return attempt, fmt.Errorf("reconcile attempt %s: submitted without tx hash", attempt.ID)
	}
	hash := common.HexToHash(attempt.TxHash)
	logger = logger.With(zap.String("tx_hash", attempt.TxHash))

	pending := func(err error) bool {
		return errors.Is(err, chain.ErrReceiptNotFound) || retry.Retryable(err)
	}

	var receipt *chain.Receipt
	err := s.retry.WithMaxElapsed(s.reconcileTimeout).DoWhen(ctx, "reconcile", logger, pending, func(ctx context.Context) error {
		var err error
		receipt, err = s.ledger.TransactionReceipt(ctx, hash)
		if !errors.Is(err, chain.ErrReceiptNotFound) || attempt.TxNonce == nil {
			return err
		}
		consumed, nonceErr := s.ledger.NonceConsumed(ctx, *attempt.TxNonce)
		if nonceErr != nil {
			logger.Debug("check nonce", zap.Error(nonceErr))
			return err
		}
		if !consumed {
			return err
		}
		// The nonce may have been consumed by this very transaction after the first lookup.
		receipt, err = s.ledger.TransactionReceipt(ctx, hash)
		if errors.Is(err, chain.ErrReceiptNotFound) {
			return errDropped
		}
		return err
	})
	if errors.Is(err, errDropped) {
		reason := fmt.Sprintf("%s: nonce %d consumed without receipt", errDropped, *attempt.TxNonce)
		logger.Warn("submitted transaction will never be mined", zap.Uint64("nonce", *attempt.TxNonce))
		return s.fail(ctx, logger, attempt, reason)
	}
	if err != nil {
		if pending(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return attempt, &model.TimeoutError{TxHash: attempt.TxHash, Err: err}
		}
		return attempt, fmt.Errorf("reconcile: %w", err)
	}

	if receipt.Successful {
		logger.Info("reconciled confirmed transaction", zap.Uint64("block", receipt.BlockNumber))
		return s.confirm(ctx, logger, attempt, "")
	}
	logger.Warn("reconciled reverted transaction", zap.String("reason", receipt.RevertReason))
	return s.fail(ctx, logger, attempt, receipt.RevertReason)
}
