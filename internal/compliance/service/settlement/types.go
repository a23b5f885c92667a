package settlement

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Reader interface {
		ReadWindow(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]model.EmissionRecord, error)
	}
	Evaluator interface {
		Evaluate(companyID string, records []model.EmissionRecord, emissionCap decimal.Decimal, at time.Time) model.Verdict
	}
	Directory interface {
		Company(ctx context.Context, companyID string) (model.Company, error)
	}
	Ledger interface {
		MintForCompliance(ctx context.Context, req chain.TxRequest) (*chain.Receipt, error)
		DeductForOverage(ctx context.Context, req chain.TxRequest) (*chain.Receipt, bool, error)
		IsRegisteredCompany(ctx context.Context, company common.Address) (bool, error)
		GetRemainingCap(ctx context.Context, company common.Address) (decimal.Decimal, error)
		BalanceOf(ctx context.Context, company common.Address) (decimal.Decimal, error)
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*chain.Receipt, error)
		NonceConsumed(ctx context.Context, nonce uint64) (bool, error)
	}
	AuditRecorder interface {
		AppendAudit(ctx context.Context, record model.AuditRecord) error
		ConfirmedAttempt(ctx context.Context, attemptID string) (*model.Attempt, error)
		ConfirmedForWindow(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*model.Attempt, error)
		LatestAttempt(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*model.Attempt, error)
		ExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.Attempt, error)
	}
	Locker interface {
		Lock(ctx context.Context, key string) (held context.Context, release func(), err error)
	}
	Notifier interface {
		AttemptChanged(ctx context.Context, attempt model.Attempt)
	}
	Metrics interface {
		ObserveSettle(operation string, err error, started time.Time)
		ObserveTransition(state model.AttemptState)
		ObserveSettledAmount(action model.Action, amount float64)
	}
)
