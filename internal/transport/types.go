package transport

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
)

type (
	// Settler runs settlements on behalf of operators.
	Settler interface {
		Settle(ctx context.Context, window model.Window) (model.Attempt, error)
		Retry(ctx context.Context, window model.Window) (model.Attempt, error)
	}

	// Directory resolves companies and their caps.
	Directory interface {
		Company(ctx context.Context, companyID string) (model.Company, error)
	}

	// AuditHistory lists the recorded transitions of an attempt.
	AuditHistory interface {
		History(ctx context.Context, attemptID string) ([]model.AuditRecord, error)
	}

	// ChainViews reads the ledger contract state of a company.
	ChainViews interface {
		IsRegisteredCompany(ctx context.Context, company common.Address) (bool, error)
		BalanceOf(ctx context.Context, company common.Address) (decimal.Decimal, error)
		MintedPerCompany(ctx context.Context, company common.Address) (decimal.Decimal, error)
		GetRemainingCap(ctx context.Context, company common.Address) (decimal.Decimal, error)
		CanMintNow(ctx context.Context, company common.Address) (chain.MintWindow, error)
	}
)
