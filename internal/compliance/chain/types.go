// Package chain defines the requests and results shared between the settlement service and ledger adapters.
package chain

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ErrReceiptNotFound is returned when a transaction has no receipt yet.
var ErrReceiptNotFound = errors.New("receipt not found")

type (
	// TxRequest is a mint or deduction for one company.
	// Amount is a positive magnitude; the method called decides the direction.
	TxRequest struct {
		Company       common.Address
		Amount        decimal.Decimal
		EmissionValue decimal.Decimal
		EmissionCap   decimal.Decimal
		// OnSubmitted runs after the transaction is signed and before it is broadcast.
		// A non-nil error aborts the broadcast and gives the nonce back.
		OnSubmitted func(ctx context.Context, txHash common.Hash, nonce uint64) error
	}

	// Receipt is the mined outcome of a transaction.
	Receipt struct {
		TxHash       common.Hash
		BlockNumber  uint64
		GasUsed      uint64
		Successful   bool
		RevertReason string
	}

	// MintWindow reports the contract's mint cooldown for a company.
	MintWindow struct {
		Allowed bool
		Wait    time.Duration
	}
)
