// Package ethereum settles compliance verdicts against the capped compliance token on an EVM chain.
package ethereum

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"math/big"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type (
	// EthClient is the subset of the go-ethereum client the ledger uses.
	EthClient interface {
		ChainID(ctx context.Context) (*big.Int, error)
		CallContract(ctx context.Context, msg goethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
		PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
		NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
		SuggestGasTipCap(ctx context.Context) (*big.Int, error)
		HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
		EstimateGas(ctx context.Context, msg goethereum.CallMsg) (uint64, error)
		SendTransaction(ctx context.Context, tx *types.Transaction) error
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
		TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
