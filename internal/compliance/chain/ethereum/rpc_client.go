package ethereum

import (
	"context"
	"math/big"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RPCClient wraps an Ethereum client with metrics instrumentation.
type RPCClient struct {
	client     EthClient
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client EthClient, rpcMetrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// ChainID returns the chain id used for signing.
func (r *RPCClient) ChainID(ctx context.Context) (id *big.Int, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("chain_id", err, started)
	}()
	return r.client.ChainID(ctx)
}

// CallContract executes a read-only call.
func (r *RPCClient) CallContract(ctx context.Context, msg goethereum.CallMsg, blockNumber *big.Int) (out []byte, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("call_contract", err, started)
	}()
	return r.client.CallContract(ctx, msg, blockNumber)
}

// PendingNonceAt returns the next nonce for account including pending transactions.
func (r *RPCClient) PendingNonceAt(ctx context.Context, account common.Address) (nonce uint64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("pending_nonce_at", err, started)
	}()
	return r.client.PendingNonceAt(ctx, account)
}

// NonceAt returns the nonce of account after the given block, the latest one when blockNumber is nil.
func (r *RPCClient) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (nonce uint64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("nonce_at", err, started)
	}()
	return r.client.NonceAt(ctx, account, blockNumber)
}

// SuggestGasTipCap returns the suggested priority fee.
func (r *RPCClient) SuggestGasTipCap(ctx context.Context) (tip *big.Int, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("suggest_gas_tip_cap", err, started)
	}()
	return r.client.SuggestGasTipCap(ctx)
}

// HeaderByNumber returns a block header, the latest one when number is nil.
func (r *RPCClient) HeaderByNumber(ctx context.Context, number *big.Int) (header *types.Header, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("header_by_number", err, started)
	}()
	return r.client.HeaderByNumber(ctx, number)
}

// EstimateGas estimates the gas needed for msg.
func (r *RPCClient) EstimateGas(ctx context.Context, msg goethereum.CallMsg) (gas uint64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("estimate_gas", err, started)
	}()
	return r.client.EstimateGas(ctx, msg)
}

// SendTransaction broadcasts a signed transaction.
func (r *RPCClient) SendTransaction(ctx context.Context, tx *types.Transaction) (err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("send_transaction", err, started)
	}()
	return r.client.SendTransaction(ctx, tx)
}

// TransactionReceipt returns the receipt of a mined transaction.
func (r *RPCClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (receipt *types.Receipt, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("transaction_receipt", err, started)
	}()
	return r.client.TransactionReceipt(ctx, txHash)
}

// TransactionByHash returns a transaction and whether it is still pending.
func (r *RPCClient) TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("transaction_by_hash", err, started)
	}()
	return r.client.TransactionByHash(ctx, hash)
}
