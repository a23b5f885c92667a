package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/pkg/safe"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Config describes the contract and transaction policy of a Ledger.
type Config struct {
	Contract common.Address
	// ChainID is queried from the node when nil.
	ChainID *big.Int
	// GasLimit is estimated with a 20% margin when zero.
	GasLimit             uint64
	ReceiptTimeout       time.Duration
	PollInterval         time.Duration
	SubmissionsPerSecond int
}

// Ledger submits mints and deductions to the compliance token and reads its views.
type Ledger struct {
	client         EthClient
	contract       common.Address
	abi            abi.ABI
	key            *ecdsa.PrivateKey
	from           common.Address
	signer         types.Signer
	gasLimit       uint64
	receiptTimeout time.Duration
	pollInterval   time.Duration
	limiter        ratelimit.Limiter
	sleep          func(context.Context, time.Duration) error
	logger         *zap.Logger

	// mu guards nonce reservation; it is never held while signing or broadcasting.
	mu        sync.Mutex
	nextNonce uint64
	released  []uint64
}

// NewLedger constructs a Ledger signing with key.
func NewLedger(ctx context.Context, client EthClient, key *ecdsa.PrivateKey, cfg Config, logger *zap.Logger) (*Ledger, error) {
	if client == nil {
		return nil, errors.New("ethereum client is required")
	}
	if key == nil {
		return nil, errors.New("signing key is required")
	}
	if cfg.Contract == (common.Address{}) {
		return nil, errors.New("contract address is required")
	}
	if cfg.ReceiptTimeout <= 0 {
		return nil, errors.New("receipt timeout must be positive")
	}
	if cfg.PollInterval <= 0 {
		return nil, errors.New("receipt poll interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	parsed, err := parseContractABI()
	if err != nil {
		return nil, err
	}

	chainID := cfg.ChainID
	if chainID == nil {
		chainID, err = client.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("get chain id: %w", err)
		}
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.SubmissionsPerSecond > 0 {
		limiter = ratelimit.New(cfg.SubmissionsPerSecond)
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	return &Ledger{
		client:         client,
		contract:       cfg.Contract,
		abi:            parsed,
		key:            key,
		from:           from,
		signer:         types.LatestSignerForChainID(chainID),
		gasLimit:       cfg.GasLimit,
		receiptTimeout: cfg.ReceiptTimeout,
		pollInterval:   cfg.PollInterval,
		limiter:        limiter,
		sleep:          clock.SleepWithContext,
		logger: logger.Named("ledger").With(
			zap.String("contract", cfg.Contract.Hex()),
			zap.String("from", from.Hex()),
			zap.String("chain_id", chainID.String()),
		),
	}, nil
}

// From returns the address transactions are signed with.
func (l *Ledger) From() common.Address {
	return l.from
}

// MintForCompliance rewards a compliant company.
func (l *Ledger) MintForCompliance(ctx context.Context, req chain.TxRequest) (*chain.Receipt, error) {
	data, err := l.packRequest(methodMint, req)
	if err != nil {
		return nil, err
	}
	return l.transact(ctx, data, req.OnSubmitted)
}

// DeductForOverage penalizes a company over its cap. The deduction is simulated first;
// when the contract reports an insufficient balance nothing is submitted and hadSufficientBalance is false.
func (l *Ledger) DeductForOverage(ctx context.Context, req chain.TxRequest) (*chain.Receipt, bool, error) {
	data, err := l.packRequest(methodDeduct, req)
	if err != nil {
		return nil, false, err
	}

	out, err := l.client.CallContract(ctx, goethereum.CallMsg{From: l.from, To: &l.contract, Data: data}, nil)
	if err != nil {
		return nil, false, classify("simulate deduction", err)
	}
	values, err := l.abi.Unpack(methodDeduct, out)
	if err != nil {
		return nil, false, fmt.Errorf("unpack deduction simulation: %w", err)
	}
	if len(values) != 2 {
		return nil, false, fmt.Errorf("unpack deduction simulation: got %d values", len(values))
	}
	hasEnough, ok := values[1].(bool)
	if !ok {
		return nil, false, fmt.Errorf("unpack deduction simulation: unexpected %T", values[1])
	}
	if !hasEnough {
		return nil, false, &model.RevertError{Reason: "insufficient balance for deduction"}
	}

	receipt, err := l.transact(ctx, data, req.OnSubmitted)
	return receipt, true, err
}

// TransactionReceipt looks up the outcome of a previously submitted transaction.
// It returns chain.ErrReceiptNotFound while the transaction is unmined.
func (l *Ledger) TransactionReceipt(ctx context.Context, txHash common.Hash) (*chain.Receipt, error) {
	receipt, err := l.client.TransactionReceipt(ctx, txHash)
	if errors.Is(err, goethereum.NotFound) {
		return nil, chain.ErrReceiptNotFound
	}
	if err != nil {
		return nil, classify("get transaction receipt", err)
	}

	out := toReceipt(receipt)
	if !out.Successful {
		out.RevertReason = l.replayReason(ctx, txHash, receipt.BlockNumber)
	}
	return out, nil
}

func (l *Ledger) packRequest(method string, req chain.TxRequest) ([]byte, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%s: amount %s must be positive", method, req.Amount)
	}
	amount, err := safe.ToWei(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: scale amount: %w", method, err)
	}
	value, err := safe.ToWei(req.EmissionValue)
	if err != nil {
		return nil, fmt.Errorf("%s: scale emission value: %w", method, err)
	}
	emissionCap, err := safe.ToWei(req.EmissionCap)
	if err != nil {
		return nil, fmt.Errorf("%s: scale emission cap: %w", method, err)
	}

	data, err := l.abi.Pack(method, req.Company, amount, value, emissionCap)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return data, nil
}

// transact signs data, hands the hash and nonce to onSubmitted and broadcasts. Once onSubmitted
// succeeded the caller's cancellation no longer applies; the wait is bounded by the receipt timeout.
func (l *Ledger) transact(ctx context.Context, data []byte, onSubmitted func(context.Context, common.Hash, uint64) error) (*chain.Receipt, error) {
	l.limiter.Take()

	nonce, err := l.reserveNonce(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := l.sign(ctx, nonce, data)
	if err != nil {
		l.releaseNonce(nonce)
		return nil, err
	}
	hash := tx.Hash()
	logger := l.logger.With(zap.String("tx_hash", hash.Hex()), zap.Uint64("nonce", nonce))

	if onSubmitted != nil {
		if err := onSubmitted(ctx, hash, nonce); err != nil {
			l.releaseNonce(nonce)
			return nil, fmt.Errorf("record submission: %w", err)
		}
	}

	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.receiptTimeout)
	defer cancel()

	err = l.client.SendTransaction(waitCtx, tx)
	switch {
	case err == nil:
		logger.Info("transaction broadcast")
	case alreadyKnown(err):
		logger.Info("transaction already known to node")
	case rejectedBySendNode(err):
		l.releaseNonce(nonce)
		return nil, &model.RevertError{Reason: "rejected by node: " + err.Error(), TxHash: hash.Hex()}
	default:
		// The node may or may not have the transaction; only a receipt can tell.
		logger.Warn("broadcast outcome unknown", zap.Error(err))
	}

	receipt, err := l.waitReceipt(waitCtx, hash)
	if err != nil {
		return nil, err
	}

	out := toReceipt(receipt)
	if !out.Successful {
		out.RevertReason = l.replayReason(waitCtx, hash, receipt.BlockNumber)
		logger.Warn("transaction reverted", zap.String("reason", out.RevertReason))
		return out, &model.RevertError{Reason: out.RevertReason, TxHash: hash.Hex()}
	}
	logger.Info("transaction confirmed", zap.Uint64("block", out.BlockNumber), zap.Uint64("gas_used", out.GasUsed))
	return out, nil
}

// reserveNonce hands out the next nonce of the signing key. Nonces given back with
// releaseNonce are reused first, unless the node has seen them consumed meanwhile.
func (l *Ledger) reserveNonce(ctx context.Context) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending, err := l.client.PendingNonceAt(ctx, l.from)
	if err != nil {
		return 0, classify("get pending nonce", err)
	}
	for len(l.released) > 0 {
		nonce := l.released[0]
		l.released = l.released[1:]
		if nonce >= pending {
			return nonce, nil
		}
	}
	nonce := max(pending, l.nextNonce)
	l.nextNonce = nonce + 1
	return nonce, nil
}

// releaseNonce gives back a reserved nonce that never reached the node.
func (l *Ledger) releaseNonce(nonce uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if nonce+1 == l.nextNonce {
		l.nextNonce = nonce
		return
	}
	if i, found := slices.BinarySearch(l.released, nonce); !found {
		l.released = slices.Insert(l.released, i, nonce)
	}
}

// NonceConsumed reports whether a mined transaction of the signing key already used nonce.
func (l *Ledger) NonceConsumed(ctx context.Context, nonce uint64) (bool, error) {
	mined, err := l.client.NonceAt(ctx, l.from, nil)
	if err != nil {
		return false, classify("get mined nonce", err)
	}
	return mined > nonce, nil
}

func (l *Ledger) sign(ctx context.Context, nonce uint64, data []byte) (*types.Transaction, error) {
	tip, err := l.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, classify("suggest gas tip", err)
	}
	head, err := l.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, classify("get latest header", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas := l.gasLimit
	if gas == 0 {
		estimate, err := l.client.EstimateGas(ctx, goethereum.CallMsg{From: l.from, To: &l.contract, Data: data})
		if err != nil {
			return nil, classify("estimate gas", err)
		}
		gas = estimate + estimate/5
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   l.signer.ChainID(),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &l.contract,
		Value:     big.NewInt(0),
		Data:      data,
	})
	signed, err := types.SignTx(tx, l.signer, l.key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return signed, nil
}

func (l *Ledger) waitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	for {
		receipt, err := l.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, goethereum.NotFound) {
			l.logger.Debug("poll receipt", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		}
		if err := l.sleep(ctx, l.pollInterval); err != nil {
			return nil, &model.TimeoutError{TxHash: hash.Hex(), Err: err}
		}
	}
}

// replayReason re-executes a reverted transaction at its block to recover the revert reason.
func (l *Ledger) replayReason(ctx context.Context, hash common.Hash, block *big.Int) string {
	tx, _, err := l.client.TransactionByHash(ctx, hash)
	if err != nil {
		return revertedMessage
	}
	_, err = l.client.CallContract(ctx, goethereum.CallMsg{From: l.from, To: tx.To(), Data: tx.Data()}, block)
	if err == nil {
		return revertedMessage
	}
	if reason, ok := revertReason(err); ok {
		return reason
	}
	return revertedMessage
}

func toReceipt(r *types.Receipt) *chain.Receipt {
	out := &chain.Receipt{
		TxHash:     r.TxHash,
		GasUsed:    r.GasUsed,
		Successful: r.Status == types.ReceiptStatusSuccessful,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out
}

// IsRegisteredCompany reports whether the contract knows the company.
func (l *Ledger) IsRegisteredCompany(ctx context.Context, company common.Address) (bool, error) {
	values, err := l.view(ctx, methodIsRegistered, company)
	if err != nil {
		return false, err
	}
	registered, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unpack %s: unexpected %T", methodIsRegistered, values[0])
	}
	return registered, nil
}

// CapPerCompany returns the lifetime mint cap applied to every company.
func (l *Ledger) CapPerCompany(ctx context.Context) (decimal.Decimal, error) {
	return l.amountView(ctx, methodCapPerCompany)
}

// MintedPerCompany returns how much was minted to the company so far.
func (l *Ledger) MintedPerCompany(ctx context.Context, company common.Address) (decimal.Decimal, error) {
	return l.amountView(ctx, methodMinted, company)
}

// GetRemainingCap returns how much can still be minted to the company.
func (l *Ledger) GetRemainingCap(ctx context.Context, company common.Address) (decimal.Decimal, error) {
	return l.amountView(ctx, methodRemainingCap, company)
}

// BalanceOf returns the company's token balance.
func (l *Ledger) BalanceOf(ctx context.Context, company common.Address) (decimal.Decimal, error) {
	return l.amountView(ctx, methodBalanceOf, company)
}

// CanMintNow reports the contract's mint cooldown for the company.
func (l *Ledger) CanMintNow(ctx context.Context, company common.Address) (chain.MintWindow, error) {
	values, err := l.view(ctx, methodCanMintNow, company)
	if err != nil {
		return chain.MintWindow{}, err
	}
	if len(values) != 2 {
		return chain.MintWindow{}, fmt.Errorf("unpack %s: got %d values", methodCanMintNow, len(values))
	}
	allowed, ok := values[0].(bool)
	if !ok {
		return chain.MintWindow{}, fmt.Errorf("unpack %s: unexpected %T", methodCanMintNow, values[0])
	}
	seconds, ok := values[1].(*big.Int)
	if !ok {
		return chain.MintWindow{}, fmt.Errorf("unpack %s: unexpected %T", methodCanMintNow, values[1])
	}
	wait, err := safe.Seconds(seconds)
	if err != nil {
		return chain.MintWindow{}, fmt.Errorf("unpack %s: %w", methodCanMintNow, err)
	}
	return chain.MintWindow{Allowed: allowed, Wait: wait}, nil
}

func (l *Ledger) amountView(ctx context.Context, method string, args ...interface{}) (decimal.Decimal, error) {
	values, err := l.view(ctx, method, args...)
	if err != nil {
		return decimal.Zero, err
	}
	wei, ok := values[0].(*big.Int)
	if !ok {
		return decimal.Zero, fmt.Errorf("unpack %s: unexpected %T", method, values[0])
	}
	amount, err := safe.FromWei(wei)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unpack %s: %w", method, err)
	}
	return amount, nil
}

func (l *Ledger) view(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := l.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := l.client.CallContract(ctx, goethereum.CallMsg{From: l.from, To: &l.contract, Data: data}, nil)
	if err != nil {
		return nil, classify("call "+method, err)
	}
	values, err := l.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty result", method)
	}
	return values, nil
}
