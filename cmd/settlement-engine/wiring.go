package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	gcfirestore "cloud.google.com/go/firestore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain/ethereum"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/repository/clickhouse"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/repository/firestore"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/service/scheduler"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/service/settlement"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/metrics"
	"go.uber.org/zap"
)

// emissionSource is the emission ledger together with its company directory.
type emissionSource interface {
	settlement.Reader
	settlement.Directory
	scheduler.Directory
}

func newSource(ctx context.Context, cfg config, ch *clickhouse.Repository) (emissionSource, func(), error) {
	if cfg.Source == "clickhouse" {
		return ch, func() {}, nil
	}

	if cfg.FirestoreProject == "" {
		return nil, nil, errors.New("firestore project is required")
	}
	client, err := gcfirestore.NewClient(ctx, cfg.FirestoreProject)
	if err != nil {
		return nil, nil, fmt.Errorf("open firestore client: %w", err)
	}
	repo, err := firestore.NewRepository(firestore.NewStore(client), firestore.Collections{
		Emissions: cfg.EmissionsCollection,
		Companies: cfg.CompaniesCollection,
	}, metrics.NewFirestoreRepository())
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return repo, func() { _ = client.Close() }, nil
}

func newLedger(ctx context.Context, cfg config, logger *zap.Logger) (*ethereum.Ledger, func(), error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, nil, fmt.Errorf("contract address %q is not a hex address", cfg.ContractAddress)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, nil, fmt.Errorf("parse private key: %w", err)
	}

	rpcClient, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial ethereum rpc: %w", err)
	}
	client := ethereum.NewRPCClient(ethclient.NewClient(rpcClient), metrics.NewRPCClient(cfg.Network))

	var chainID *big.Int
	if cfg.ChainID > 0 {
		chainID = big.NewInt(cfg.ChainID)
	}
	ledger, err := ethereum.NewLedger(ctx, client, key, ethereum.Config{
		Contract:             common.HexToAddress(cfg.ContractAddress),
		ChainID:              chainID,
		GasLimit:             cfg.GasLimit,
		ReceiptTimeout:       cfg.ReceiptTimeout,
		PollInterval:         cfg.ReceiptPollInterval,
		SubmissionsPerSecond: cfg.SubmissionsPerSecond,
	}, logger)
	if err != nil {
		rpcClient.Close()
		return nil, nil, err
	}
	return ledger, rpcClient.Close, nil
}
