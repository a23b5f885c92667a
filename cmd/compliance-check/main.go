package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcfirestore "cloud.google.com/go/firestore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain/ethereum"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/evaluator"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/repository/clickhouse"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/repository/firestore"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/metrics"
	"github.com/jessevdk/go-flags"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type config struct {
	CompanyID    string        `long:"company-id" env:"SETTLEMENT_COMPANY_ID" required:"true" description:"company to evaluate"`
	PeriodStart  string        `long:"period-start" description:"RFC3339 window start, the last closed window when empty"`
	PeriodEnd    string        `long:"period-end" description:"RFC3339 window end"`
	WindowLength time.Duration `long:"window-length" env:"SETTLEMENT_WINDOW_LENGTH" default:"24h" description:"window length used when no period is given"`

	Source              string `long:"source" env:"SETTLEMENT_SOURCE" choice:"firestore" choice:"clickhouse" default:"firestore" description:"emission ledger and company directory backend"`
	FirestoreProject    string `long:"firestore-project" env:"SETTLEMENT_FIRESTORE_PROJECT" description:"Google Cloud project holding the emission ledger"`
	EmissionsCollection string `long:"emissions-collection" env:"SETTLEMENT_EMISSIONS_COLLECTION" default:"emissions" description:"Firestore collection with emission records"`
	CompaniesCollection string `long:"companies-collection" env:"SETTLEMENT_COMPANIES_COLLECTION" default:"companies" description:"Firestore collection with the company directory"`
	ClickhouseDSN       string `long:"clickhouse-dsn" env:"SETTLEMENT_CLICKHOUSE_DSN" description:"ClickHouse DSN when the source is clickhouse"`

	RewardRate string `long:"reward-rate" env:"SETTLEMENT_REWARD_RATE" default:"1" description:"tokens minted per unit of headroom below the cap"`
	RewardCap  string `long:"reward-cap" env:"SETTLEMENT_REWARD_CAP" default:"0" description:"maximum rewarded headroom per window, unlimited when zero"`

	RPCURL          string `long:"rpc-url" env:"SETTLEMENT_RPC_URL" description:"Ethereum JSON-RPC URL, chain views are skipped when empty"`
	Network         string `long:"network" env:"SETTLEMENT_NETWORK" default:"sepolia" description:"network label for metrics"`
	ContractAddress string `long:"contract-address" env:"SETTLEMENT_CONTRACT_ADDRESS" description:"compliance token contract address"`
}

type source interface {
	ReadWindow(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]model.EmissionRecord, error)
	Company(ctx context.Context, companyID string) (model.Company, error)
}

type report struct {
	Company        string      `json:"company"`
	Address        string      `json:"address"`
	PeriodStart    time.Time   `json:"periodStart"`
	PeriodEnd      time.Time   `json:"periodEnd"`
	Records        int         `json:"records"`
	TotalEmissions string      `json:"totalEmissions"`
	EmissionCap    string      `json:"emissionCap"`
	IsCompliant    bool        `json:"isCompliant"`
	Settlement     string      `json:"settlementAmount"`
	Action         string      `json:"action"`
	Chain          *chainState `json:"chain,omitempty"`
}

type chainState struct {
	Registered   bool   `json:"registered"`
	Balance      string `json:"balance"`
	Minted       string `json:"minted"`
	RemainingCap string `json:"remainingCap"`
	CanMintNow   bool   `json:"canMintNow"`
	MintWaitSec  int64  `json:"mintWaitSec"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	r, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("compliance check failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}
}

// run evaluates one window without touching the ledger's write path.
func run(ctx context.Context, cfg config, logger *zap.Logger) (report, error) {
	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return report{}, err
	}
	defer closeSource()

	company, err := src.Company(ctx, cfg.CompanyID)
	if err != nil {
		return report{}, fmt.Errorf("load company %s: %w", cfg.CompanyID, err)
	}

	window, err := windowOf(cfg, company, time.Now())
	if err != nil {
		return report{}, err
	}
	if err := window.Validate(); err != nil {
		return report{}, err
	}

	rate, err := decimal.NewFromString(cfg.RewardRate)
	if err != nil {
		return report{}, fmt.Errorf("parse reward rate %q: %w", cfg.RewardRate, err)
	}
	rewardCap, err := decimal.NewFromString(cfg.RewardCap)
	if err != nil {
		return report{}, fmt.Errorf("parse reward cap %q: %w", cfg.RewardCap, err)
	}
	ev, err := evaluator.New(evaluator.Policy{RewardRate: rate, RewardCap: rewardCap})
	if err != nil {
		return report{}, err
	}

	records, err := src.ReadWindow(ctx, window.CompanyID, window.PeriodStart, window.PeriodEnd)
	if err != nil {
		return report{}, fmt.Errorf("read window %s: %w", window, err)
	}
	verdict := ev.Evaluate(company.ID, records, window.EmissionCap, time.Now().UTC())
	logger.Debug("window evaluated",
		zap.Stringer("window", window),
		zap.Int("records", len(records)),
		zap.String("total", verdict.TotalEmissions.String()),
	)

	r := report{
		Company:        company.ID,
		Address:        company.Address.Hex(),
		PeriodStart:    window.PeriodStart,
		PeriodEnd:      window.PeriodEnd,
		Records:        len(records),
		TotalEmissions: verdict.TotalEmissions.String(),
		EmissionCap:    verdict.EmissionCap.String(),
		IsCompliant:    verdict.IsCompliant,
		Settlement:     verdict.SettlementAmount.String(),
		Action:         string(verdict.Action()),
	}

	if cfg.RPCURL != "" {
		state, err := readChain(ctx, cfg, company.Address, logger)
		if err != nil {
			return report{}, err
		}
		r.Chain = &state
	}
	return r, nil
}

func windowOf(cfg config, company model.Company, now time.Time) (model.Window, error) {
	if cfg.PeriodStart == "" && cfg.PeriodEnd == "" {
		return model.WindowFor(company.ID, company.EmissionCap, now, cfg.WindowLength), nil
	}
	start, err := time.Parse(time.RFC3339, cfg.PeriodStart)
	if err != nil {
		return model.Window{}, fmt.Errorf("%w: period start: %v", model.ErrInvalidWindow, err)
	}
	end, err := time.Parse(time.RFC3339, cfg.PeriodEnd)
	if err != nil {
		return model.Window{}, fmt.Errorf("%w: period end: %v", model.ErrInvalidWindow, err)
	}
	return model.Window{
		CompanyID:   company.ID,
		PeriodStart: start.UTC(),
		PeriodEnd:   end.UTC(),
		EmissionCap: company.EmissionCap,
	}, nil
}

func openSource(ctx context.Context, cfg config) (source, func(), error) {
	if cfg.Source == "clickhouse" {
		if cfg.ClickhouseDSN == "" {
			return nil, nil, errors.New("clickhouse dsn is required")
		}
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil
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

// readChain queries the token views. The ledger is keyed with a throwaway key and never signs.
func readChain(ctx context.Context, cfg config, company common.Address, logger *zap.Logger) (chainState, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return chainState{}, fmt.Errorf("contract address %q is not a hex address", cfg.ContractAddress)
	}
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return chainState{}, fmt.Errorf("dial ethereum rpc: %w", err)
	}
	defer eth.Close()

	key, err := crypto.GenerateKey()
	if err != nil {
		return chainState{}, err
	}
	ledger, err := ethereum.NewLedger(ctx,
		ethereum.NewRPCClient(eth, metrics.NewRPCClient(cfg.Network)),
		key,
		ethereum.Config{
			Contract:       common.HexToAddress(cfg.ContractAddress),
			ReceiptTimeout: time.Minute,
			PollInterval:   time.Second,
		},
		logger,
	)
	if err != nil {
		return chainState{}, err
	}

	var state chainState
	if state.Registered, err = ledger.IsRegisteredCompany(ctx, company); err != nil {
		return chainState{}, fmt.Errorf("is registered company: %w", err)
	}
	balance, err := ledger.BalanceOf(ctx, company)
	if err != nil {
		return chainState{}, fmt.Errorf("balance of: %w", err)
	}
	minted, err := ledger.MintedPerCompany(ctx, company)
	if err != nil {
		return chainState{}, fmt.Errorf("minted per company: %w", err)
	}
	remaining, err := ledger.GetRemainingCap(ctx, company)
	if err != nil {
		return chainState{}, fmt.Errorf("get remaining cap: %w", err)
	}
	mint, err := ledger.CanMintNow(ctx, company)
	if err != nil {
		return chainState{}, fmt.Errorf("can mint now: %w", err)
	}
	state.Balance = balance.String()
	state.Minted = minted.String()
	state.RemainingCap = remaining.String()
	state.CanMintNow = mint.Allowed
	state.MintWaitSec = int64(mint.Wait / time.Second)
	return state, nil
}
