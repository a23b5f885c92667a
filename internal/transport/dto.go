package transport

import (
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/chain"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
)

type windowRequest struct {
	CompanyID   string    `json:"companyId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

type verdictResponse struct {
	TotalEmissions   string    `json:"totalEmissions"`
	EmissionCap      string    `json:"emissionCap"`
	IsCompliant      bool      `json:"isCompliant"`
	SettlementAmount string    `json:"settlementAmount"`
	Action           string    `json:"action"`
	EvaluatedAt      time.Time `json:"evaluatedAt"`
}

type attemptResponse struct {
	AttemptID      string          `json:"attemptId"`
	Sequence       uint32          `json:"sequence"`
	Revision       uint32          `json:"revision"`
	CompanyID      string          `json:"companyId"`
	PeriodStart    time.Time       `json:"periodStart"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	State          string          `json:"state"`
	Verdict        verdictResponse `json:"verdict"`
	SettledAmount  string          `json:"settledAmount"`
	TxHash         string          `json:"txHash,omitempty"`
	TxNonce        *uint64         `json:"txNonce,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	TimerExpiresAt *time.Time      `json:"timerExpiresAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type settlementResponse struct {
	Attempt *attemptResponse `json:"attempt,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type historyResponse struct {
	AttemptID string            `json:"attemptId"`
	Records   []attemptResponse `json:"records"`
}

type chainViewResponse struct {
	CompanyID    string `json:"companyId"`
	Address      string `json:"address"`
	Registered   bool   `json:"registered"`
	Balance      string `json:"balance"`
	Minted       string `json:"minted"`
	RemainingCap string `json:"remainingCap"`
	CanMintNow   bool   `json:"canMintNow"`
	MintWaitSec  int64  `json:"mintWaitSeconds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toAttempt(a model.Attempt) *attemptResponse {
	return &attemptResponse{
		AttemptID:   a.ID,
		Sequence:    a.Sequence,
		Revision:    a.Revision,
		CompanyID:   a.Window.CompanyID,
		PeriodStart: a.Window.PeriodStart.UTC(),
		PeriodEnd:   a.Window.PeriodEnd.UTC(),
		State:       string(a.State),
		Verdict: verdictResponse{
			TotalEmissions:   a.Verdict.TotalEmissions.String(),
			EmissionCap:      a.Window.EmissionCap.String(),
			IsCompliant:      a.Verdict.IsCompliant,
			SettlementAmount: a.Verdict.SettlementAmount.String(),
			Action:           string(a.Verdict.Action()),
			EvaluatedAt:      a.Verdict.EvaluatedAt.UTC(),
		},
		SettledAmount:  a.SettledAmount.String(),
		TxHash:         a.TxHash,
		TxNonce:        a.TxNonce,
		Reason:         a.Reason,
		TimerExpiresAt: a.TimerExpiresAt,
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func toChainView(company model.Company, registered bool, balance, minted, remaining string, window chain.MintWindow) chainViewResponse {
	return chainViewResponse{
		CompanyID:    company.ID,
		Address:      company.Address.Hex(),
		Registered:   registered,
		Balance:      balance,
		Minted:       minted,
		RemainingCap: remaining,
		CanMintNow:   window.Allowed,
		MintWaitSec:  int64(window.Wait.Seconds()),
	}
}
