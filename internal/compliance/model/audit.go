package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditRecord is one append-only entry describing an attempt state transition.
type AuditRecord struct {
	AttemptID        string
	Sequence         uint32
	Revision         uint32
	CompanyID        string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	State            AttemptState
	TotalEmissions   decimal.Decimal
	EmissionCap      decimal.Decimal
	IsCompliant      bool
	SettlementAmount decimal.Decimal
	SettledAmount    decimal.Decimal
	TxHash           string
	TxNonce          *uint64
	Reason           string
	TimerExpiresAt   *time.Time
	EvaluatedAt      time.Time
	RecordedAt       time.Time
}

// Attempt rebuilds the attempt state captured by the record.
func (r AuditRecord) Attempt() Attempt {
	return Attempt{
		ID:       r.AttemptID,
		Sequence: r.Sequence,
		Revision: r.Revision,
		Window: Window{
			CompanyID:   r.CompanyID,
			PeriodStart: r.PeriodStart.UTC(),
			PeriodEnd:   r.PeriodEnd.UTC(),
			EmissionCap: r.EmissionCap,
		},
		Verdict: Verdict{
			CompanyID:        r.CompanyID,
			TotalEmissions:   r.TotalEmissions,
			EmissionCap:      r.EmissionCap,
			IsCompliant:      r.IsCompliant,
			SettlementAmount: r.SettlementAmount,
			EvaluatedAt:      r.EvaluatedAt.UTC(),
		},
		State:          r.State,
		TxHash:         r.TxHash,
		TxNonce:        r.TxNonce,
		TimerExpiresAt: r.TimerExpiresAt,
		SettledAmount:  r.SettledAmount,
		Reason:         r.Reason,
		UpdatedAt:      r.RecordedAt.UTC(),
	}
}
