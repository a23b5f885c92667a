package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttemptState is the lifecycle state of a settlement attempt.
type AttemptState string

var (
	// AttemptPending is a created attempt that has not reached the chain.
	AttemptPending AttemptState = "pending"
	// AttemptSubmitted is an attempt whose transaction was signed and handed to the chain.
	AttemptSubmitted AttemptState = "submitted"
	// AttemptConfirmed is an attempt whose outcome is final and applied.
	AttemptConfirmed AttemptState = "confirmed"
	// AttemptFailed is an attempt rejected by the ledger rules.
	AttemptFailed AttemptState = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s AttemptState) Terminal() bool {
	return s == AttemptConfirmed || s == AttemptFailed
}

// Valid reports whether s is a known state.
func (s AttemptState) Valid() bool {
	switch s {
	case AttemptPending, AttemptSubmitted, AttemptConfirmed, AttemptFailed:
		return true
	default:
		return false
	}
}

var attemptNamespace = uuid.MustParse("6f1c3b1e-5d7a-4c58-9a57-3c2f0f4d8e21")

// AttemptID derives the deterministic attempt identifier for a company window and attempt sequence.
// Bounds are taken at BoundPrecision.
func AttemptID(companyID string, periodStart, periodEnd time.Time, sequence uint32) string {
	key := fmt.Sprintf("%s|%s|%s|%d", companyID,
		periodStart.UTC().Truncate(BoundPrecision).Format(time.RFC3339Nano),
		periodEnd.UTC().Truncate(BoundPrecision).Format(time.RFC3339Nano),
		sequence)
	return uuid.NewSHA1(attemptNamespace, []byte(key)).String()
}

// Attempt is a single effort to apply a verdict to the ledger.
// Sequence starts at zero and grows by one for every operator retry of the same window.
// Revision grows by one for every recorded state transition.
type Attempt struct {
	ID             string
	Sequence       uint32
	Revision       uint32
	Window         Window
	Verdict        Verdict
	State          AttemptState
	TxHash         string
	// TxNonce is the signing nonce of TxHash.
	TxNonce        *uint64
	TimerExpiresAt *time.Time
	SettledAmount  decimal.Decimal
	Reason         string
	UpdatedAt      time.Time
}

// NewAttempt creates an unrecorded pending attempt for the window.
func NewAttempt(window Window, sequence uint32) Attempt {
	return Attempt{
		ID:       AttemptID(window.CompanyID, window.PeriodStart, window.PeriodEnd, sequence),
		Sequence: sequence,
		Window:   window,
		State:    AttemptPending,
	}
}

// CanTransition reports whether the attempt may move to next.
func (a Attempt) CanTransition(next AttemptState) bool {
	switch a.State {
	case AttemptPending:
		return next == AttemptPending || next == AttemptSubmitted || next == AttemptConfirmed || next == AttemptFailed
	case AttemptSubmitted:
		return next == AttemptConfirmed || next == AttemptFailed
	default:
		return false
	}
}

// Transition returns a copy of the attempt in the next state.
func (a Attempt) Transition(next AttemptState, reason string, at time.Time) (Attempt, error) {
	if !a.CanTransition(next) {
		return a, fmt.Errorf("attempt %s: illegal transition %s -> %s", a.ID, a.State, next)
	}
	a.Revision++
	a.State = next
	a.Reason = reason
	a.UpdatedAt = at.UTC()
	return a, nil
}

// TimerExpired reports whether the grace timer has run out at now.
// An attempt without a timer is never expired.
func (a Attempt) TimerExpired(now time.Time) bool {
	return a.TimerExpiresAt != nil && !now.Before(*a.TimerExpiresAt)
}

// Err returns the terminal error of a failed attempt.
func (a Attempt) Err() error {
	if a.State != AttemptFailed {
		return nil
	}
	return &RevertError{Reason: a.Reason, TxHash: a.TxHash}
}

// Record renders the attempt as an append-only audit record.
func (a Attempt) Record() AuditRecord {
	return AuditRecord{
		AttemptID:        a.ID,
		Sequence:         a.Sequence,
		Revision:         a.Revision,
		CompanyID:        a.Window.CompanyID,
		PeriodStart:      a.Window.PeriodStart.UTC(),
		PeriodEnd:        a.Window.PeriodEnd.UTC(),
		State:            a.State,
		TotalEmissions:   a.Verdict.TotalEmissions,
		EmissionCap:      a.Window.EmissionCap,
		IsCompliant:      a.Verdict.IsCompliant,
		SettlementAmount: a.Verdict.SettlementAmount,
		SettledAmount:    a.SettledAmount,
		TxHash:           a.TxHash,
		TxNonce:          a.TxNonce,
		Reason:           a.Reason,
		TimerExpiresAt:   a.TimerExpiresAt,
		EvaluatedAt:      a.Verdict.EvaluatedAt.UTC(),
		RecordedAt:       a.UpdatedAt,
	}
}
