package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action is the ledger operation a verdict asks for.
type Action string

var (
	// ActionNone means the verdict settles without touching the ledger.
	ActionNone Action = "none"
	// ActionMint rewards a compliant company.
	ActionMint Action = "mint"
	// ActionDeduct penalizes a company that exceeded its cap.
	ActionDeduct Action = "deduct"
)

// Verdict is the outcome of evaluating a company's emissions against its cap.
// A positive SettlementAmount is a reward, a negative one a penalty.
type Verdict struct {
	CompanyID        string
	TotalEmissions   decimal.Decimal
	EmissionCap      decimal.Decimal
	IsCompliant      bool
	SettlementAmount decimal.Decimal
	EvaluatedAt      time.Time
}

// Action derives the ledger operation from the sign of the settlement amount.
func (v Verdict) Action() Action {
	switch {
	case v.SettlementAmount.IsPositive():
		return ActionMint
	case v.SettlementAmount.IsNegative():
		return ActionDeduct
	default:
		return ActionNone
	}
}

// Overage returns how far total emissions exceed the cap, or zero.
func (v Verdict) Overage() decimal.Decimal {
	over := v.TotalEmissions.Sub(v.EmissionCap)
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}
