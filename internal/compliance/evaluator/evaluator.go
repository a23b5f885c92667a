// Package evaluator decides whether a company complied with its emission cap and what settlement follows.
package evaluator

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
)

// amountPrecision matches the token's 18 decimals.
const amountPrecision = 18

// Policy holds the reward knobs applied to compliant companies.
// A zero RewardCap rewards the whole headroom below the cap.
type Policy struct {
	RewardRate decimal.Decimal
	RewardCap  decimal.Decimal
}

// DefaultPolicy rewards one token per unit of headroom without a reward cap.
func DefaultPolicy() Policy {
	return Policy{RewardRate: decimal.NewFromInt(1), RewardCap: decimal.Zero}
}

// Validate rejects negative knobs.
func (p Policy) Validate() error {
	if p.RewardRate.IsNegative() {
		return fmt.Errorf("reward rate %s is negative", p.RewardRate)
	}
	if p.RewardCap.IsNegative() {
		return fmt.Errorf("reward cap %s is negative", p.RewardCap)
	}
	return nil
}

// Evaluator is a pure function of its policy and inputs. It is safe for concurrent use.
type Evaluator struct {
	policy Policy
}

// New constructs an Evaluator for the policy.
func New(policy Policy) (*Evaluator, error) {
	if err := policy.Validate(); err != nil {
		return nil, errors.Join(errors.New("invalid evaluator policy"), err)
	}
	return &Evaluator{policy: policy}, nil
}

// Evaluate sums the records and compares the total against the cap.
// Compliance is strict: a total equal to the cap is not compliant and settles with a zero penalty.
// An empty record set settles with zero either way; it is compliant unless the cap is zero.
func (e *Evaluator) Evaluate(companyID string, records []model.EmissionRecord, emissionCap decimal.Decimal, at time.Time) model.Verdict {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Value)
	}

	verdict := model.Verdict{
		CompanyID:      companyID,
		TotalEmissions: total,
		EmissionCap:    emissionCap,
		IsCompliant:    total.LessThan(emissionCap),
		EvaluatedAt:    at.UTC(),
	}

	switch {
	case len(records) == 0:
		// Nothing reported, nothing to reward.
		verdict.SettlementAmount = decimal.Zero
	case verdict.IsCompliant:
		verdict.SettlementAmount = e.reward(emissionCap.Sub(total))
	default:
		verdict.SettlementAmount = total.Sub(emissionCap).Neg().Truncate(amountPrecision)
	}
	return verdict
}

func (e *Evaluator) reward(headroom decimal.Decimal) decimal.Decimal {
	base := headroom
	if e.policy.RewardCap.IsPositive() {
		base = decimal.Min(base, e.policy.RewardCap)
	}
	return base.Mul(e.policy.RewardRate).Truncate(amountPrecision)
}
