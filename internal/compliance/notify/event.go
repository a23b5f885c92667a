package notify

import (
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
)

// Event is the published form of an attempt state change.
type Event struct {
	AttemptID        string     `json:"attemptId"`
	Sequence         uint32     `json:"sequence"`
	Revision         uint32     `json:"revision"`
	CompanyID        string     `json:"companyId"`
	PeriodStart      time.Time  `json:"periodStart"`
	PeriodEnd        time.Time  `json:"periodEnd"`
	State            string     `json:"state"`
	Action           string     `json:"action"`
	TotalEmissions   string     `json:"totalEmissions"`
	EmissionCap      string     `json:"emissionCap"`
	SettlementAmount string     `json:"settlementAmount"`
	SettledAmount    string     `json:"settledAmount"`
	TxHash           string     `json:"txHash,omitempty"`
	Reason           string     `json:"reason,omitempty"`
	TimerExpiresAt   *time.Time `json:"timerExpiresAt,omitempty"`
	RecordedAt       time.Time  `json:"recordedAt"`
}

// NewEvent renders an attempt as an Event.
func NewEvent(attempt model.Attempt) Event {
	return Event{
		AttemptID:        attempt.ID,
		Sequence:         attempt.Sequence,
		Revision:         attempt.Revision,
		CompanyID:        attempt.Window.CompanyID,
		PeriodStart:      attempt.Window.PeriodStart.UTC(),
		PeriodEnd:        attempt.Window.PeriodEnd.UTC(),
		State:            string(attempt.State),
		Action:           string(attempt.Verdict.Action()),
		TotalEmissions:   attempt.Verdict.TotalEmissions.String(),
		EmissionCap:      attempt.Window.EmissionCap.String(),
		SettlementAmount: attempt.Verdict.SettlementAmount.String(),
		SettledAmount:    attempt.SettledAmount.String(),
		TxHash:           attempt.TxHash,
		Reason:           attempt.Reason,
		TimerExpiresAt:   attempt.TimerExpiresAt,
		RecordedAt:       attempt.UpdatedAt.UTC(),
	}
}
