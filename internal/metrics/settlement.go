// Package metrics exposes application metrics collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settlementSettleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emission_settlement",
		Subsystem: "settlement",
		Name:      "settle_total",
		Help:      "Count of settle calls by outcome.",
	}, []string{"operation", "outcome"})

	settlementSettleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emission_settlement",
		Subsystem: "settlement",
		Name:      "settle_duration_seconds",
		Help:      "Duration of settle calls including the receipt wait.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"operation", "outcome"})

	settlementTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emission_settlement",
		Subsystem: "settlement",
		Name:      "attempt_transitions_total",
		Help:      "Count of recorded attempt state transitions.",
	}, []string{"state"})

	settlementSettledAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emission_settlement",
		Subsystem: "settlement",
		Name:      "settled_tokens_total",
		Help:      "Tokens minted or deducted by confirmed attempts.",
	}, []string{"action"})
)

// Settlement tracks metrics for the settlement service.
type Settlement struct{}

// NewSettlement constructs a Settlement metrics collector.
func NewSettlement() *Settlement {
	return &Settlement{}
}

// ObserveSettle records a settle or retry call outcome and duration.
func (m Settlement) ObserveSettle(operation string, err error, started time.Time) {
	outcome := settleOutcome(err)
	settlementSettleTotal.WithLabelValues(operation, outcome).Inc()
	settlementSettleDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
}

// ObserveTransition records an attempt moving to state.
func (m Settlement) ObserveTransition(state model.AttemptState) {
	if state == "" {
		state = "unknown"
	}
	settlementTransitionsTotal.WithLabelValues(string(state)).Inc()
}

// ObserveSettledAmount records the magnitude applied by a confirmed attempt.
func (m Settlement) ObserveSettledAmount(action model.Action, amount float64) {
	if action == "" {
		action = "unknown"
	}
	if amount < 0 {
		amount = -amount
	}
	settlementSettledAmount.WithLabelValues(string(action)).Add(amount)
}

func settleOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrReverted):
		return "reverted"
	case errors.Is(err, model.ErrTimeout):
		return "timeout"
	case errors.Is(err, model.ErrDuplicateAttempt):
		return "duplicate"
	default:
		return "error"
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
