package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
)

const appendAuditQuery = `
INSERT INTO settlement_audit (
	attempt_id,
	sequence,
	revision,
	company_id,
	period_start,
	period_end,
	state,
	total_emissions,
	emission_cap,
	is_compliant,
	settlement_amount,
	settled_amount,
	tx_hash,
	reason,
	timer_expires_at,
	evaluated_at,
	recorded_at,
	tx_nonce
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// AppendAudit inserts one audit record. Records are never updated or deduplicated.
func (r *Repository) AppendAudit(ctx context.Context, record model.AuditRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("append_audit", err, start)
	}()

	if !record.State.Valid() {
		err = fmt.Errorf("append audit %s: unknown state %q", record.AttemptID, record.State)
		return err
	}

	var timer *time.Time
	if record.TimerExpiresAt != nil {
		t := record.TimerExpiresAt.UTC()
		timer = &t
	}
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	err = r.conn.Exec(ctx, appendAuditQuery,
		record.AttemptID,
		record.Sequence,
		record.Revision,
		record.CompanyID,
		record.PeriodStart.UTC(),
		record.PeriodEnd.UTC(),
		string(record.State),
		record.TotalEmissions,
		record.EmissionCap,
		record.IsCompliant,
		record.SettlementAmount,
		record.SettledAmount,
		record.TxHash,
		record.Reason,
		timer,
		record.EvaluatedAt.UTC(),
		recordedAt.UTC(),
		record.TxNonce,
	)
	if err != nil {
		err = fmt.Errorf("insert audit record %s: %w: %w", record.AttemptID, model.ErrDataUnavailable, err)
		return err
	}
	return nil
}
