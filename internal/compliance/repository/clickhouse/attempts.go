package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
)

const auditColumns = `
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
	tx_nonce`

const latestAttemptQuery = `
SELECT` + auditColumns + `
FROM settlement_audit
WHERE company_id = ? AND period_start = ? AND period_end = ?
ORDER BY sequence DESC, revision DESC
LIMIT 1`

const confirmedAttemptQuery = `
SELECT` + auditColumns + `
FROM settlement_audit
WHERE attempt_id = ? AND state = 'confirmed'
ORDER BY revision DESC
LIMIT 1`

const confirmedForWindowQuery = `
SELECT` + auditColumns + `
FROM settlement_audit
WHERE company_id = ? AND period_start = ? AND period_end = ? AND state = 'confirmed'
ORDER BY sequence DESC, revision DESC
LIMIT 1`

const historyQuery = `
SELECT` + auditColumns + `
FROM settlement_audit
WHERE attempt_id = ?
ORDER BY revision ASC`

const expiredPendingQuery = `
SELECT` + auditColumns + `
FROM (
	SELECT
		*,
		row_number() OVER (
			PARTITION BY company_id, period_start, period_end
			ORDER BY sequence DESC, revision DESC
		) AS rn
	FROM settlement_audit
)
WHERE rn = 1 AND state = 'pending' AND timer_expires_at IS NOT NULL AND timer_expires_at <= ?
ORDER BY timer_expires_at ASC
LIMIT ?`

// LatestAttempt returns the newest revision of the newest attempt for a window, or nil when none exists.
func (r *Repository) LatestAttempt(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*model.Attempt, error) {
	return r.singleAttempt(ctx, "latest_attempt", latestAttemptQuery, companyID, periodStart.UTC(), periodEnd.UTC())
}

// ConfirmedAttempt returns the confirmed revision of an attempt, or nil when it never confirmed.
func (r *Repository) ConfirmedAttempt(ctx context.Context, attemptID string) (*model.Attempt, error) {
	return r.singleAttempt(ctx, "confirmed_attempt", confirmedAttemptQuery, attemptID)
}

// ConfirmedForWindow returns the confirmed attempt of any sequence for a window, or nil.
func (r *Repository) ConfirmedForWindow(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*model.Attempt, error) {
	return r.singleAttempt(ctx, "confirmed_for_window", confirmedForWindowQuery, companyID, periodStart.UTC(), periodEnd.UTC())
}

// History returns every recorded transition of an attempt, oldest first.
func (r *Repository) History(ctx context.Context, attemptID string) ([]model.AuditRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("history", err, start)
	}()

	records, err := r.queryAudit(ctx, historyQuery, attemptID)
	if err != nil {
		err = fmt.Errorf("history %s: %w", attemptID, err)
		return nil, err
	}
	return records, nil
}

// ExpiredPending returns windows whose latest attempt is pending with a grace timer at or before now.
func (r *Repository) ExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.Attempt, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("expired_pending", err, start)
	}()

	if limit <= 0 {
		err = fmt.Errorf("expired pending: limit must be positive, got %d", limit)
		return nil, err
	}

	records, err := r.queryAudit(ctx, expiredPendingQuery, now.UTC(), uint64(limit))
	if err != nil {
		err = fmt.Errorf("expired pending: %w", err)
		return nil, err
	}

	attempts := make([]model.Attempt, 0, len(records))
	for _, record := range records {
		attempts = append(attempts, record.Attempt())
	}
	return attempts, nil
}

func (r *Repository) singleAttempt(ctx context.Context, operation, query string, args ...any) (*model.Attempt, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe(operation, err, start)
	}()

	records, err := r.queryAudit(ctx, query, args...)
	if err != nil {
		err = fmt.Errorf("%s: %w", operation, err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	attempt := records[0].Attempt()
	return &attempt, nil
}

func (r *Repository) queryAudit(ctx context.Context, query string, args ...any) (records []model.AuditRecord, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query settlement audit: %w: %w", model.ErrDataUnavailable, err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var record model.AuditRecord
		if record, err = scanAudit(rows); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlement audit: %w: %w", model.ErrDataUnavailable, err)
	}
	return records, nil
}

func scanAudit(rows Rows) (model.AuditRecord, error) {
	var (
		record model.AuditRecord
		state  string
	)
	if err := rows.Scan(
		&record.AttemptID,
		&record.Sequence,
		&record.Revision,
		&record.CompanyID,
		&record.PeriodStart,
		&record.PeriodEnd,
		&state,
		&record.TotalEmissions,
		&record.EmissionCap,
		&record.IsCompliant,
		&record.SettlementAmount,
		&record.SettledAmount,
		&record.TxHash,
		&record.Reason,
		&record.TimerExpiresAt,
		&record.EvaluatedAt,
		&record.RecordedAt,
		&record.TxNonce,
	); err != nil {
		return model.AuditRecord{}, fmt.Errorf("scan settlement audit: %w: %w", model.ErrDataUnavailable, err)
	}

	record.State = model.AttemptState(state)
	if !record.State.Valid() {
		return model.AuditRecord{}, fmt.Errorf("audit record %s has unknown state %q", record.AttemptID, state)
	}
	return record, nil
}
