package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
)

const readWindowQuery = `
SELECT
	value,
	timestamp
FROM emission_records
WHERE company_id = ? AND timestamp >= ? AND timestamp < ?
ORDER BY timestamp ASC`

// ReadWindow returns the company's emission records with timestamps in [periodStart, periodEnd), oldest first.
func (r *Repository) ReadWindow(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]model.EmissionRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("read_window", err, start)
	}()

	rows, err := r.conn.Query(ctx, readWindowQuery, companyID, periodStart.UTC(), periodEnd.UTC())
	if err != nil {
		err = fmt.Errorf("query emission records: %w: %w", model.ErrDataUnavailable, err)
		return nil, err
	}
	defer closeRows(rows, &err)

	var records []model.EmissionRecord
	for rows.Next() {
		var (
			value decimal.Decimal
			ts    time.Time
		)
		if err = rows.Scan(&value, &ts); err != nil {
			err = fmt.Errorf("scan emission record: %w: %w", model.ErrDataUnavailable, err)
			return nil, err
		}
		if value.IsNegative() {
			err = fmt.Errorf("%w: company %s at %s has negative value %s",
				model.ErrInvalidRecord, companyID, ts.UTC().Format(time.RFC3339Nano), value)
			return nil, err
		}
		records = append(records, model.EmissionRecord{
			CompanyID: companyID,
			Value:     value,
			Timestamp: ts.UTC(),
		})
	}
	if err = rows.Err(); err != nil {
		err = fmt.Errorf("iterate emission records: %w: %w", model.ErrDataUnavailable, err)
		return nil, err
	}

	return records, nil
}
