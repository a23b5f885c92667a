package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
)

const companiesQuery = `
SELECT
	company_id,
	wallet_address,
	emission_cap
FROM companies FINAL
WHERE active
ORDER BY company_id ASC`

const companyQuery = `
SELECT
	company_id,
	wallet_address,
	emission_cap
FROM companies FINAL
WHERE company_id = ? AND active
LIMIT 1`

// Companies lists every active company in the directory. Rows with an unusable wallet
// address are left out and reported together in an error wrapping model.ErrInvalidCompany,
// returned alongside the valid companies.
func (r *Repository) Companies(ctx context.Context) ([]model.Company, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("companies", err, start)
	}()

	rows, err := r.conn.Query(ctx, companiesQuery)
	if err != nil {
		err = fmt.Errorf("query companies: %w: %w", model.ErrDataUnavailable, err)
		return nil, err
	}
	defer closeRows(rows, &err)

	var (
		companies []model.Company
		invalid   []error
	)
	for rows.Next() {
		company, scanErr := scanCompany(rows)
		if errors.Is(scanErr, model.ErrInvalidCompany) {
			invalid = append(invalid, scanErr)
			continue
		}
		if scanErr != nil {
			err = scanErr
			return nil, err
		}
		companies = append(companies, company)
	}
	if err = rows.Err(); err != nil {
		err = fmt.Errorf("iterate companies: %w: %w", model.ErrDataUnavailable, err)
		return nil, err
	}

	err = errors.Join(invalid...)
	return companies, err
}

// Company returns a single active company or model.ErrCompanyNotFound.
func (r *Repository) Company(ctx context.Context, companyID string) (model.Company, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("company", err, start)
	}()

	rows, err := r.conn.Query(ctx, companyQuery, companyID)
	if err != nil {
		err = fmt.Errorf("query company: %w: %w", model.ErrDataUnavailable, err)
		return model.Company{}, err
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			err = fmt.Errorf("iterate company: %w: %w", model.ErrDataUnavailable, err)
			return model.Company{}, err
		}
		err = fmt.Errorf("%w: %s", model.ErrCompanyNotFound, companyID)
		return model.Company{}, err
	}

	company, err := scanCompany(rows)
	if err != nil {
		return model.Company{}, err
	}
	return company, nil
}

func scanCompany(rows Rows) (model.Company, error) {
	var (
		id          string
		address     string
		emissionCap decimal.Decimal
	)
	if err := rows.Scan(&id, &address, &emissionCap); err != nil {
		return model.Company{}, fmt.Errorf("scan company: %w: %w", model.ErrDataUnavailable, err)
	}
	if !common.IsHexAddress(address) {
		return model.Company{}, fmt.Errorf("%w: %s has wallet address %q", model.ErrInvalidCompany, id, address)
	}
	return model.Company{
		ID:          id,
		Address:     common.HexToAddress(address),
		EmissionCap: emissionCap,
	}, nil
}
