// Package firestore reads emission records and the company directory from Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Document field names.
const (
	fieldCompanyID     = "companyId"
	fieldValue         = "value"
	fieldTimestamp     = "timestamp"
	fieldWalletAddress = "walletAddress"
	fieldEmissionCap   = "emissionCap"
	fieldActive        = "active"
)

// Collections names the collections the repository reads.
type Collections struct {
	Emissions string
	Companies string
}

// DefaultCollections returns the collection names used by the emission ledger.
func DefaultCollections() Collections {
	return Collections{Emissions: "emissions", Companies: "companies"}
}

type Repository struct {
	store       Store
	collections Collections
	metrics     Metrics
}

func NewRepository(store Store, collections Collections, metrics Metrics) (*Repository, error) {
	if store == nil {
		return nil, errors.New("firestore store is required")
	}
	if metrics == nil {
		return nil, errors.New("firestore metrics is required")
	}
	if collections.Emissions == "" || collections.Companies == "" {
		return nil, errors.New("firestore collection names are required")
	}
	return &Repository{store: store, collections: collections, metrics: metrics}, nil
}

// ReadWindow returns the company's emission records with timestamps in [periodStart, periodEnd), oldest first.
func (r *Repository) ReadWindow(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]model.EmissionRecord, error) {
	start := time.Now()
	var (
		err     error
		records []model.EmissionRecord
	)
	defer func() {
		r.metrics.Observe("read_window", len(records), err, start)
	}()

	docs := r.store.Query(ctx, r.collections.Emissions, []Filter{
		{Path: fieldCompanyID, Op: "==", Value: companyID},
		{Path: fieldTimestamp, Op: ">=", Value: periodStart.UTC()},
		{Path: fieldTimestamp, Op: "<", Value: periodEnd.UTC()},
	}, fieldTimestamp)
	defer docs.Stop()

	for {
		var doc Document
		doc, err = docs.Next()
		if errors.Is(err, iterator.Done) {
			err = nil
			break
		}
		if err != nil {
			err = fmt.Errorf("read emissions for %s: %w: %w", companyID, model.ErrDataUnavailable, err)
			return nil, err
		}

		var record model.EmissionRecord
		if record, err = decodeEmission(doc); err != nil {
			return nil, err
		}
		if record.CompanyID != companyID {
			err = fmt.Errorf("%w: document %s belongs to %q", model.ErrInvalidRecord, doc.ID, record.CompanyID)
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// Companies lists every active company in the directory. Entries that do not decode are
// left out and reported together in an error wrapping model.ErrInvalidCompany, returned
// alongside the valid companies.
func (r *Repository) Companies(ctx context.Context) ([]model.Company, error) {
	start := time.Now()
	var (
		err       error
		companies []model.Company
		invalid   []error
	)
	defer func() {
		r.metrics.Observe("companies", len(companies), err, start)
	}()

	docs := r.store.Query(ctx, r.collections.Companies, []Filter{
		{Path: fieldActive, Op: "==", Value: true},
	}, "")
	defer docs.Stop()

	for {
		var doc Document
		doc, err = docs.Next()
		if errors.Is(err, iterator.Done) {
			err = nil
			break
		}
		if err != nil {
			err = fmt.Errorf("read companies: %w: %w", model.ErrDataUnavailable, err)
			return nil, err
		}

		company, decodeErr := decodeCompany(doc)
		if decodeErr != nil {
			invalid = append(invalid, decodeErr)
			continue
		}
		companies = append(companies, company)
	}

	err = errors.Join(invalid...)
	return companies, err
}

// Company returns a single company or model.ErrCompanyNotFound.
func (r *Repository) Company(ctx context.Context, companyID string) (model.Company, error) {
	start := time.Now()
	var err error
	found := 0
	defer func() {
		r.metrics.Observe("company", found, err, start)
	}()

	doc, err := r.store.Get(ctx, r.collections.Companies, companyID)
	if status.Code(err) == codes.NotFound {
		err = fmt.Errorf("%w: %s", model.ErrCompanyNotFound, companyID)
		return model.Company{}, err
	}
	if err != nil {
		err = fmt.Errorf("read company %s: %w: %w", companyID, model.ErrDataUnavailable, err)
		return model.Company{}, err
	}

	company, err := decodeCompany(doc)
	if err != nil {
		return model.Company{}, err
	}
	found = 1
	return company, nil
}
