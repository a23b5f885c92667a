package firestore

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/shopspring/decimal"
)

func decodeEmission(doc Document) (model.EmissionRecord, error) {
	companyID, ok := doc.Data[fieldCompanyID].(string)
	if !ok || companyID == "" {
		return model.EmissionRecord{}, fmt.Errorf("%w: document %s has no %s", model.ErrInvalidRecord, doc.ID, fieldCompanyID)
	}

	value, err := decimalField(doc, fieldValue)
	if err != nil {
		return model.EmissionRecord{}, err
	}
	if value.IsNegative() {
		return model.EmissionRecord{}, fmt.Errorf("%w: document %s has negative value %s", model.ErrInvalidRecord, doc.ID, value)
	}

	ts, ok := doc.Data[fieldTimestamp].(time.Time)
	if !ok {
		return model.EmissionRecord{}, fmt.Errorf("%w: document %s has no %s", model.ErrInvalidRecord, doc.ID, fieldTimestamp)
	}

	return model.EmissionRecord{
		CompanyID: companyID,
		Value:     value,
		Timestamp: ts.UTC(),
	}, nil
}

func decodeCompany(doc Document) (model.Company, error) {
	address, _ := doc.Data[fieldWalletAddress].(string)
	if !common.IsHexAddress(address) {
		return model.Company{}, fmt.Errorf("%w: %s has wallet address %q", model.ErrInvalidCompany, doc.ID, address)
	}

	emissionCap, err := decimalField(doc, fieldEmissionCap)
	if err != nil {
		return model.Company{}, fmt.Errorf("%w: %s: %w", model.ErrInvalidCompany, doc.ID, err)
	}
	if emissionCap.IsNegative() {
		return model.Company{}, fmt.Errorf("%w: %s has negative emission cap %s", model.ErrInvalidCompany, doc.ID, emissionCap)
	}

	return model.Company{
		ID:          doc.ID,
		Address:     common.HexToAddress(address),
		EmissionCap: emissionCap,
	}, nil
}

// decimalField accepts Firestore integers and doubles as well as decimal strings.
func decimalField(doc Document, field string) (decimal.Decimal, error) {
	switch v := doc.Data[field].(type) {
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: document %s field %s is %v", model.ErrInvalidRecord, doc.ID, field, v)
		}
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: document %s field %s: %w", model.ErrInvalidRecord, doc.ID, field, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, fmt.Errorf("%w: document %s has no %s", model.ErrInvalidRecord, doc.ID, field)
	default:
		return decimal.Zero, fmt.Errorf("%w: document %s field %s has type %T", model.ErrInvalidRecord, doc.ID, field, v)
	}
}
