// Package model defines domain models for emission compliance settlement.
package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Company is a regulated emitter with an on-chain wallet and a per-window cap.
type Company struct {
	ID          string
	Address     common.Address
	EmissionCap decimal.Decimal
}

// EmissionRecord is a single reported emission measurement for a company.
type EmissionRecord struct {
	CompanyID string
	Value     decimal.Decimal
	Timestamp time.Time
}
