package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Window is the half-open compliance period [PeriodStart, PeriodEnd) evaluated for a single company.
type Window struct {
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	EmissionCap decimal.Decimal
}

// WindowFor returns the most recent fully elapsed window of the given length that ends at or before at.
// Window boundaries are aligned to UTC multiples of length.
func WindowFor(companyID string, emissionCap decimal.Decimal, at time.Time, length time.Duration) Window {
	end := at.UTC().Truncate(length)
	return Window{
		CompanyID:   companyID,
		PeriodStart: end.Add(-length),
		PeriodEnd:   end,
		EmissionCap: emissionCap,
	}
}

// BoundPrecision is the resolution window bounds are stored with.
const BoundPrecision = time.Millisecond

// Normalize returns the window with UTC bounds truncated to BoundPrecision,
// the form in which the window is identified and recorded.
func (w Window) Normalize() Window {
	w.PeriodStart = w.PeriodStart.UTC().Truncate(BoundPrecision)
	w.PeriodEnd = w.PeriodEnd.UTC().Truncate(BoundPrecision)
	return w
}

// Validate reports whether the window can be evaluated.
func (w Window) Validate() error {
	if strings.TrimSpace(w.CompanyID) == "" {
		return fmt.Errorf("%w: company id is required", ErrInvalidWindow)
	}
	if w.PeriodStart.IsZero() || w.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period bounds are required", ErrInvalidWindow)
	}
	if !w.PeriodStart.Before(w.PeriodEnd) {
		return fmt.Errorf("%w: period start %s is not before period end %s",
			ErrInvalidWindow, w.PeriodStart.Format(time.RFC3339), w.PeriodEnd.Format(time.RFC3339))
	}
	if w.EmissionCap.IsNegative() {
		return fmt.Errorf("%w: emission cap %s is negative", ErrInvalidWindow, w.EmissionCap)
	}
	return nil
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.PeriodStart) && ts.Before(w.PeriodEnd)
}

func (w Window) String() string {
	return fmt.Sprintf("%s [%s, %s)", w.CompanyID,
		w.PeriodStart.UTC().Format(time.RFC3339), w.PeriodEnd.UTC().Format(time.RFC3339))
}
