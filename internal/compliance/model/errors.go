package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDataUnavailable is returned when the emission ledger or audit store cannot be read or written.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrChainUnavailable is returned when the node cannot be reached.
	ErrChainUnavailable = errors.New("chain unavailable")
	// ErrReverted is returned when the contract rejected a request.
	ErrReverted = errors.New("transaction reverted")
	// ErrTimeout is returned when a submitted transaction has no known outcome yet.
	ErrTimeout = errors.New("transaction outcome unknown")
	// ErrDuplicateAttempt is returned when the window already has a confirmed settlement.
	ErrDuplicateAttempt = errors.New("window already settled")
	// ErrRetryNotAllowed is returned when a retry is requested for a window whose latest attempt is not failed.
	ErrRetryNotAllowed = errors.New("retry not allowed")
	// ErrInvalidWindow is returned for malformed window bounds.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrInvalidRecord is returned for emission records that cannot be decoded.
	ErrInvalidRecord = errors.New("invalid emission record")
	// ErrInvalidCompany is returned for directory entries that cannot be settled.
	ErrInvalidCompany = errors.New("invalid company")
	// ErrCompanyNotFound is returned when a company is unknown to the directory.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrLockHeld is returned when a company settlement is already in flight elsewhere.
	ErrLockHeld = errors.New("company settlement in flight")
	// ErrLockLost is the cause of a lock-held context ending because ownership could not be kept.
	ErrLockLost = errors.New("company lock lost")
)

// RevertError is a ledger rule rejection. It is terminal for the attempt.
type RevertError struct {
	Reason string
	TxHash string
}

func (e *RevertError) Error() string {
	if e.TxHash == "" {
		return fmt.Sprintf("%s: %s", ErrReverted, e.Reason)
	}
	return fmt.Sprintf("%s: %s (tx %s)", ErrReverted, e.Reason, e.TxHash)
}

// Is matches ErrReverted.
func (e *RevertError) Is(target error) bool {
	return target == ErrReverted
}

// TimeoutError reports a submitted transaction whose receipt did not arrive in time.
type TimeoutError struct {
	TxHash string
	Err    error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: tx %s", ErrTimeout, e.TxHash)
	}
	return fmt.Sprintf("%s: tx %s: %v", ErrTimeout, e.TxHash, e.Err)
}

// Is matches ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// SettlementError carries the window and attempt a settlement failure belongs to.
type SettlementError struct {
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	AttemptID   string
	Err         error
}

func (e *SettlementError) Error() string {
	window := fmt.Sprintf("company %s window [%s, %s)", e.CompanyID,
		e.PeriodStart.UTC().Format(time.RFC3339), e.PeriodEnd.UTC().Format(time.RFC3339))
	if e.AttemptID == "" {
		return fmt.Sprintf("settle %s: %v", window, e.Err)
	}
	return fmt.Sprintf("settle %s attempt %s: %v", window, e.AttemptID, e.Err)
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}
