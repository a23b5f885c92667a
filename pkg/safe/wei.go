// Package safe provides checked conversions between token amounts and their on-chain integer form.
package safe

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the fixed-point precision of every on-chain amount.
const TokenDecimals = 18

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ToWei scales a non-negative amount to its uint256 representation, dropping digits past 18 decimals.
func ToWei(amount decimal.Decimal) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount %s is negative", amount)
	}
	wei := amount.Shift(TokenDecimals).Truncate(0).BigInt()
	if wei.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("amount %s overflows uint256", amount)
	}
	return wei, nil
}

// FromWei converts a uint256 amount back to token units.
func FromWei(wei *big.Int) (decimal.Decimal, error) {
	if wei == nil {
		return decimal.Zero, fmt.Errorf("amount is nil")
	}
	if wei.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("amount %s is negative", wei)
	}
	return decimal.NewFromBigInt(wei, -TokenDecimals), nil
}

// Seconds converts a uint256 number of seconds to a duration.
func Seconds(v *big.Int) (time.Duration, error) {
	if v == nil || v.Sign() < 0 {
		return 0, fmt.Errorf("seconds %v out of range", v)
	}
	if !v.IsInt64() || v.Int64() > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("seconds %s overflow duration", v)
	}
	return time.Duration(v.Int64()) * time.Second, nil
}
