package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Balances and amounts are stored as int64 in currency minor units; the
// outer surfaces (HTTP, CLI) speak decimal major units with at most two
// fractional digits.

const currencyExponent = 2

// ErrAmountPrecision reports an amount with more precision than the currency
// carries.
var ErrAmountPrecision = errors.New("amount has more than two fractional digits")

// MinorUnits converts a major-unit decimal amount into minor units.
func MinorUnits(d decimal.Decimal) (int64, error) {
	scaled := d.Shift(currencyExponent)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrAmountPrecision, d)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAmount, d)
	}
	return scaled.IntPart(), nil
}

// MajorUnits converts minor units back into a major-unit decimal.
func MajorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -currencyExponent)
}
