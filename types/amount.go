// Package types provides common types used across Coinage.
package types

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Amount represents a quantity of the ledger asset in base units.
// All arithmetic is integer-only and checked — balances never wrap.
//
// Examples for an asset with 6 decimals:
//   - Amount(1_000_000) = 1.000000 whole unit
//   - Amount(2_500)     = 0.002500 whole units
type Amount uint64

// MaxAmount is the largest representable balance.
const MaxAmount Amount = ^Amount(0)

// BasisPoints expresses a proportional rate where 10000 = 100%.
type BasisPoints uint32

// BasisPointDenominator is the number of basis points in a whole.
const BasisPointDenominator BasisPoints = 10_000

// Checked arithmetic

// Add returns a+b and reports whether the sum stayed in range.
// On overflow the returned amount is meaningless and ok is false.
func (a Amount) Add(b Amount) (sum Amount, ok bool) {
	s, carry := bits.Add64(uint64(a), uint64(b), 0)
	return Amount(s), carry == 0
}

// Sub returns a-b and reports whether b did not exceed a.
// On underflow the returned amount is meaningless and ok is false.
func (a Amount) Sub(b Amount) (diff Amount, ok bool) {
	d, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	return Amount(d), borrow == 0
}

// ScaleBps returns floor(a * rate / 10000), computed through a 128-bit
// intermediate so that large balances cannot overflow mid-computation.
// Integer division truncates toward zero: for any rate,
// a.ScaleBps(rate) + (a - a.ScaleBps(rate)) == a exactly, which is what
// keeps fee-split settlements conserving.
//
// Panics if rate exceeds BasisPointDenominator (programming error —
// rates above 100% are rejected long before amounts are scaled).
func (a Amount) ScaleBps(rate BasisPoints) Amount {
	if rate > BasisPointDenominator {
		panic(fmt.Sprintf("types: rate %d exceeds %d basis points", rate, BasisPointDenominator))
	}

	hi, lo := bits.Mul64(uint64(a), uint64(rate))
	q, _ := bits.Div64(hi, lo, uint64(BasisPointDenominator))
	return Amount(q)
}

// Comparison helpers

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a == 0 }

// Min returns the smaller of two amounts.
func (a Amount) Min(b Amount) Amount {
	if a < b {
		return a
	}
	return b
}

// Formatting

// Format returns the amount as a decimal string in whole units for an
// asset with the given number of decimals: Amount(1500000).Format(6)
// is "1.500000". A non-positive decimals renders base units verbatim.
func (a Amount) Format(decimals int) string {
	if decimals <= 0 {
		return strconv.FormatUint(uint64(a), 10)
	}

	divisor := uint64(1)
	for i := 0; i < decimals; i++ {
		divisor *= 10
	}

	whole := uint64(a) / divisor
	frac := uint64(a) % divisor

	format := fmt.Sprintf("%%d.%%0%dd", decimals)
	return fmt.Sprintf(format, whole, frac)
}

// String returns the amount in base units.
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAmount parses a base-unit decimal string into an Amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("types: parse amount: empty string")
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("types: parse amount %q: %w", s, err)
	}

	return Amount(v), nil
}

// SumAmounts adds a series of amounts, reporting overflow.
func SumAmounts(values ...Amount) (Amount, bool) {
	var total Amount
	for _, v := range values {
		var ok bool
		total, ok = total.Add(v)
		if !ok {
			return 0, false
		}
	}
	return total, true
}
