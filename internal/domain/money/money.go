// Package money holds the fixed-point currency amount used across the ledger.
//
// Amounts are integers of minor units (cents). Decimal text is only produced or
// accepted at the edges, through shopspring/decimal.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places carried by an Amount.
const Scale = 2

var (
	ErrTooPrecise = errors.New("amount has more than 2 decimal places")
	ErrOverflow   = errors.New("amount out of range")
	ErrMalformed  = errors.New("amount is not a decimal number")
)

var (
	minorPerUnit = decimal.New(1, Scale)
	maxMinor     = decimal.NewFromInt(math.MaxInt64)
	minMinor     = decimal.NewFromInt(math.MinInt64)
)

// Amount is a currency amount in minor units.
type Amount int64

func Cents(v int64) Amount { return Amount(v) }

// Parse reads a decimal string such as "25", "25.1" or "25.01".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts d into minor units without rounding.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Mul(minorPerUnit)
	if !minor.IsInteger() {
		return 0, ErrTooPrecise
	}
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, ErrOverflow
	}
	return Amount(minor.IntPart()), nil
}

func (a Amount) Minor() int64 { return int64(a) }

func (a Amount) Decimal() decimal.Decimal { return decimal.New(int64(a), -Scale) }

func (a Amount) String() string { return a.Decimal().StringFixed(Scale) }

func (a Amount) IsPositive() bool { return a > 0 }

func (a Amount) IsNegative() bool { return a < 0 }

// Add returns a+b, failing instead of wrapping on overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns a-b, failing instead of wrapping on overflow.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b == math.MinInt64 {
		return 0, ErrOverflow
	}
	return a.Add(-b)
}

// Sum adds every amount; it fails only on overflow.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, v := range amounts {
		next, err := total.Add(v)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// ExceedsShare reports whether a > base*num/den, evaluated exactly (no division).
func ExceedsShare(a, base Amount, num, den int64) bool {
	lhs := decimal.NewFromInt(int64(a)).Mul(decimal.NewFromInt(den))
	rhs := decimal.NewFromInt(int64(base)).Mul(decimal.NewFromInt(num))
	return lhs.GreaterThan(rhs)
}

// Share returns base*num/den truncated to minor units.
func Share(base Amount, num, den int64) Amount {
	return Amount(decimal.NewFromInt(int64(base)).Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den)).IntPart())
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return ErrMalformed
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ErrMalformed
		}
		raw = []byte(s)
	}
	v, err := Parse(string(raw))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
