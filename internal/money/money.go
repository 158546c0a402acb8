// Package money holds the monetary primitive shared by the calculator and the
// aggregators.
//
// A Money value counts minor units (paise, cents) as an int64, so every sum is
// exact. Values are converted to major units only for display, for JSON, or
// when comparing against numbers produced outside this module.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units of the base currency.
type Money int64

// Tolerance is half a minor unit, expressed in major units.
const Tolerance = 0.005

// Zero is the zero amount.
const Zero Money = 0

var (
	// ErrInvalidAmount is returned when a value cannot be read as an amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOverflow is returned when an amount or a sum of amounts does not fit
	// in Money.
	ErrOverflow = errors.New("amount out of range")
)

// maxMajor keeps Shift(2).IntPart() inside int64.
var maxMajor = decimal.New(math.MaxInt64/100, 0)

// FromMajor converts a major-unit value (e.g. 1500.5) to Money, rounding half
// away from zero at the second fraction digit. The value must be within the
// range of Money; FromMajorChecked validates values read from outside.
func FromMajor(major float64) Money {
	return fromDecimal(decimal.NewFromFloat(major))
}

// FromMajorChecked converts a major-unit value read from outside the module.
// NaN, infinities and values beyond the range of Money are rejected.
func FromMajorChecked(major float64) (Money, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, major)
	}
	d := decimal.NewFromFloat(major)
	if d.Abs().GreaterThan(maxMajor) {
		return 0, fmt.Errorf("%w %v: %w", ErrInvalidAmount, major, ErrOverflow)
	}
	return fromDecimal(d), nil
}

// FromDecimal converts a decimal amount in major units to Money.
func FromDecimal(d decimal.Decimal) Money {
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(2).Shift(2).IntPart())
}

// Parse reads a decimal string in major units. Both "12.34" and "12,34" are
// accepted; a third fraction digit is rounded half away from zero.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Abs().GreaterThan(maxMajor) {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidAmount, s, ErrOverflow)
	}
	return fromDecimal(d), nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Major returns the amount in major units as a float64, for display and
// charting only.
func (m Money) Major() float64 {
	return m.Decimal().InexactFloat64()
}

// String formats the amount with exactly two fraction digits, e.g. "1500.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Divide splits m into n equal parts. It returns the share every part gets and
// the leftover minor units (0 <= remainder < n) the caller must assign.
func (m Money) Divide(n int) (share, remainder Money) {
	if n <= 0 {
		return 0, m
	}
	share = m / Money(n)
	return share, m - share*Money(n)
}

// Allocate distributes m over the given weights using the largest remainder
// method. The parts always sum to m exactly; ties on the fractional part go to
// the lower index.
func (m Money) Allocate(weights []float64) ([]Money, error) {
	if len(weights) == 0 {
		return nil, errors.New("no weights to allocate over")
	}
	sum := decimal.Zero
	ws := make([]decimal.Decimal, len(weights))
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %d is invalid: %v", i, w)
		}
		ws[i] = decimal.NewFromFloat(w)
		sum = sum.Add(ws[i])
	}
	if !sum.IsPositive() {
		return nil, errors.New("weights sum to zero")
	}

	total := decimal.NewFromInt(int64(m))
	parts := make([]Money, len(weights))
	fracs := make([]decimal.Decimal, len(weights))
	assigned := Money(0)
	for i, w := range ws {
		quota := total.Mul(w).Div(sum)
		floor := quota.Floor()
		parts[i] = Money(floor.IntPart())
		fracs[i] = quota.Sub(floor)
		assigned += parts[i]
	}

	for left := m - assigned; left > 0; left-- {
		best := -1
		for i := range fracs {
			if ws[i].IsZero() {
				continue
			}
			if best == -1 || fracs[i].GreaterThan(fracs[best]) {
				best = i
			}
		}
		parts[best]++
		fracs[best] = decimal.NewFromInt(-1)
	}
	return parts, nil
}

// Sum adds the given amounts. It does not detect overflow; use CheckedSum
// for amounts that have not been bounded already.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// Add returns m+o, or ErrOverflow when the result does not fit in Money.
func (m Money) Add(o Money) (Money, error) {
	sum := m + o
	if (o > 0 && sum < m) || (o < 0 && sum > m) {
		return 0, fmt.Errorf("%w: %s + %s", ErrOverflow, m, o)
	}
	return sum, nil
}

// CheckedSum adds the given amounts, failing with ErrOverflow instead of
// wrapping around.
func CheckedSum(amounts ...Money) (Money, error) {
	var (
		total Money
		err   error
	)
	for _, a := range amounts {
		if total, err = total.Add(a); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// ApproxZero reports whether a major-unit value is within half a minor unit
// of zero.
func ApproxZero(major float64) bool {
	return math.Abs(major) < Tolerance
}

// ApproxEqual reports whether m matches a major-unit value produced elsewhere
// within half a minor unit.
func (m Money) ApproxEqual(major float64) bool {
	return ApproxZero(m.Major() - major)
}

// MarshalJSON encodes the amount as a plain decimal number in major units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string in major units.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
