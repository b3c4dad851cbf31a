package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of minor-unit digits.
const moneyScale = 2

// ErrInvalidMoney is returned for amounts that cannot be represented exactly in minor units.
var ErrInvalidMoney = errors.New("types: invalid money amount")

// Money is an amount in integer minor units. Arithmetic on it is exact.
type Money int64

// MoneyFromMajor converts whole currency units (e.g. 700) into Money.
func MoneyFromMajor(units int64) Money {
	return Money(units * 100)
}

// MoneyFromDecimal converts d into minor units. Amounts with more than two
// fractional digits are rejected instead of rounded.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Round(moneyScale)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidMoney, d.String(), moneyScale)
	}
	minor := d.Shift(moneyScale)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMoney, d.String())
	}
	return Money(minor.IntPart()), nil
}

// ParseMoney parses a decimal string like "700", "700.5" or "700.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	return MoneyFromDecimal(d)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -moneyScale)
}

func (m Money) IsNegative() bool {
	return m < 0
}

func (m Money) String() string {
	return m.Decimal().StringFixed(moneyScale)
}

// MarshalJSON emits a JSON number in major units, e.g. 700.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	data = bytes.Trim(data, `"`)
	parsed, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Sum adds amounts exactly.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
