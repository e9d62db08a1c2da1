package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits every Money amount carries.
const moneyScale = 2

// ZeroMoney is the additive identity used to start subtotal summations.
var ZeroMoney = Money{amount: decimal.Zero}

// Money is an immutable decimal amount with two fractional digits.
// Every operation re-applies the scale using round-half-to-even, and
// comparisons use the numeric value rather than the representation, so
// 50, 50.0 and 50.00 are the same Money.
//
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rounds amount to the money scale.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: scale(amount)}
}

// NewExactMoney is NewMoney for amounts taken from outside the system. An
// amount with significant digits past the money scale is rejected instead of
// rounded; trailing zeros are fine.
func NewExactMoney(paramName string, amount decimal.Decimal) (Money, error) {
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), moneyScale))
	}
	return NewMoney(amount), nil
}

// MoneyFromString parses a decimal string such as "50.00".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return NewMoney(amount), nil
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the scaled decimal value.
func (m Money) Amount() decimal.Decimal {
	return scale(m.amount)
}

// IsPositive is false for zero and negative amounts.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsGreaterThan compares scaled values.
func (m Money) IsGreaterThan(other Money) bool {
	return m.Amount().GreaterThan(other.Amount())
}

// IsEqual compares scaled values.
func (m Money) IsEqual(other Money) bool {
	return m.Amount().Equal(other.Amount())
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Subtract(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

func (m Money) MultiplyByInt(times int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(times))))
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.Amount().StringFixed(moneyScale)
}

func scale(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(moneyScale)
}
