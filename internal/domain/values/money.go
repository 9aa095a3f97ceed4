package values

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// INR is the only currency order values are recorded in.
const INR = "INR"

const rupeeSymbol = "₹"

var printer = message.NewPrinter(language.English)

// Money represents a rupee amount with decimal precision
type Money struct {
	amount decimal.Decimal
}

// NewMoneyFromFloat creates Money from a float64 rupee amount
// Note: Use with caution due to floating point precision issues
func NewMoneyFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// NewMoneyFromDecimal wraps an existing decimal amount
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString creates Money from a decimal string
func NewMoneyFromString(amount string) (Money, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount: %w", err)
	}
	return Money{amount: dec}, nil
}

// Zero returns a zero amount
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero checks if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add adds two amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulFloat multiplies Money by a float64 factor
func (m Money) MulFloat(factor float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(factor))}
}

// Round rounds the amount to the specified decimal places
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// Float64 converts to float64 (use with caution for precision)
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the amount with two decimals, e.g. "₹12,000.50"
func (m Money) String() string {
	return FormatRupees(m.Float64(), 2)
}

// MarshalJSON emits the amount as a JSON number rounded to paise.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Round(2).Float64())
}

// UnmarshalJSON accepts a JSON number or numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var dec decimal.Decimal
	if err := dec.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = dec
	return nil
}

// FormatRupees renders v with a rupee sign and thousands separators.
func FormatRupees(v float64, decimals int) string {
	return rupeeSymbol + printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}
