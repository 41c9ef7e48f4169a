package teller

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ledger currency when none is configured.
const DefaultCurrency = "BRL"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a number in major units.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic(fmt.Sprintf("unsupported type %T", value))
	}
}

// ParseMoney parses a decimal amount like "40" or "12.50" in the given currency.
// Amounts with more digits than the currency allows are rejected.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if cur := money.GetCurrency(currency); cur != nil && -d.Exponent() > int32(cur.Fraction) && !d.Equal(d.Round(int32(cur.Fraction))) {
		return Money{}, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, cur.Fraction)
	}
	m := Money{value: d, cur: currency}
	if !m.fits() {
		return Money{}, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}
	return m, nil
}

// maxMinor is the largest amount, in minor units, the formatter can print.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

// fraction returns the number of minor digits of a currency, 2 if unknown.
func fraction(code string) int32 {
	if cur := money.GetCurrency(code); cur != nil {
		return int32(cur.Fraction)
	}
	return 2
}

// fits reports whether the amount in minor units fits in an int64.
func (m Money) fits() bool {
	return m.value.Shift(fraction(m.cur)).Round(0).Abs().LessThanOrEqual(maxMinor)
}

// KnownCurrency reports whether code is an ISO currency known to the formatter.
func KnownCurrency(code string) bool { return money.GetCurrency(code) != nil }

// String returns the amount formatted for its currency, e.g. "$1,234.50".
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return strings.TrimSpace(m.value.StringFixed(2) + " " + m.cur)
	}
	if !m.fits() {
		return m.value.StringFixed(int32(cur.Fraction)) + " " + m.cur
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string            { return m.cur }
func (m Money) Decimal() decimal.Decimal    { return m.value }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) IsPositive() bool            { return m.value.IsPositive() }
func (m Money) IsNegative() bool            { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) LessThan(n Money) bool       { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool    { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                  { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money           { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money           { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) compatible(n Money) bool     { return m.cur == "" || n.cur == "" || m.cur == n.cur }
func (m Money) in(currency string) Money    { return Money{value: m.value, cur: currency} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var a amountField
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = a.Money()
	return nil
}

// amountField reads a money value persisted as two sibling fields.
type amountField struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountField) Money() Money { return M(a.Amount, a.Currency) }
