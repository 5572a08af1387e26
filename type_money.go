package networth

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary value used for report display. The engine's series stay
// in plain USD floats; Money keeps statement amounts exact and formats them.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from a decimal value and a currency code.
func M(value decimal.Decimal, currency string) Money { return Money{value: value, cur: currency} }

// USD builds a US dollar Money from a float. Report values come out of the
// combined float series, so the float constructor is the common path.
func USD(v float64) Money { return Money{value: decimal.NewFromFloat(v), cur: "USD"} }

// currency returns a never-nil go-money currency for formatting.
func (m Money) currency() money.Currency { return *money.New(0, m.cur).Currency() }

// String formats the value with its currency symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	units := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(units.IntPart())
}

// SignedString is like String but with an explicit leading sign, and "-" for
// zero, which reads better in report tables.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string   { return m.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Add(n Money) Money  { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) Sub(n Money) Money  { return Money{value: m.value.Sub(n.value), cur: m.cur} }
func (m Money) AsFloat() float64   { return m.value.InexactFloat64() }
