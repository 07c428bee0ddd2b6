package taxbook

import (
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of amounts built without one.
const DefaultCurrency = "GBP"

// ErrCurrency is returned for amounts or prices in a currency other than
// DefaultCurrency. Reports hold a single currency.
var ErrCurrency = errors.New("unsupported currency")

// parseCurrency returns the currency of a decoded line, DefaultCurrency when
// code is empty.
func parseCurrency(code string) (string, error) {
	switch code {
	case "", DefaultCurrency:
		return DefaultCurrency, nil
	}
	return "", fmt.Errorf("%w %q, want %s", ErrCurrency, code, DefaultCurrency)
}

// foreign returns code unless it is DefaultCurrency, so that encoders omit
// the default.
func foreign(code string) string {
	if code == DefaultCurrency {
		return ""
	}
	return code
}

// moneyScale is the number of decimal places kept in computed amounts (pence).
const moneyScale = 2

// Money represents a monetary value.
//
// Sums are exact, products and quotients are rounded to pence using banker's
// rounding (round half to even).
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// GBP is a shortcut for pound sterling amounts.
func GBP[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return M(value, DefaultCurrency)
}

func roundMoney(d decimal.Decimal) decimal.Decimal { return d.RoundBank(moneyScale) }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	cur := m.cur
	if cur == "" {
		cur = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Min returns the smallest of m and n.
func (m Money) Min(n Money) Money {
	if n.LessThan(m) {
		return n
	}
	return m
}

// Max returns the largest of m and n.
func (m Money) Max(n Money) Money {
	if n.GreaterThan(m) {
		return n
	}
	return m
}

// AtRate returns the amount taxed (or earning) at rate r.
func (m Money) AtRate(r Rate) Money {
	return Money{value: roundMoney(m.value.Mul(r.value)), cur: m.cur}
}

// Half returns half of m, used by the allowance tapers.
func (m Money) Half() Money {
	return Money{value: roundMoney(m.value.Div(decimal.NewFromInt(2))), cur: m.cur}
}

// Times returns m multiplied by an integer count.
func (m Money) Times(n int) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(n))), cur: m.cur}
}

// DivInt returns m divided by an integer count.
func (m Money) DivInt(n int) Money {
	return Money{value: roundMoney(m.value.Div(decimal.NewFromInt(int64(n)))), cur: m.cur}
}

// Weighted returns m × num / den, the proportional share of m that num
// represents out of den.
func (m Money) Weighted(num, den Money) Money {
	if den.IsZero() {
		return Money{cur: m.cur}
	}
	return Money{value: roundMoney(m.value.Mul(num.value).Div(den.value)), cur: m.cur}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes money as a plain decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(int32(m.currency().Fraction)).MarshalJSON()
}

// UnmarshalJSON reads a plain decimal number, the currency is left weak.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}
