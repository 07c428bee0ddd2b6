package taxbook

import "github.com/shopspring/decimal"

// priceScale is the number of decimal places kept for unit prices.
const priceScale = 4

// Price is the value of a single unit of a priced asset.
type Price struct {
	value decimal.Decimal
	cur   string
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Price {
	return Price{value: newDecimal(value).RoundBank(priceScale), cur: currency}
}

func (p Price) IsZero() bool      { return p.value.IsZero() }
func (p Price) Equal(q Price) bool { return p.value.Equal(q.value) }
func (p Price) Currency() string  { return p.cur }
func (p Price) String() string    { return p.value.StringFixed(priceScale) }

// Value returns the money value of u units at price p, rounded to pence.
func (p Price) Value(u Units) Money {
	return Money{value: roundMoney(p.value.Mul(u.value)), cur: p.cur}
}

func (p Price) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }

func (p *Price) UnmarshalJSON(b []byte) error {
	if err := p.value.UnmarshalJSON(b); err != nil {
		return err
	}
	p.value = p.value.RoundBank(priceScale)
	return nil
}
