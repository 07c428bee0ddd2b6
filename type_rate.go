package taxbook

import "github.com/shopspring/decimal"

// rateScale keeps rates to two decimal places of a percent.
const rateScale = 4

// Rate is a proportional rate (tax rate, interest rate) stored as a fraction:
// 20% is 0.2.
type Rate struct {
	value decimal.Decimal
}

// Pct returns the rate for a percentage: Pct(20) is 20%.
func Pct[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](percent T) Rate {
	return Rate{value: newDecimal(percent).Div(decimal.NewFromInt(100)).RoundBank(rateScale)}
}

func (r Rate) IsZero() bool                 { return r.value.IsZero() }
func (r Rate) Equal(s Rate) bool            { return r.value.Equal(s.value) }
func (r Rate) Percent() decimal.Decimal     { return r.value.Shift(2) }
func (r Rate) String() string               { return r.Percent().StringFixed(2) + "%" }
func (r Rate) MarshalJSON() ([]byte, error) { return r.Percent().MarshalJSON() }

// UnmarshalJSON reads a rate expressed in percent.
func (r *Rate) UnmarshalJSON(b []byte) error {
	var p decimal.Decimal
	if err := p.UnmarshalJSON(b); err != nil {
		return err
	}
	*r = Pct(p)
	return nil
}

// UnmarshalText reads a rate expressed in percent, with or without a trailing '%'.
func (r *Rate) UnmarshalText(b []byte) error {
	s := string(b)
	if n := len(s); n > 0 && s[n-1] == '%' {
		s = s[:n-1]
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*r = Pct(p)
	return nil
}
