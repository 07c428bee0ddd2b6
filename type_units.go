package taxbook

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// unitsScale is the number of decimal places kept for unit holdings.
const unitsScale = 4

// Units is a number of units of a priced asset (shares, unit trust units).
type Units struct {
	value decimal.Decimal
}

func U[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Units {
	return Units{value: newDecimal(value).RoundBank(unitsScale)}
}

func (u Units) Equal(p Units) bool       { return u.value.Equal(p.value) }
func (u Units) LessThan(p Units) bool    { return u.value.LessThan(p.value) }
func (u Units) GreaterThan(p Units) bool { return u.value.GreaterThan(p.value) }
func (u Units) Add(p Units) Units        { return Units{value: u.value.Add(p.value)} }
func (u Units) Sub(p Units) Units        { return Units{value: u.value.Sub(p.value)} }
func (u Units) Neg() Units               { return Units{value: u.value.Neg()} }
func (u Units) IsNegative() bool         { return u.value.IsNegative() }
func (u Units) IsPositive() bool         { return u.value.IsPositive() }
func (u Units) IsZero() bool             { return u.value.IsZero() }
func (u Units) String() string           { return u.value.StringFixed(unitsScale) }

func (u Units) MarshalJSON() ([]byte, error) {
	return u.value.MarshalJSON()
}

func (u *Units) UnmarshalJSON(b []byte) error {
	if err := u.value.UnmarshalJSON(b); err != nil {
		return err
	}
	u.value = u.value.RoundBank(unitsScale)
	return nil
}
