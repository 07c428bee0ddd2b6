package taxbook

import (
	"testing"
)

func gain(amount float64, years int) *Transaction {
	t := tx("2010-09-01", TaxableGain, amount, insurer, bank)
	t.Years = years
	return t
}

func TestChargeableEvents_ApplyTax(t *testing.T) {
	var c ChargeableEvents
	five := c.Add(gain(10000, 5))
	one := c.Add(gain(2000, 1))

	if got, want := five.Slice, GBP(2000); !got.Equal(want) {
		t.Errorf("Slice = %v, want %v", got, want)
	}
	if got, want := c.SliceTotal(), GBP(4000); !got.Equal(want) {
		t.Errorf("SliceTotal() = %v, want %v", got, want)
	}
	if got, want := c.GainsTotal(), GBP(12000); !got.Equal(want) {
		t.Errorf("GainsTotal() = %v, want %v", got, want)
	}

	c.ApplyTax(GBP(800), c.SliceTotal())

	if got, want := five.Portion, GBP(400); !got.Equal(want) {
		t.Errorf("Portion = %v, want %v", got, want)
	}
	if got, want := five.Taxation, GBP(2000); !got.Equal(want) {
		t.Errorf("Taxation = %v, want %v", got, want)
	}
	if got, want := one.Taxation, GBP(400); !got.Equal(want) {
		t.Errorf("Taxation = %v, want %v", got, want)
	}
	if got, want := c.TaxTotal(), GBP(2400); !got.Equal(want) {
		t.Errorf("TaxTotal() = %v, want %v", got, want)
	}
}

func TestChargeableEvents_PortionsSumToSliceTax(t *testing.T) {
	var c ChargeableEvents
	c.Add(gain(1000, 3))
	c.Add(gain(1000, 7))
	c.Add(gain(333.33, 1))

	sliceTax := GBP(123.45)
	c.ApplyTax(sliceTax, c.SliceTotal())

	var sum Money
	for g := range c.All() {
		sum = sum.Add(g.Portion)
	}
	// one penny of rounding per gain at most.
	if diff := sum.Sub(sliceTax).Abs(); diff.GreaterThan(GBP(0.01).Times(c.Len())) {
		t.Errorf("sum of portions = %v, want %v", sum, sliceTax)
	}
}

func TestChargeableEvents_NoYears(t *testing.T) {
	var c ChargeableEvents
	g := c.Add(gain(500, 0))
	if got, want := g.Years, 1; got != want {
		t.Errorf("Years = %d, want %d", got, want)
	}
	if got, want := g.Slice, GBP(500); !got.Equal(want) {
		t.Errorf("Slice = %v, want %v", got, want)
	}
}
