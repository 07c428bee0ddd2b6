package taxbook

import (
	"iter"
	"slices"

	"github.com/etnz/taxbook/date"
)

// ChargeableGain is a gain on a life insurance policy, taxed with top
// slicing: the gain is spread over the years it accrued in.
type ChargeableGain struct {
	Date        date.Date
	Description string
	Gross       Money // gain including the notional tax credit
	TaxCredit   Money
	Years       int
	Slice       Money // Gross divided by Years
	Portion     Money // share of the slice tax
	Taxation    Money // Portion multiplied by Years
}

// ChargeableEvents collects the chargeable gains of a tax year.
type ChargeableEvents struct {
	gains []*ChargeableGain
}

// Add records a taxable gain transaction.
func (c *ChargeableEvents) Add(t *Transaction) *ChargeableGain {
	years := max(t.Years, 1)
	gross := t.Gross()
	g := &ChargeableGain{
		Date:        t.Date,
		Description: t.Description,
		Gross:       gross,
		TaxCredit:   t.TaxCredit,
		Years:       years,
		Slice:       gross.DivInt(years),
	}
	c.gains = append(c.gains, g)
	return g
}

// Len returns the number of gains.
func (c *ChargeableEvents) Len() int { return len(c.gains) }

// SliceTotal returns the sum of the annual slices.
func (c *ChargeableEvents) SliceTotal() Money {
	var s Money
	for _, g := range c.gains {
		s = s.Add(g.Slice)
	}
	return s
}

// GainsTotal returns the sum of the gross gains.
func (c *ChargeableEvents) GainsTotal() Money {
	var s Money
	for _, g := range c.gains {
		s = s.Add(g.Gross)
	}
	return s
}

// TaxTotal returns the sum of the taxation of each gain.
func (c *ChargeableEvents) TaxTotal() Money {
	var s Money
	for _, g := range c.gains {
		s = s.Add(g.Taxation)
	}
	return s
}

// ApplyTax shares the tax due on the total slice between gains, in
// proportion to their slice, then scales each share back to the whole gain.
func (c *ChargeableEvents) ApplyTax(sliceTax, sliceTotal Money) {
	for _, g := range c.gains {
		g.Portion = sliceTax.Weighted(g.Slice, sliceTotal)
		g.Taxation = g.Portion.Times(g.Years)
	}
}

// All iterates over gains in the order they were added.
func (c *ChargeableEvents) All() iter.Seq[*ChargeableGain] {
	return slices.Values(c.gains)
}
