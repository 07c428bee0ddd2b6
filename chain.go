package taxbook

import (
	"iter"
	"maps"
	"slices"

	"github.com/etnz/taxbook/date"
)

// Activity is the first and last day a transaction touched an account.
type Activity struct {
	First, Last date.Date
}

// ReportSetChain is the sequence of ReportSets computed from a ledger, one
// per tax year that has transactions.
type ReportSetChain struct {
	sets     []*ReportSet
	activity map[string]Activity
}

// NewReportSetChain scans the ledger in date order and computes the reports
// of every tax year it covers.
//
// Tax years must be contiguous and cover every transaction, a transaction
// outside of all tax years is logged and ignored.
func NewReportSetChain(in Inputs) *ReportSetChain {
	log := in.logger()
	c := &ReportSetChain{activity: make(map[string]Activity)}
	var cur *ReportSet
	for t := range in.Ledger.InDateOrder() {
		if cur == nil || !cur.year.Range().Contains(t.Date) {
			year, ok := in.TaxYears.RangeContaining(t.Date)
			if !ok {
				log.Warn().Stringer("date", t.Date).Str("description", t.Description).Err(ErrNoTaxYear).Msg("transaction ignored")
				continue
			}
			log.Debug().Str("year", year.Label()).Msg("tax year opened")
			cur = NewReportSet(year, in, cur)
			c.sets = append(c.sets, cur)
		}
		c.touch(t.Debit, t.Date)
		c.touch(t.Credit, t.Date)
		cur.ProcessTransaction(t)
	}
	if cur != nil {
		cur.Close()
	}
	return c
}

func (c *ReportSetChain) touch(a *Account, day date.Date) {
	if a == nil {
		return
	}
	act, ok := c.activity[a.Name]
	if !ok || day.Before(act.First) {
		act.First = day
	}
	if day.After(act.Last) {
		act.Last = day
	}
	c.activity[a.Name] = act
}

// Years iterates over the ReportSets in date order.
func (c *ReportSetChain) Years() iter.Seq[*ReportSet] { return slices.Values(c.sets) }

// Len returns the number of ReportSets.
func (c *ReportSetChain) Len() int { return len(c.sets) }

// Last returns the most recent ReportSet, nil if the ledger was empty.
func (c *ReportSetChain) Last() *ReportSet {
	if len(c.sets) == 0 {
		return nil
	}
	return c.sets[len(c.sets)-1]
}

// Find returns the ReportSet of the tax year containing day.
func (c *ReportSetChain) Find(day date.Date) (*ReportSet, bool) {
	for _, s := range c.sets {
		if s.year.Range().Contains(day) {
			return s, true
		}
	}
	return nil, false
}

// Previous returns the ReportSet before s.
func (c *ReportSetChain) Previous(s *ReportSet) (*ReportSet, bool) {
	i := slices.Index(c.sets, s)
	if i <= 0 {
		return nil, false
	}
	return c.sets[i-1], true
}

// Activity returns the first and last activity of the named account.
func (c *ReportSetChain) Activity(name string) (Activity, bool) {
	a, ok := c.activity[name]
	return a, ok
}

// ActiveAccounts iterates over the names of accounts that had activity, sorted.
func (c *ReportSetChain) ActiveAccounts() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(c.activity)))
}
