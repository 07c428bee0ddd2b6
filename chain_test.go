package taxbook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/taxbook/date"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func testChain(t *testing.T, log *zerolog.Logger, txs ...*Transaction) *ReportSetChain {
	t.Helper()
	market := NewMarketData().
		SetPrice("Fund", date.MustParse("2011-04-01"), P(60, "GBP")).
		SetPrice("Fund", date.MustParse("2012-04-01"), P(55, "GBP"))
	return NewReportSetChain(Inputs{
		Ledger:   NewLedger(txs...),
		Accounts: testAccounts(),
		TaxYears: NewTaxYears(testYear(2011), testYear(2012)),
		Prices:   market,
		Rates:    market,
		TaxPayer: Profile{Birth: date.MustParse("1970-01-01")},
		Logger:   log,
	})
}

func TestReportSetChain(t *testing.T) {
	deleted := tx("2010-12-01", Expense, 999, bank, shop)
	deleted.Deleted = true
	c := testChain(t, nil,
		tx("2010-05-01", Salary, 1000, employer, bank),
		buy("2010-06-01", 500, 10),
		deleted,
		tx("2011-05-01", Expense, 200, bank, shop),
	)

	var labels []string
	for s := range c.Years() {
		labels = append(labels, s.Label())
	}
	if diff := cmp.Diff([]string{"2010/11", "2011/12"}, labels); diff != "" {
		t.Fatalf("Years() mismatch (-want +got):\n%s", diff)
	}

	first, _ := c.Find(date.MustParse("2011-01-01"))
	if got, want := first.Assets().Total().Amount, GBP(1100); !got.Equal(want) {
		t.Errorf("2010/11 assets = %v, want %v", got, want)
	}
	m, ok := first.Income().Account(testAccounts().Market())
	if !ok || !m.Income.Equal(GBP(100)) {
		t.Errorf("2010/11 market income = %v, want %v", m, GBP(100))
	}
	if got, want := first.Tax().Summary(MarketTotal).Amount, GBP(100); !got.Equal(want) {
		t.Errorf("2010/11 tax market = %v, want %v", got, want)
	}
	if _, ok := first.Income().Account(shop); ok {
		t.Errorf("deleted transaction was processed")
	}

	last := c.Last()
	fundBucket, _ := last.Assets().Account(fund)
	if got, want := fundBucket.PriorAmount, GBP(600); !got.Equal(want) {
		t.Errorf("2011/12 Fund.PriorAmount = %v, want %v", got, want)
	}
	if got, want := fundBucket.Market, GBP(-50); !got.Equal(want) {
		t.Errorf("2011/12 Fund.Market = %v, want %v", got, want)
	}
	bankBucket, _ := last.Assets().Account(bank)
	if got, want := bankBucket.Amount, GBP(300); !got.Equal(want) {
		t.Errorf("2011/12 Bank.Amount = %v, want %v", got, want)
	}
	acme, ok := last.Income().Account(employer)
	if !ok || !acme.PriorIncome.Equal(GBP(1000)) || !acme.Income.IsZero() {
		t.Errorf("2011/12 Acme = %+v, want prior income %v", acme, GBP(1000))
	}
	if got, want := last.Tax().Summary(MarketTotal).Amount, GBP(-50); !got.Equal(want) {
		t.Errorf("2011/12 tax market = %v, want %v", got, want)
	}

	prev, ok := c.Previous(last)
	if !ok || prev != first {
		t.Errorf("Previous() = %v, want %v", prev, first)
	}
}

func TestReportSetChain_SeedingMatchesClosing(t *testing.T) {
	c := testChain(t, nil,
		tx("2010-05-01", Salary, 1000, employer, bank),
		buy("2010-06-01", 500, 10),
		tx("2010-07-01", Expense, 20, bank, shop),
		tx("2011-05-01", Transfer, 10, bank, savings),
	)
	first, last := c.sets[0], c.sets[1]
	for b := range first.Assets().Details() {
		n, ok := last.Assets().Account(b.Account)
		if !ok {
			t.Errorf("%s was not carried forward", b.Account)
			continue
		}
		if !n.PriorAmount.Equal(b.Amount) || !n.PriorUnits.Equal(b.Units) {
			t.Errorf("%s prior = %v/%v, want %v/%v", b.Account, n.PriorAmount, n.PriorUnits, b.Amount, b.Units)
		}
	}
	for b := range first.Income().Details() {
		n, ok := last.Income().Account(b.Account)
		if !ok {
			t.Errorf("%s was not carried forward", b.Account)
			continue
		}
		if !n.PriorIncome.Equal(b.Income) || !n.PriorExpense.Equal(b.Expense) {
			t.Errorf("%s prior = %v/%v, want %v/%v", b.Account, n.PriorIncome, n.PriorExpense, b.Income, b.Expense)
		}
	}
}

func TestReportSetChain_Activity(t *testing.T) {
	c := testChain(t, nil,
		tx("2010-05-01", Salary, 1000, employer, bank),
		tx("2011-05-01", Expense, 200, bank, shop),
	)
	got, ok := c.Activity("Bank")
	want := Activity{First: date.MustParse("2010-05-01"), Last: date.MustParse("2011-05-01")}
	if !ok || got != want {
		t.Errorf("Activity(Bank) = %v, want %v", got, want)
	}
	if _, ok := c.Activity("Fund"); ok {
		t.Errorf("Activity(Fund) found, want none")
	}
	var names []string
	for n := range c.ActiveAccounts() {
		names = append(names, n)
	}
	if diff := cmp.Diff([]string{"Acme", "Bank", "Shop"}, names); diff != "" {
		t.Errorf("ActiveAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestReportSetChain_OutsideTaxYears(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	c := testChain(t, &log,
		tx("2010-05-01", Salary, 1000, employer, bank),
		tx("2015-05-01", Salary, 1000, employer, bank),
	)
	if got, want := c.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if !strings.Contains(buf.String(), "transaction ignored") {
		t.Errorf("log = %q, want a warning", buf.String())
	}
}

func TestReportSetChain_Empty(t *testing.T) {
	c := testChain(t, nil)
	if c.Last() != nil || c.Len() != 0 {
		t.Errorf("empty ledger produced %d report sets", c.Len())
	}
}

func TestReportSet_ClosedRejectsTransactions(t *testing.T) {
	c := testChain(t, nil, tx("2010-05-01", Salary, 1000, employer, bank))
	s := c.Last()
	defer func() {
		if recover() == nil {
			t.Errorf("ProcessTransaction() on a closed set did not panic")
		}
	}()
	s.ProcessTransaction(tx("2010-06-01", Salary, 1000, employer, bank))
}

func TestReportSet_MarketMovementsForwardedOnce(t *testing.T) {
	c := testChain(t, nil,
		tx("2010-05-01", Salary, 1000, employer, bank),
		buy("2010-06-01", 500, 10),
	)
	s := c.Last()
	s.Assets().Total()
	s.Close()
	if got, want := s.Tax().Summary(MarketTotal).Amount, GBP(100); !got.Equal(want) {
		t.Errorf("tax market = %v, want %v", got, want)
	}
	m, ok := s.Income().Account(testAccounts().Market())
	if !ok || !m.Income.Equal(GBP(100)) {
		t.Errorf("market income = %v, want %v", m, GBP(100))
	}
}
