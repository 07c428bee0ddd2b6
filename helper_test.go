package taxbook

import (
	"time"

	"github.com/etnz/taxbook/date"
)

var (
	bank     = NewAccount("Bank", Current)
	savings  = NewAccount("Saver", Savings)
	fund     = NewAccount("Fund", Shares)
	employer = NewAccount("Acme", Employer)
	shop     = NewAccount("Shop", Payee)
	insurer  = NewAccount("Insurer", Payee)
	taxman   = NewAccount("HMRC", TaxAuthority)
	council  = NewAccount("Council", Benefit)
)

// testAccounts returns the directory of the test accounts.
func testAccounts() *Accounts {
	return NewAccounts(bank, savings, fund, employer, shop, insurer, taxman, council)
}

// tx is a helper for tests to create a transaction from consts.
func tx(day string, cat Category, amount float64, from, to *Account) *Transaction {
	return &Transaction{
		Date:     date.MustParse(day),
		Amount:   GBP(amount),
		Debit:    from,
		Credit:   to,
		Category: cat,
	}
}

// buy is a helper for tests to move money from bank into units of fund.
func buy(day string, amount, units float64) *Transaction {
	t := tx(day, Transfer, amount, bank, fund)
	t.Units = U(units)
	return t
}

// taxed sets the tax deducted at source.
func taxed(t *Transaction, credit float64) *Transaction {
	t.TaxCredit = GBP(credit)
	return t
}

// testYear returns a simple tax year ending on 5 April of end, with no low
// band and no additional band.
func testYear(end int) *TaxYear {
	return &TaxYear{
		End:              date.New(end, time.April, 5),
		Allowance:        GBP(6000),
		RentalAllowance:  GBP(1000),
		CapitalAllowance: GBP(10000),
		BasicBand:        GBP(30000),
		LoTaxRate:        Pct(10),
		BasicTaxRate:     Pct(20),
		HiTaxRate:        Pct(40),
		IntTaxRate:       Pct(20),
		DivTaxRate:       Pct(10),
		HiDivTaxRate:     Pct(32.5),
		AddTaxRate:       Pct(50),
		AddDivTaxRate:    Pct(42.5),
		CapTaxRate:       Pct(18),
	}
}

// newTestTaxReport returns a tax report of year with every transaction processed.
func newTestTaxReport(year *TaxYear, payer TaxPayer, txs ...*Transaction) *TaxReport {
	r := NewTaxReport(year, payer)
	for _, t := range txs {
		r.ProcessTransaction(t)
	}
	return r
}
