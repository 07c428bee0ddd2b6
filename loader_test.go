package taxbook

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/taxbook/date"
)

func writeBook(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadBook(t *testing.T) {
	dir := writeBook(t, map[string]string{
		AccountsFile: accountsJSONL,
		TransactionsFile: `{"date":"2010-05-01","category":"salary","from":"Acme","to":"Bank","amount":1000}
{"date":"2011-05-01","category":"transfer","from":"Bank","to":"Fund","amount":500,"units":5}
`,
		MarketFile: `{"date":"2012-04-01","account":"Fund","price":110}`,
		TaxFile: `years:
  - end: 2011-04-05
    allowance: 6475
  - end: 2012-04-05
    allowance: 7475
`,
	})

	book, err := LoadBook(dir)
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	if err := book.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	c := book.Chain(nil)
	if got, want := c.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := c.Last().Assets().Total().Amount, GBP(1050); !got.Equal(want) {
		t.Errorf("last Total().Amount = %v, want %v", got, want)
	}
}

func TestLoadBook_NoMarket(t *testing.T) {
	dir := writeBook(t, map[string]string{
		AccountsFile:     accountsJSONL,
		TransactionsFile: "",
		TaxFile:          "years: []\n",
	})
	book, err := LoadBook(dir)
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	if book.Market == nil {
		t.Errorf("Market = nil, want an empty market")
	}
}

func TestLoadBook_Missing(t *testing.T) {
	_, err := LoadBook(t.TempDir())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadBook() error = %v, want %v", err, fs.ErrNotExist)
	}
}

func TestBook_ValidateOutsideTaxYears(t *testing.T) {
	dir := writeBook(t, map[string]string{
		AccountsFile:     accountsJSONL,
		TransactionsFile: `{"date":"2010-05-01","category":"salary","from":"Acme","to":"Bank","amount":1000}`,
		TaxFile:          "years: []\n",
	})
	book, err := LoadBook(dir)
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	if err := book.Validate(); !errors.Is(err, ErrNoTaxYear) {
		t.Errorf("Validate() error = %v, want %v", err, ErrNoTaxYear)
	}
}

func TestBook_ValidateCurrency(t *testing.T) {
	fund := NewAccount("Fund", Shares)
	bank := NewAccount("Bank", Current)
	buy := &Transaction{Date: date.MustParse("2010-06-01"), Amount: GBP(500), Units: U(10), Debit: bank, Credit: fund, Category: Transfer}
	tests := []struct {
		name   string
		ledger *Ledger
		market *MarketData
	}{
		{"foreign price", NewLedger(buy), NewMarketData().SetPrice("Fund", date.MustParse("2011-04-01"), P(60, "USD"))},
		{"foreign amount", NewLedger(&Transaction{Date: date.MustParse("2010-06-01"), Amount: M(500, "EUR"), Debit: bank, Credit: fund, Category: Transfer}), NewMarketData()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := &Book{
				Accounts: NewAccounts(fund, bank),
				Ledger:   tt.ledger,
				Market:   tt.market,
				Tax:      &TaxConfig{TaxYears: NewTaxYears(&TaxYear{End: date.MustParse("2011-04-05")})},
			}
			if err := book.Validate(); !errors.Is(err, ErrCurrency) {
				t.Errorf("Validate() error = %v, want %v", err, ErrCurrency)
			}
		})
	}
}
