package taxbook

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Files of a book folder.
const (
	AccountsFile     = "accounts.jsonl"
	TransactionsFile = "transactions.jsonl"
	MarketFile       = "market.jsonl"
	TaxFile          = "tax.yaml"
)

// Book is everything read from a book folder.
type Book struct {
	Accounts *Accounts
	Ledger   *Ledger
	Market   *MarketData
	Tax      *TaxConfig
}

// LoadBook reads a book folder. The market file is optional.
func LoadBook(path string) (*Book, error) {
	b := new(Book)
	var err error
	if b.Accounts, err = loadFile(path, AccountsFile, DecodeAccounts); err != nil {
		return nil, err
	}
	if b.Ledger, err = loadFile(path, TransactionsFile, func(r io.Reader) (*Ledger, error) {
		return DecodeLedger(r, b.Accounts)
	}); err != nil {
		return nil, err
	}
	if b.Tax, err = loadFile(path, TaxFile, DecodeTaxConfig); err != nil {
		return nil, err
	}
	b.Market, err = loadFile(path, MarketFile, DecodeMarketData)
	if errors.Is(err, fs.ErrNotExist) {
		b.Market, err = NewMarketData(), nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// loadFile opens and decodes a file of the book folder.
func loadFile[T any](path, name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	fullPath := filepath.Join(path, name)
	f, err := os.Open(fullPath)
	if err != nil {
		return zero, fmt.Errorf("could not open %q: %w", fullPath, err)
	}
	defer f.Close()
	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("could not decode %q: %w", fullPath, err)
	}
	return v, nil
}

// Validate checks the ledger against accounts and tax years, and the
// market prices currency.
func (b *Book) Validate() error {
	errs := b.Ledger.Validate(b.Accounts)
	for t := range b.Ledger.InDateOrder() {
		if _, ok := b.Tax.TaxYears.RangeContaining(t.Date); !ok {
			errs = errors.Join(errs, fmt.Errorf("%w for %s", ErrNoTaxYear, t))
		}
	}
	if b.Market != nil {
		for _, name := range sortedKeys(b.Market.prices) {
			for day, p := range b.Market.prices[name].Values() {
				if _, err := parseCurrency(p.Currency()); err != nil {
					errs = errors.Join(errs, fmt.Errorf("price of %s on %s: %w", name, day, err))
					break
				}
			}
		}
	}
	return errs
}

// Inputs returns the book as report inputs.
func (b *Book) Inputs(log *zerolog.Logger) Inputs {
	return Inputs{
		Ledger:   b.Ledger,
		Accounts: b.Accounts,
		TaxYears: b.Tax.TaxYears,
		Prices:   b.Market,
		Rates:    b.Market,
		TaxPayer: b.Tax.Profile,
		Logger:   log,
	}
}

// Chain computes the reports of every tax year of the book.
func (b *Book) Chain(log *zerolog.Logger) *ReportSetChain {
	return NewReportSetChain(b.Inputs(log))
}
