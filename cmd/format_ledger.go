package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/taxbook"
	"github.com/google/subcommands"
)

type formatLedgerCmd struct{}

func (*formatLedgerCmd) Name() string     { return "format" }
func (*formatLedgerCmd) Synopsis() string { return "formats the book files into a canonical form" }
func (*formatLedgerCmd) Usage() string {
	return `format:
  rewrites the accounts, transactions and market files of the book sorted,
  one record per line, in a canonical form.
`
}

func (p *formatLedgerCmd) SetFlags(f *flag.FlagSet) {}

func (p *formatLedgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// 1. Read the book
	book, err := LoadBook()
	if err != nil {
		return fail("loading book", err)
	}

	// 2. Write the files back in place
	if err := encodeFile(taxbook.AccountsFile, func(w io.Writer) error { return taxbook.EncodeAccounts(w, book.Accounts) }); err != nil {
		return fail("encoding accounts", err)
	}
	if err := encodeFile(taxbook.TransactionsFile, func(w io.Writer) error { return taxbook.EncodeLedger(w, book.Ledger) }); err != nil {
		return fail("encoding ledger", err)
	}
	if len(book.Market.Accounts()) > 0 {
		if err := encodeFile(taxbook.MarketFile, func(w io.Writer) error { return taxbook.EncodeMarketData(w, book.Market) }); err != nil {
			return fail("encoding market data", err)
		}
	}

	fmt.Printf("Book folder '%s' has been formatted.\n", *bookPath)
	return subcommands.ExitSuccess
}

// encodeFile replaces a file of the app book folder.
func encodeFile(name string, encode func(io.Writer) error) error {
	path := filepath.Join(*bookPath, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %q: %w", path, err)
	}
	return nil
}
