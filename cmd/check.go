package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxbook/logger"
	"github.com/google/subcommands"
)

// checkCmd validates the book files.
type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check the book for errors" }
func (*checkCmd) Usage() string {
	return `tb check

  Checks that every transaction uses declared accounts and falls in a
  declared tax year.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail("loading book", err)
	}
	if err := book.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Book is invalid:\n%v\n", err)
		return subcommands.ExitFailure
	}
	log := logger.FromContext(ctx)
	chain := book.Chain(&log)
	fmt.Printf("Book is valid: %d transactions over %d tax years.\n", book.Ledger.Len(), chain.Len())
	return subcommands.ExitSuccess
}
