package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxbook"
	"github.com/etnz/taxbook/date"
	"github.com/etnz/taxbook/renderer"
	"github.com/google/subcommands"
)

// yearsCmd lists the tax years of the book.
type yearsCmd struct{}

func (*yearsCmd) Name() string     { return "years" }
func (*yearsCmd) Synopsis() string { return "list the tax years of the book" }
func (*yearsCmd) Usage() string {
	return `tb years

  Lists every tax year with transactions, its assets, net income and tax due.
`
}

func (*yearsCmd) SetFlags(f *flag.FlagSet) {}

func (*yearsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, chain, err := loadChain(ctx)
	if err != nil {
		return fail("loading book", err)
	}
	printMarkdown(renderer.YearsMarkdown(chain))
	return subcommands.ExitSuccess
}

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the assets, income and tax of a tax year" }
func (*reportCmd) Usage() string {
	return `tb report [-y <year>]

  Displays the full report of a tax year. The year is a label like 2010/11 or
  any date within it. Defaults to the last year.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Tax year label (2010/11) or a date within the year. Defaults to the last year.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, chain, err := loadChain(ctx)
	if err != nil {
		return fail("loading book", err)
	}
	set, err := selectYear(chain, c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting year: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.ReportMarkdown(set))
	return subcommands.ExitSuccess
}

// reportSectionCmd displays one report of a tax year.
type reportSectionCmd struct {
	section string
	year    string
}

func (c *reportSectionCmd) Name() string { return c.section }
func (c *reportSectionCmd) Synopsis() string {
	return fmt.Sprintf("display the %s report of a tax year", c.section)
}
func (c *reportSectionCmd) Usage() string {
	return fmt.Sprintf(`tb %s [-y <year>]

  Displays the %s report of a tax year. Defaults to the last year.
`, c.section, c.section)
}

func (c *reportSectionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Tax year label (2010/11) or a date within the year. Defaults to the last year.")
}

func (c *reportSectionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, chain, err := loadChain(ctx)
	if err != nil {
		return fail("loading book", err)
	}
	set, err := selectYear(chain, c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting year: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(c.render(set))
	return subcommands.ExitSuccess
}

func (c *reportSectionCmd) render(set *taxbook.ReportSet) string {
	switch c.section {
	case "assets":
		return renderer.AssetsMarkdown(set.Assets())
	case "income":
		return renderer.IncomeMarkdown(set.Income())
	default:
		return renderer.TaxMarkdown(set.Tax())
	}
}

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	date string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the market value of the priced assets" }
func (*valueCmd) Usage() string {
	return `tb value [-d <date>]

  Displays the units, price and value of every priced asset on a date.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the valuation.")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	book, err := LoadBook()
	if err != nil {
		return fail("loading book", err)
	}
	v := taxbook.NewValuation(book.Ledger, book.Market, book.Market, on)
	printMarkdown(renderer.ValuationMarkdown(v))
	return subcommands.ExitSuccess
}

// accountsCmd lists the accounts used by the ledger.
type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts with their first and last transaction" }
func (*accountsCmd) Usage() string {
	return `tb accounts

  Lists every account used by a transaction, with the dates it was first and last used.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, chain, err := loadChain(ctx)
	if err != nil {
		return fail("loading book", err)
	}
	printMarkdown(renderer.ActivityMarkdown(chain, book.Accounts))
	return subcommands.ExitSuccess
}
