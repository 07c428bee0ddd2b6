// Package cmd implements the CLI application to report on a tax book.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/taxbook"
	"github.com/etnz/taxbook/date"
	"github.com/etnz/taxbook/logger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "reports")
	}
	for _, cmd := range BookCommands {
		c.Register(cmd, "book")
	}
}

// Commands are the report subcommands.
var Commands = []subcommands.Command{
	&yearsCmd{},
	&reportCmd{},
	&reportSectionCmd{section: "assets"},
	&reportSectionCmd{section: "income"},
	&reportSectionCmd{section: "tax"},
	&valueCmd{},
	&accountsCmd{},
}

// BookCommands are the subcommands working on the book files.
var BookCommands = []subcommands.Command{
	&checkCmd{},
	&formatLedgerCmd{},
	&topicCmd{},
}

// Known reports whether name is a builtin subcommand.
func Known(name string) bool {
	for _, list := range [][]subcommands.Command{Commands, BookCommands} {
		for _, c := range list {
			if c.Name() == name {
				return true
			}
		}
	}
	switch name {
	case "help", "flags", "commands":
		return true
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookPath = flag.String("book", ".", "Path to the book folder containing accounts, transactions, market and tax files")
var Verbose = flag.Bool("v", false, "Log the computation details on stderr")
var raw = flag.Bool("raw", false, "Print reports as plain markdown, without terminal styling")

// LoadBook loads the book from the app book folder.
func LoadBook() (*taxbook.Book, error) {
	return taxbook.LoadBook(*bookPath)
}

// loadChain loads the book and computes all its tax years, logging with
// the context logger.
func loadChain(ctx context.Context) (*taxbook.Book, *taxbook.ReportSetChain, error) {
	book, err := LoadBook()
	if err != nil {
		return nil, nil, err
	}
	log := logger.FromContext(ctx)
	return book, book.Chain(&log), nil
}

// selectYear finds the tax year named by a label like "2010/11", or
// containing a date. An empty selector is the last year.
func selectYear(c *taxbook.ReportSetChain, selector string) (*taxbook.ReportSet, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("the book has no transaction in any tax year")
	}
	if selector == "" {
		return c.Last(), nil
	}
	for s := range c.Years() {
		if s.Label() == selector {
			return s, nil
		}
	}
	day, err := date.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a tax year label nor a date", selector)
	}
	s, ok := c.Find(day)
	if !ok {
		return nil, fmt.Errorf("no tax year contains %s", day)
	}
	return s, nil
}

// printMarkdown prints md to stdout, styled for the terminal unless -raw is set.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail reports err on stderr.
func fail(msg string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", msg, err)
	return subcommands.ExitFailure
}
