// Package renderer writes the reports of a tax book as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxbook"
)

// ReportMarkdown renders the three reports of a tax year.
func ReportMarkdown(s *taxbook.ReportSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tax Year %s\n\n", s.Label())
	fmt.Fprintf(&b, "Period: %s to %s\n\n", s.Year().Range().From, s.Date())

	fmt.Fprintf(&b, "## Assets on %s\n\n", s.Date())
	renderAssets(&b, s.Assets())

	fmt.Fprint(&b, "## Income and Expenses\n\n")
	renderIncome(&b, s.Income())

	renderTax(&b, s.Tax())
	return b.String()
}

// YearsMarkdown renders one line per tax year of the chain.
func YearsMarkdown(c *taxbook.ReportSetChain) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Tax Years\n\n")
	fmt.Fprintln(&b, "| Year | Assets | Change | Net Income | Tax Due | Balance |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for s := range c.Years() {
		assets := s.Assets().Total()
		tax := s.Tax()
		row(&b, s.Label(), money(assets.Amount), assets.Change().SignedString(),
			s.Income().Total().Net().SignedString(), money(tax.Total().Taxation),
			tax.Static(taxbook.StaticTaxProfit).SignedString())
	}
	return b.String()
}

// ActivityMarkdown renders the accounts used by the ledger with the dates
// they were first and last used.
func ActivityMarkdown(c *taxbook.ReportSetChain, accounts taxbook.AccountDirectory) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Accounts\n\n")
	fmt.Fprintln(&b, "| Account | Type | First | Last |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|")
	for name := range c.ActiveAccounts() {
		act, _ := c.Activity(name)
		typ := ""
		if a, ok := accounts.Account(name); ok {
			typ = a.Type.String()
		}
		row(&b, name, typ, act.First.String(), act.Last.String())
	}
	return b.String()
}
