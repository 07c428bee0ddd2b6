package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxbook"
)

// IncomeMarkdown renders what each counterparty paid to, or received from,
// the owner over the year, next to the previous year.
func IncomeMarkdown(r *taxbook.IncomeReport) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Income and Expenses\n\n")
	renderIncome(&b, r)
	return b.String()
}

func renderIncome(w io.Writer, r *taxbook.IncomeReport) {
	fmt.Fprintln(w, "| Account | Income | Expense | Net | Last Year |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|---:|")
	for a := range r.Details() {
		row(w, a.Name(), money(a.Income), money(a.Expense), a.Net().SignedString(), a.PriorNet().SignedString())
	}
	t := r.Total()
	row(w, bold("Total"), bold(money(t.Income)), bold(money(t.Expense)), bold(t.Net().SignedString()), t.PriorNet().SignedString())
	fmt.Fprintln(w)
}
