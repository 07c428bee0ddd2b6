package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxbook"
)

// AssetsMarkdown renders the positions of an asset report: every account,
// then the account types and the total.
func AssetsMarkdown(r *taxbook.AssetReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Assets on %s\n\n", r.Date())
	renderAssets(&b, r)
	return b.String()
}

// ValuationMarkdown renders the value of the priced assets only.
func ValuationMarkdown(r *taxbook.AssetReport) string {
	var b strings.Builder
	m := r.MarketOnly()
	fmt.Fprintf(&b, "# Valuation on %s\n\n", r.Date())
	ConditionalBlock(&b, func(w io.Writer) bool { return renderPriced(w, m) })
	fmt.Fprintf(&b, "Total Market Value: %s\n", m.Total().Amount)
	return b.String()
}

func renderAssets(w io.Writer, r *taxbook.AssetReport) {
	fmt.Fprintln(w, "| Account | Type | Opening | Flow | Closing | Change |")
	fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
	for a := range r.Details() {
		row(w, a.Name(), a.Account.Type.String(), money(a.PriorAmount), money(a.Flow), money(a.Amount), a.Change().SignedString())
	}
	for a := range r.Summaries() {
		row(w, "", bold(a.Name()), money(a.PriorAmount), money(a.Flow), bold(money(a.Amount)), a.Change().SignedString())
	}
	t := r.Total()
	row(w, bold("Total"), "", money(t.PriorAmount), money(t.Flow), bold(money(t.Amount)), t.Change().SignedString())
	fmt.Fprintln(w)

	ConditionalBlock(w, func(w io.Writer) bool { return renderPriced(w, r) })
	ConditionalBlock(w, func(w io.Writer) bool { return renderRated(w, r) })
}

// renderPriced writes the market view of the priced accounts.
func renderPriced(w io.Writer, r *taxbook.AssetReport) bool {
	fmt.Fprint(w, "## Priced Assets\n\n")
	fmt.Fprintln(w, "| Account | Units | Price | Price Date | Value | Invested | Market |")
	fmt.Fprintln(w, "|:---|---:|---:|:---|---:|---:|---:|")
	printed := false
	for a := range r.Details() {
		if !a.IsPriced() {
			continue
		}
		printed = true
		if !a.HasPrice() {
			row(w, a.Name(), a.Units.String(), "n/a", "", "n/a", money(a.Adjustment), "n/a")
			continue
		}
		row(w, a.Name(), a.Units.String(), a.Price.String(), a.PriceDate.String(),
			money(a.Amount), money(a.Adjustment), a.Market.SignedString())
	}
	fmt.Fprintln(w)
	return printed
}

// renderRated writes the interest rate of savings and bonds.
func renderRated(w io.Writer, r *taxbook.AssetReport) bool {
	fmt.Fprint(w, "## Rates\n\n")
	fmt.Fprintln(w, "| Account | Rate | Until |")
	fmt.Fprintln(w, "|:---|---:|:---|")
	printed := false
	for a := range r.Details() {
		if a.Rate.IsZero() {
			continue
		}
		printed = true
		row(w, a.Name(), a.Rate.String(), a.RateDate.String())
	}
	fmt.Fprintln(w)
	return printed
}
