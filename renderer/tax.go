package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxbook"
)

// TaxMarkdown renders the income tax computation of a year.
func TaxMarkdown(r *taxbook.TaxReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Income Tax %s\n\n", r.Year().Label())
	renderTax(&b, r)
	return b.String()
}

func renderTax(w io.Writer, r *taxbook.TaxReport) {
	ConditionalBlock(w, func(w io.Writer) bool { return renderCategories(w, r) })
	renderAllowances(w, r)
	ConditionalBlock(w, func(w io.Writer) bool { return renderBands(w, r) })
	ConditionalBlock(w, func(w io.Writer) bool { return renderChargeableGains(w, r.ChargeableGains()) })

	fmt.Fprintf(w, "Tax due: %s, tax paid: %s, balance: %s\n\n",
		r.Total().Taxation, r.Summary(taxbook.TaxPaidTotal).Amount, r.Static(taxbook.StaticTaxProfit).SignedString())
}

func renderCategories(w io.Writer, r *taxbook.TaxReport) bool {
	fmt.Fprint(w, "## Categories\n\n")
	fmt.Fprintln(w, "| Category | Amount | Tax Credit | Gross |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|")
	printed := false
	for c := range r.Categories() {
		switch c.Kind() {
		case taxbook.Detail:
			row(w, c.Name(), money(c.Amount), money(c.TaxCredit), money(c.Gross()))
		case taxbook.Summary:
			row(w, bold(c.Name()), money(c.Amount), money(c.TaxCredit), bold(money(c.Gross())))
		default:
			continue
		}
		printed = true
	}
	fmt.Fprintln(w)
	return printed
}

func renderAllowances(w io.Writer, r *taxbook.TaxReport) {
	fmt.Fprint(w, "## Allowances\n\n")
	fmt.Fprintf(w, "- Gross income: %s\n", r.Static(taxbook.StaticGrossIncome))
	fmt.Fprintf(w, "- Personal allowance: %s\n", r.Static(taxbook.StaticOriginalAllowance))
	if adj := r.Static(taxbook.StaticAdjustedAllowance); !adj.Equal(r.Static(taxbook.StaticOriginalAllowance)) {
		fmt.Fprintf(w, "- Adjusted allowance: %s\n", adj)
	}
	if r.AgeTaper() {
		fmt.Fprintln(w, "- Age allowance tapered")
	}
	if hi := r.Static(taxbook.StaticHiTaxBand); !hi.IsZero() {
		fmt.Fprintf(w, "- Higher rate threshold: %s\n", hi)
	}
	fmt.Fprintln(w)
}

// renderBands writes each band under the income it taxes.
func renderBands(w io.Writer, r *taxbook.TaxReport) bool {
	fmt.Fprint(w, "## Tax Bands\n\n")
	fmt.Fprintln(w, "| Band | Amount | Rate | Tax |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|")

	children := make(map[int][]*taxbook.TaxBandBucket)
	var parents []*taxbook.TaxBandBucket
	for b := range r.Bands() {
		switch b.Kind() {
		case taxbook.Detail:
			children[b.Parent] = append(children[b.Parent], b)
		case taxbook.Summary:
			parents = append(parents, b)
		}
	}
	printed := false
	for _, p := range parents {
		for _, b := range children[p.ID()] {
			row(w, b.Name(), money(b.Amount), b.Rate.String(), money(b.Taxation))
			printed = true
		}
		row(w, bold(p.Name()), bold(money(p.Amount)), "", bold(money(p.Taxation)))
	}
	t := r.Total()
	row(w, bold("Total"), bold(money(t.Amount)), "", bold(money(t.Taxation)))
	fmt.Fprintln(w)
	return printed
}

func renderChargeableGains(w io.Writer, c *taxbook.ChargeableEvents) bool {
	if c.Len() == 0 {
		return false
	}
	fmt.Fprint(w, "## Chargeable Gains\n\n")
	fmt.Fprintln(w, "| Date | Description | Gain | Years | Slice | Tax |")
	fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
	for g := range c.All() {
		row(w, g.Date.String(), g.Description, money(g.Gross), fmt.Sprint(g.Years), money(g.Slice), money(g.Taxation))
	}
	row(w, bold("Total"), "", bold(money(c.GainsTotal())), "", money(c.SliceTotal()), bold(money(c.TaxTotal())))
	fmt.Fprintln(w)
	return true
}
