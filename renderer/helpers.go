package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/taxbook"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// money formats m for a table cell, zero is a "-".
func money(m taxbook.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// bold wraps a non empty cell in strong emphasis.
func bold(s string) string {
	if s == "" || s == "-" {
		return s
	}
	return "**" + s + "**"
}

// row writes one markdown table row.
func row(w io.Writer, cells ...string) {
	for _, c := range cells {
		fmt.Fprintf(w, "| %s ", c)
	}
	fmt.Fprintln(w, "|")
}
