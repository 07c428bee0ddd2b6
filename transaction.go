package taxbook

import (
	"fmt"
	"strings"

	"github.com/etnz/taxbook/date"
)

// Category is the nature of a transaction, it drives the tax analysis.
type Category int

const (
	Transfer Category = iota
	Salary
	BenefitInKind
	Interest
	TaxFreeInterest
	Dividend
	TaxFreeDividend
	UnitTrustDividend
	Rental
	TaxableGain
	CapitalGain
	TaxFreeIncome
	Expense
	Recovery
	TaxPaid
	TaxRefund
	MarketGrowth
	MarketShrink
	WrittenOff
)

var categoryNames = [...]string{
	Transfer:          "transfer",
	Salary:            "salary",
	BenefitInKind:     "benefit",
	Interest:          "interest",
	TaxFreeInterest:   "taxfreeinterest",
	Dividend:          "dividend",
	TaxFreeDividend:   "taxfreedividend",
	UnitTrustDividend: "unittrustdividend",
	Rental:            "rental",
	TaxableGain:       "taxablegain",
	CapitalGain:       "capitalgain",
	TaxFreeIncome:     "taxfree",
	Expense:           "expense",
	Recovery:          "recovery",
	TaxPaid:           "taxpaid",
	TaxRefund:         "taxrefund",
	MarketGrowth:      "marketgrowth",
	MarketShrink:      "marketshrink",
	WrittenOff:        "writeoff",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transaction category %q", s)
}

// IsRecovery reports whether the category gives back a previous expense.
func (c Category) IsRecovery() bool { return c == Recovery }

// Transaction moves an amount from the Debit account to the Credit account.
//
// Transactions are immutable once handed to the reports.
type Transaction struct {
	Date        date.Date
	Description string
	Amount      Money
	Debit       *Account // account the value leaves
	Credit      *Account // account the value reaches
	Category    Category
	Units       Units // units moved, for priced accounts
	TaxCredit   Money // tax deducted at source
	Years       int   // years a taxable gain accrued over, for top slicing
	Deleted     bool
}

// Gross returns the amount before tax deducted at source.
func (t *Transaction) Gross() Money { return t.Amount.Add(t.TaxCredit) }

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %s->%s %v", t.Date, t.Category, t.Debit, t.Credit, t.Amount)
}
