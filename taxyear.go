package taxbook

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/taxbook/date"
)

var (
	// ErrNoTaxYear is returned when a date falls outside every tax year.
	ErrNoTaxYear = errors.New("no tax year")
	// ErrTaxYearGap is returned when tax years are not contiguous.
	ErrTaxYearGap = errors.New("tax years are not contiguous")
)

// Regime holds the structural features of a tax year.
type Regime struct {
	LoBand               bool // a low rate band applies to non savings income
	AdditionalBand       bool // an additional rate band sits above the high band
	CapitalGainsAsIncome bool // capital gains are banded with income
}

// TaxYear holds the parameters of one UK tax year, ending on 5 April.
type TaxYear struct {
	End    date.Date
	Regime Regime

	Allowance        Money
	RentalAllowance  Money
	CapitalAllowance Money
	LoBand           Money
	BasicBand        Money

	LoAgeAllowance    Money
	HiAgeAllowance    Money
	AgeAllowanceLimit Money

	AddAllowanceLimit Money
	AddIncomeBoundary Money

	LoTaxRate         Rate
	BasicTaxRate      Rate
	HiTaxRate         Rate
	IntTaxRate        Rate
	DivTaxRate        Rate
	HiDivTaxRate      Rate
	AddTaxRate        Rate
	AddDivTaxRate     Rate
	CapTaxRate        Rate
	HiCapTaxRate      Rate
}

// Range returns the days covered by the tax year.
func (y *TaxYear) Range() date.Range { return date.TaxYearEnding(y.End.Year()) }

// Label returns the "2010/11" name of the year.
func (y *TaxYear) Label() string { return y.Range().Label() }

// Ages at which the age allowances apply.
const (
	LoAgeLimit = 65
	HiAgeLimit = 75
)

// TaxYears is the ordered set of tax years.
type TaxYears struct {
	years []*TaxYear
}

// NewTaxYears returns the tax years sorted by date.
func NewTaxYears(years ...*TaxYear) *TaxYears {
	ys := slices.Clone(years)
	slices.SortStableFunc(ys, func(a, b *TaxYear) int { return a.End.Compare(b.End) })
	return &TaxYears{years: ys}
}

// RangeContaining returns the tax year covering d.
func (t *TaxYears) RangeContaining(d date.Date) (*TaxYear, bool) {
	i, found := slices.BinarySearchFunc(t.years, d, func(y *TaxYear, d date.Date) int { return y.End.Compare(d) })
	if found {
		return t.years[i], true
	}
	if i < len(t.years) && t.years[i].Range().Contains(d) {
		return t.years[i], true
	}
	return nil, false
}

// Range returns the span from the first day of the first year to the end of the last.
func (t *TaxYears) Range() date.Range {
	if len(t.years) == 0 {
		return date.Range{}
	}
	return date.NewRange(t.years[0].Range().From, t.years[len(t.years)-1].End)
}

// All returns the years in date order.
func (t *TaxYears) All() []*TaxYear { return slices.Clone(t.years) }

// Validate checks that years end on 5 April, are distinct and contiguous.
func (t *TaxYears) Validate() error {
	var errs error
	for i, y := range t.years {
		if y.End.Month() != date.TaxYearEndMonth || y.End.Day() != date.TaxYearEndDay {
			errs = errors.Join(errs, fmt.Errorf("tax year ending %s does not end on 5 April", y.End))
		}
		if i > 0 && y.End.Year() != t.years[i-1].End.Year()+1 {
			errs = errors.Join(errs, fmt.Errorf("%w: %s follows %s", ErrTaxYearGap, y.End, t.years[i-1].End))
		}
	}
	return errs
}
