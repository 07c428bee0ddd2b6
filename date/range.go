package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the range between from and to.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsZero returns true for the zero range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

func (r Range) String() string { return fmt.Sprintf("%s_%s", r.From, r.To) }

// UK tax years end on 5 April.
const (
	TaxYearEndMonth = time.April
	TaxYearEndDay   = 5
)

// TaxYearEnding returns the tax year ending on 5 April of year.
func TaxYearEnding(year int) Range {
	end := New(year, TaxYearEndMonth, TaxYearEndDay)
	return Range{From: New(year-1, TaxYearEndMonth, TaxYearEndDay+1), To: end}
}

// TaxYearOf returns the tax year that contains d.
func TaxYearOf(d Date) Range {
	r := TaxYearEnding(d.Year())
	if d.After(r.To) {
		return TaxYearEnding(d.Year() + 1)
	}
	return r
}

// Label returns the conventional "2010/11" name of a tax year range.
func (r Range) Label() string {
	return fmt.Sprintf("%d/%02d", r.From.Year(), r.To.Year()%100)
}
