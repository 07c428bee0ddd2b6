package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNormalize(t *testing.T) {
	if got, want := New(2011, time.February, 29), New(2011, time.March, 1); got != want {
		t.Errorf("New(2011-02-29) = %v, want %v", got, want)
	}
	if got, want := New(2012, time.February, 29).AddYears(1), New(2013, time.March, 1); got != want {
		t.Errorf("AddYears(1) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2010-4-5")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := d.String(), "2010-04-05"; got != want {
		t.Errorf("Parse().String() = %q, want %q", got, want)
	}
	if _, err := Parse("5/4/2010"); err == nil {
		t.Error("Parse(5/4/2010) should fail")
	}
}

func TestAge(t *testing.T) {
	birth := New(1945, time.April, 6)
	testCases := []struct {
		on   Date
		want int
	}{
		{New(2010, time.April, 5), 64},
		{New(2010, time.April, 6), 65},
		{New(2011, time.April, 5), 65},
		{New(2020, time.December, 31), 75},
	}
	for _, tc := range testCases {
		if got := Age(birth, tc.on); got != tc.want {
			t.Errorf("Age(%v, %v) = %d, want %d", birth, tc.on, got, tc.want)
		}
	}
}

func TestTaxYear(t *testing.T) {
	r := TaxYearEnding(2011)
	if got, want := r.From, New(2010, time.April, 6); got != want {
		t.Errorf("TaxYearEnding(2011).From = %v, want %v", got, want)
	}
	if got, want := r.Label(), "2010/11"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}

	testCases := []struct {
		on   Date
		want int
	}{
		{New(2010, time.April, 5), 2010},
		{New(2010, time.April, 6), 2011},
		{New(2010, time.December, 25), 2011},
		{New(2011, time.January, 1), 2011},
	}
	for _, tc := range testCases {
		if got := TaxYearOf(tc.on).To.Year(); got != tc.want {
			t.Errorf("TaxYearOf(%v) ends in %d, want %d", tc.on, got, tc.want)
		}
		if !TaxYearOf(tc.on).Contains(tc.on) {
			t.Errorf("TaxYearOf(%v) does not contain it", tc.on)
		}
	}
}
