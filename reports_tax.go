package taxbook

import (
	"fmt"
	"iter"

	"github.com/etnz/taxbook/date"
)

// TaxSummary names the Summary buckets built from transaction categories.
type TaxSummary int

const (
	GrossSalary TaxSummary = iota
	GrossRental
	GrossInterest
	GrossDividend
	GrossUnitTrustDividend
	GrossTaxableGain
	GrossCapitalGain
	TaxFreeTotal
	MarketTotal
	ExpenseTotal
	TaxPaidTotal
	Profit
	CoreProfit
)

var taxSummaryNames = [...]string{
	GrossSalary:            "GrossSalary",
	GrossRental:            "GrossRental",
	GrossInterest:          "GrossInterest",
	GrossDividend:          "GrossDividend",
	GrossUnitTrustDividend: "GrossUnitTrustDividend",
	GrossTaxableGain:       "GrossTaxableGain",
	GrossCapitalGain:       "GrossCapitalGain",
	TaxFreeTotal:           "TaxFree",
	MarketTotal:            "Market",
	ExpenseTotal:           "Expense",
	TaxPaidTotal:           "TaxPaid",
	Profit:                 "Profit",
	CoreProfit:             "CoreProfit",
}

func (s TaxSummary) String() string {
	if s < 0 || int(s) >= len(taxSummaryNames) {
		return fmt.Sprintf("TaxSummary(%d)", int(s))
	}
	return taxSummaryNames[s]
}

// part selects which value of a category bucket contributes to a summary.
type part int

const (
	grossPart  part = iota // amount and tax credit
	amountPart             // amount only
	creditPart             // tax credit only
)

type contribution struct {
	to   TaxSummary
	sign int
	part part
}

// categoryTable is how each category contributes to the summaries.
var categoryTable = map[Category][]contribution{
	Salary:            {{GrossSalary, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	BenefitInKind:     {{GrossSalary, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	Rental:            {{GrossRental, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	Interest:          {{GrossInterest, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	Dividend:          {{GrossDividend, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	UnitTrustDividend: {{GrossUnitTrustDividend, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	TaxableGain:       {{GrossTaxableGain, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	CapitalGain:       {{GrossCapitalGain, 1, grossPart}, {TaxPaidTotal, 1, creditPart}},
	TaxPaid:           {{TaxPaidTotal, 1, amountPart}},
	TaxRefund:         {{TaxPaidTotal, -1, amountPart}},
	TaxFreeInterest:   {{TaxFreeTotal, 1, amountPart}},
	TaxFreeDividend:   {{TaxFreeTotal, 1, amountPart}},
	TaxFreeIncome:     {{TaxFreeTotal, 1, amountPart}},
	MarketGrowth:      {{MarketTotal, 1, amountPart}},
	MarketShrink:      {{MarketTotal, -1, amountPart}},
	Expense:           {{ExpenseTotal, 1, amountPart}},
	WrittenOff:        {{ExpenseTotal, 1, amountPart}},
	Recovery:          {{ExpenseTotal, -1, amountPart}},
}

type summaryTerm struct {
	from TaxSummary
	sign int
}

// profitTable derives Profit and CoreProfit from the other summaries, in order.
var profitTable = []struct {
	to    TaxSummary
	terms []summaryTerm
}{
	{Profit, []summaryTerm{
		{GrossSalary, 1}, {GrossRental, 1}, {GrossInterest, 1}, {GrossDividend, 1},
		{GrossUnitTrustDividend, 1}, {GrossTaxableGain, 1}, {GrossCapitalGain, 1},
		{TaxFreeTotal, 1}, {MarketTotal, 1}, {ExpenseTotal, -1}, {TaxPaidTotal, -1},
	}},
	{CoreProfit, []summaryTerm{
		{Profit, 1}, {MarketTotal, -1}, {GrossTaxableGain, -1}, {GrossCapitalGain, -1},
	}},
}

// TaxCategoryBucket accumulates the transactions of one category (Detail),
// or a fixed combination of categories (Summary).
type TaxCategoryBucket struct {
	bucketKey
	Amount    Money
	TaxCredit Money
}

func newTaxCategoryBucket(id int, key Key) *TaxCategoryBucket {
	return &TaxCategoryBucket{bucketKey: bucketKey{id: id, key: key}}
}

func (b *TaxCategoryBucket) IsPriced() bool { return false }
func (b *TaxCategoryBucket) IsIdle() bool   { return b.Amount.IsZero() && b.TaxCredit.IsZero() }

// Gross returns the amount including the tax credit.
func (b *TaxCategoryBucket) Gross() Money { return b.Amount.Add(b.TaxCredit) }

// Static values recorded for presentation.
const (
	StaticGrossIncome       = "GrossIncome"
	StaticOriginalAllowance = "OriginalAllowance"
	StaticAdjustedAllowance = "AdjustedAllowance"
	StaticHiTaxBand         = "HiTaxBand"
	StaticTaxProfit         = "TaxProfit"
)

// bands holds what is left of each band while categories consume them.
type bands struct {
	allowance Money
	loBand    Money
	basicBand Money
	hiBand    Money
	hasHiBand bool
}

// TaxReport computes the income tax of one tax year.
type TaxReport struct {
	year  *TaxYear
	payer TaxPayer

	categories *BucketStore[*TaxCategoryBucket]
	bands      *BucketStore[*TaxBandBucket]
	gains      ChargeableEvents

	remaining bands
	ageTaper  bool
	totalled  bool
}

// NewTaxReport returns an empty report for the year.
func NewTaxReport(year *TaxYear, payer TaxPayer) *TaxReport {
	return &TaxReport{
		year:       year,
		payer:      payer,
		categories: NewBucketStore(newTaxCategoryBucket),
		bands:      NewBucketStore(newTaxBandBucket),
	}
}

// Year returns the parameters the report is computed with.
func (r *TaxReport) Year() *TaxYear { return r.year }

func (r *TaxReport) category(c Category) *TaxCategoryBucket {
	return r.categories.BucketFor(Detail, int(c), c.String())
}

func (r *TaxReport) summary(s TaxSummary) *TaxCategoryBucket {
	return r.categories.BucketFor(Summary, int(s), s.String())
}

func (r *TaxReport) static(order int, name string, amount Money) {
	r.categories.BucketFor(Static, order, name).Amount = amount
}

// ProcessTransaction books t in the bucket of its category.
func (r *TaxReport) ProcessTransaction(t *Transaction) {
	if t.Category == Transfer {
		return
	}
	b := r.category(t.Category)
	b.Amount = b.Amount.Add(t.Amount)
	b.TaxCredit = b.TaxCredit.Add(t.TaxCredit)
	if t.Category == TaxableGain {
		r.gains.Add(t)
	}
	r.totalled = false
}

// AddMarketMovement books the market movement of a valued asset as market
// growth or shrink.
func (r *TaxReport) AddMarketMovement(a *AssetBucket) {
	switch {
	case a.Market.IsPositive():
		b := r.category(MarketGrowth)
		b.Amount = b.Amount.Add(a.Market)
	case a.Market.IsNegative():
		b := r.category(MarketShrink)
		b.Amount = b.Amount.Sub(a.Market)
	}
	r.totalled = false
}

// ProduceTotals runs the tax computation. It is computed once.
func (r *TaxReport) ProduceTotals() {
	if r.totalled {
		return
	}
	r.totalled = true
	r.categories.Clear(Summary)
	r.categories.Clear(Static)
	r.bands = NewBucketStore(newTaxBandBucket)
	r.categories.PruneEmpty()

	r.analyseTransactions()
	gross := r.calculateGrossIncome()
	r.calculateAllowances(gross)
	r.processSalary()
	r.processRental()
	r.processInterest()
	r.processDividends()
	r.processTaxableGains()
	r.processCapitalGains()
	r.calculateTotals()
}

// analyseTransactions builds the Summary buckets from the category table.
func (r *TaxReport) analyseTransactions() {
	for s := GrossSalary; s <= CoreProfit; s++ {
		r.summary(s)
	}
	for c := Transfer; c <= WrittenOff; c++ {
		b, ok := r.categories.Find(Detail, int(c), c.String())
		if !ok {
			continue
		}
		for _, ct := range categoryTable[c] {
			s := r.summary(ct.to)
			switch ct.part {
			case grossPart:
				s.Amount = s.Amount.Add(b.Gross().Times(ct.sign))
				s.TaxCredit = s.TaxCredit.Add(b.TaxCredit.Times(ct.sign))
			case amountPart:
				s.Amount = s.Amount.Add(b.Amount.Times(ct.sign))
			case creditPart:
				s.Amount = s.Amount.Add(b.TaxCredit.Times(ct.sign))
			}
		}
	}
	for _, p := range profitTable {
		s := r.summary(p.to)
		for _, t := range p.terms {
			s.Amount = s.Amount.Add(r.summary(t.from).Amount.Times(t.sign))
		}
	}
}

// calculateGrossIncome returns the income the allowance tapers are tested on.
func (r *TaxReport) calculateGrossIncome() Money {
	y := r.year
	gain := r.summary(GrossTaxableGain)
	gross := r.summary(GrossSalary).Amount.
		Add(aboveAllowance(r.summary(GrossRental).Amount, y.RentalAllowance)).
		Add(r.summary(GrossInterest).Amount).
		Add(r.summary(GrossDividend).Amount).
		Add(r.summary(GrossUnitTrustDividend).Amount).
		Add(gain.Amount.Sub(gain.TaxCredit)).
		Add(aboveAllowance(r.summary(GrossCapitalGain).Amount, y.CapitalAllowance))
	r.static(0, StaticGrossIncome, gross)
	return gross
}

// aboveAllowance returns the part of amount above the allowance, or zero.
func aboveAllowance(amount, allowance Money) Money {
	if amount.GreaterThan(allowance) {
		return amount.Sub(allowance)
	}
	return Money{}
}

// calculateAllowances selects and tapers the personal allowance, and sets
// the bands available to the category passes.
func (r *TaxReport) calculateAllowances(gross Money) {
	y := r.year
	age := 0
	if r.payer != nil && !r.payer.BirthDate().IsZero() {
		age = date.Age(r.payer.BirthDate(), y.End)
	}

	allowance, isAge := y.Allowance, false
	switch {
	case age >= HiAgeLimit && !y.HiAgeAllowance.IsZero():
		allowance, isAge = y.HiAgeAllowance, true
	case age >= LoAgeLimit && !y.LoAgeAllowance.IsZero():
		allowance, isAge = y.LoAgeAllowance, true
	}
	original := allowance

	r.ageTaper = false
	if isAge && gross.GreaterThan(y.AgeAllowanceLimit) {
		// £1 lost per £2 above the limit, never below the standard allowance.
		allowance = allowance.Sub(gross.Sub(y.AgeAllowanceLimit).Half()).Max(y.Allowance)
		r.ageTaper = true
	}

	r.remaining = bands{
		loBand:    y.LoBand,
		basicBand: y.BasicBand,
	}
	if y.Regime.AdditionalBand {
		r.remaining.hasHiBand = true
		r.remaining.hiBand = y.AddIncomeBoundary.Sub(y.BasicBand).Max(Money{})
		if gross.GreaterThan(y.AddAllowanceLimit) {
			allowance = allowance.Sub(gross.Sub(y.AddAllowanceLimit).Half()).Max(Money{})
		}
		r.static(3, StaticHiTaxBand, r.remaining.hiBand)
	}
	r.remaining.allowance = allowance

	r.static(1, StaticOriginalAllowance, original)
	r.static(2, StaticAdjustedAllowance, allowance)
}

// calculateTotals sums the category results into the Total bucket.
func (r *TaxReport) calculateTotals() {
	total := r.bandFor(TotalTax)
	for b := range r.bands.OfKind(Summary) {
		total.Amount = total.Amount.Add(b.Amount)
		total.Taxation = total.Taxation.Add(b.Taxation)
	}
	r.static(4, StaticTaxProfit, total.Taxation.Sub(r.summary(TaxPaidTotal).Amount))
}

// AgeTaper reports whether the age allowance was tapered.
func (r *TaxReport) AgeTaper() bool {
	r.ProduceTotals()
	return r.ageTaper
}

// Category returns the Detail bucket of a category, zero if unused.
func (r *TaxReport) Category(c Category) *TaxCategoryBucket {
	r.ProduceTotals()
	if b, ok := r.categories.Find(Detail, int(c), c.String()); ok {
		return b
	}
	return newTaxCategoryBucket(NoParent, Key{Detail, int(c), c.String()})
}

// Summary returns a Summary bucket.
func (r *TaxReport) Summary(s TaxSummary) *TaxCategoryBucket {
	r.ProduceTotals()
	return r.summary(s)
}

// Static returns a presentation value, zero if it was not recorded.
func (r *TaxReport) Static(name string) Money {
	r.ProduceTotals()
	for b := range r.categories.OfKind(Static) {
		if b.Name() == name {
			return b.Amount
		}
	}
	return Money{}
}

// Categories iterates over category buckets: Detail, then Summary, then Static.
func (r *TaxReport) Categories() iter.Seq[*TaxCategoryBucket] {
	r.ProduceTotals()
	return r.categories.All()
}

// Bands iterates over band buckets: Detail, then Summary, then Total.
func (r *TaxReport) Bands() iter.Seq[*TaxBandBucket] {
	r.ProduceTotals()
	return r.bands.All()
}

// Band returns a band bucket, if the band was used.
func (r *TaxReport) Band(b TaxBand) (*TaxBandBucket, bool) {
	r.ProduceTotals()
	return r.bands.Find(b.Kind(), b.Order(), b.String())
}

// Parent returns the category Summary a band Detail bucket belongs to.
func (r *TaxReport) Parent(b *TaxBandBucket) (*TaxBandBucket, bool) {
	r.ProduceTotals()
	if b.Parent == NoParent {
		return nil, false
	}
	return r.bands.ByID(b.Parent)
}

// Total returns the total tax bucket.
func (r *TaxReport) Total() *TaxBandBucket {
	r.ProduceTotals()
	return r.bandFor(TotalTax)
}

// ChargeableGains returns the chargeable events of the year.
func (r *TaxReport) ChargeableGains() *ChargeableEvents {
	r.ProduceTotals()
	return &r.gains
}
