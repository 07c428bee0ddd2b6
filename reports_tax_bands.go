package taxbook

import "fmt"

// TaxBand names the buckets of the tax computation. Each category pass has
// a Summary band, and one Detail band per sub-band it used.
type TaxBand int

const (
	SalaryFree TaxBand = iota
	SalaryLo
	SalaryBasic
	SalaryHi
	SalaryAdd
	RentalAllowance
	RentalFree
	RentalLo
	RentalBasic
	RentalHi
	RentalAdd
	InterestFree
	InterestLo
	InterestBasic
	InterestHi
	InterestAdd
	DividendBasic
	DividendHi
	DividendAdd
	GainsBasic
	GainsHi
	GainsAdd
	GainsSlice
	CapitalFree
	CapitalBasic
	CapitalHi

	TaxSalary
	TaxRental
	TaxInterest
	TaxDividend
	TaxGains
	TaxCapital

	TotalTax
)

var taxBandNames = [...]string{
	SalaryFree:      "SalaryFree",
	SalaryLo:        "SalaryLo",
	SalaryBasic:     "SalaryBasic",
	SalaryHi:        "SalaryHi",
	SalaryAdd:       "SalaryAdd",
	RentalAllowance: "RentalAllowance",
	RentalFree:      "RentalFree",
	RentalLo:        "RentalLo",
	RentalBasic:     "RentalBasic",
	RentalHi:        "RentalHi",
	RentalAdd:       "RentalAdd",
	InterestFree:    "InterestFree",
	InterestLo:      "InterestLo",
	InterestBasic:   "InterestBasic",
	InterestHi:      "InterestHi",
	InterestAdd:     "InterestAdd",
	DividendBasic:   "DividendBasic",
	DividendHi:      "DividendHi",
	DividendAdd:     "DividendAdd",
	GainsBasic:      "GainsBasic",
	GainsHi:         "GainsHi",
	GainsAdd:        "GainsAdd",
	GainsSlice:      "GainsSlice",
	CapitalFree:     "CapitalFree",
	CapitalBasic:    "CapitalBasic",
	CapitalHi:       "CapitalHi",
	TaxSalary:       "TaxSalary",
	TaxRental:       "TaxRental",
	TaxInterest:     "TaxInterest",
	TaxDividend:     "TaxDividend",
	TaxGains:        "TaxGains",
	TaxCapital:      "TaxCapital",
	TotalTax:        "TotalTax",
}

func (b TaxBand) String() string {
	if b < 0 || int(b) >= len(taxBandNames) {
		return fmt.Sprintf("TaxBand(%d)", int(b))
	}
	return taxBandNames[b]
}

// Kind returns the kind of bucket the band is kept in.
func (b TaxBand) Kind() Kind {
	switch {
	case b == TotalTax:
		return Total
	case b >= TaxSalary:
		return Summary
	default:
		return Detail
	}
}

// Order returns the rank of the band within its kind.
func (b TaxBand) Order() int { return int(b) }

// TaxBandBucket is the slice of income taxed at one rate.
type TaxBandBucket struct {
	bucketKey
	Amount   Money
	Rate     Rate
	Taxation Money
	Parent   int // ID of the category Summary bucket, or NoParent
}

func newTaxBandBucket(id int, key Key) *TaxBandBucket {
	return &TaxBandBucket{bucketKey: bucketKey{id: id, key: key}, Parent: NoParent}
}

func (b *TaxBandBucket) IsPriced() bool { return false }
func (b *TaxBandBucket) IsIdle() bool   { return b.Amount.IsZero() && b.Taxation.IsZero() }

func (r *TaxReport) bandFor(b TaxBand) *TaxBandBucket {
	return r.bands.BucketFor(b.Kind(), b.Order(), b.String())
}

// bandPass consumes the remaining bands for one category of income.
type bandPass struct {
	r         *TaxReport
	parent    *TaxBandBucket
	remaining Money // income still to tax
	carried   Money // income that used a band, taxed with the next one
	finished  bool
}

func (r *TaxReport) newPass(summary TaxBand, amount Money) *bandPass {
	parent := r.bandFor(summary)
	parent.Amount = amount
	p := &bandPass{r: r, parent: parent, remaining: amount.Max(Money{})}
	p.finished = p.remaining.IsZero()
	return p
}

// consume taxes what fits in band at rate, and shrinks the band accordingly.
func (p *bandPass) consume(name TaxBand, band *Money, rate Rate) {
	if p.finished {
		return
	}
	take := p.remaining.Min(band.Max(Money{}))
	p.emit(name, take.Add(p.carried), rate)
	*band = band.Sub(take)
	p.remaining = p.remaining.Sub(take)
	p.carried = Money{}
	p.finished = p.remaining.IsZero()
}

// carry uses up band without taxing it, the income consumed is taxed with
// the next band.
func (p *bandPass) carry(band *Money) {
	if p.finished {
		return
	}
	take := p.remaining.Min(band.Max(Money{}))
	*band = band.Sub(take)
	p.remaining = p.remaining.Sub(take)
	p.carried = p.carried.Add(take)
}

// rest taxes all the remaining income at rate.
func (p *bandPass) rest(name TaxBand, rate Rate) {
	if p.finished {
		return
	}
	p.emit(name, p.remaining.Add(p.carried), rate)
	p.remaining, p.carried = Money{}, Money{}
	p.finished = true
}

func (p *bandPass) emit(name TaxBand, amount Money, rate Rate) {
	if !amount.IsPositive() {
		return
	}
	p.emitTaxed(name, amount, rate, amount.AtRate(rate))
}

func (p *bandPass) emitTaxed(name TaxBand, amount Money, rate Rate, tax Money) {
	b := p.r.bandFor(name)
	b.Amount = b.Amount.Add(amount)
	b.Rate = rate
	b.Taxation = b.Taxation.Add(tax)
	b.Parent = p.parent.ID()
	p.parent.Taxation = p.parent.Taxation.Add(tax)
}

// incomeBands is the band sequence shared by salary, rental and interest.
type incomeBands struct {
	free, lo, basic, hi, add TaxBand
	loRate, basicRate        Rate
	alwaysLo                 bool // tax the low band even if the regime has none
}

func (r *TaxReport) runIncome(p *bandPass, s incomeBands) {
	y, b := r.year, &r.remaining
	p.consume(s.free, &b.allowance, Rate{})
	if y.Regime.LoBand || s.alwaysLo {
		p.consume(s.lo, &b.loBand, s.loRate)
	} else {
		p.carry(&b.loBand)
	}
	p.consume(s.basic, &b.basicBand, s.basicRate)
	if b.hasHiBand {
		p.consume(s.hi, &b.hiBand, y.HiTaxRate)
		p.rest(s.add, y.AddTaxRate)
	} else {
		p.rest(s.hi, y.HiTaxRate)
	}
}

func (r *TaxReport) processSalary() {
	p := r.newPass(TaxSalary, r.summary(GrossSalary).Amount)
	r.runIncome(p, incomeBands{
		free: SalaryFree, lo: SalaryLo, basic: SalaryBasic, hi: SalaryHi, add: SalaryAdd,
		loRate: r.year.LoTaxRate, basicRate: r.year.BasicTaxRate,
	})
}

func (r *TaxReport) processRental() {
	p := r.newPass(TaxRental, r.summary(GrossRental).Amount)
	allowance := r.year.RentalAllowance
	p.consume(RentalAllowance, &allowance, Rate{})
	r.runIncome(p, incomeBands{
		free: RentalFree, lo: RentalLo, basic: RentalBasic, hi: RentalHi, add: RentalAdd,
		loRate: r.year.LoTaxRate, basicRate: r.year.BasicTaxRate,
	})
}

// processInterest taxes savings income, the low band is the savings starting
// rate. Whatever allowance and low band are left then join the basic band.
func (r *TaxReport) processInterest() {
	p := r.newPass(TaxInterest, r.summary(GrossInterest).Amount)
	r.runIncome(p, incomeBands{
		free: InterestFree, lo: InterestLo, basic: InterestBasic, hi: InterestHi, add: InterestAdd,
		loRate: r.year.LoTaxRate, basicRate: r.year.IntTaxRate, alwaysLo: true,
	})
	b := &r.remaining
	b.basicBand = b.basicBand.Add(b.allowance).Add(b.loBand)
	b.allowance, b.loBand = Money{}, Money{}
}

func (r *TaxReport) processDividends() {
	y, b := r.year, &r.remaining
	amount := r.summary(GrossDividend).Amount.Add(r.summary(GrossUnitTrustDividend).Amount)
	p := r.newPass(TaxDividend, amount)
	p.consume(DividendBasic, &b.basicBand, y.DivTaxRate)
	if b.hasHiBand {
		p.consume(DividendHi, &b.hiBand, y.HiDivTaxRate)
		p.rest(DividendAdd, y.AddDivTaxRate)
	} else {
		p.rest(DividendHi, y.HiDivTaxRate)
	}
}

// processTaxableGains taxes chargeable event gains. Unless the gains fit in
// the basic band, or there is no basic band left, or the age allowance was
// tapered, top slicing relief applies.
func (r *TaxReport) processTaxableGains() {
	y, b := r.year, &r.remaining
	gain := r.summary(GrossTaxableGain).Amount
	p := r.newPass(TaxGains, gain)
	if p.finished {
		return
	}
	switch {
	case gain.LessThanOrEqual(b.basicBand):
		p.consume(GainsBasic, &b.basicBand, y.BasicTaxRate)
	case b.basicBand.IsZero() || r.ageTaper:
		p.consume(GainsBasic, &b.basicBand, y.BasicTaxRate)
		if b.hasHiBand {
			p.consume(GainsHi, &b.hiBand, y.HiTaxRate)
			p.rest(GainsAdd, y.AddDivTaxRate)
		} else {
			p.rest(GainsHi, y.HiTaxRate)
		}
	default:
		r.topSlice(p, gain)
	}
}

// topSlice taxes the gain as if only its annual slice was earned, then
// charges each event its share of that tax times its number of years.
func (r *TaxReport) topSlice(p *bandPass, gain Money) {
	y, b := r.year, &r.remaining
	sliceTotal := r.gains.SliceTotal()
	r.gains.ApplyTax(r.sliceTax(sliceTotal), sliceTotal)
	total := r.gains.TaxTotal()

	basic := b.basicBand
	basicTax := basic.AtRate(y.BasicTaxRate)
	p.emitTaxed(GainsBasic, basic, y.BasicTaxRate, basicTax)
	p.emitTaxed(GainsSlice, gain.Sub(basic), Rate{}, total.Sub(basicTax))

	// the full gain, not the slice, uses the bands.
	take := gain.Min(b.basicBand)
	b.basicBand = b.basicBand.Sub(take)
	if b.hasHiBand {
		b.hiBand = b.hiBand.Sub(gain.Sub(take).Min(b.hiBand))
	}
	p.remaining = Money{}
	p.finished = true
}

// sliceTax returns the tax on amount through the remaining basic and high
// bands, leaving them untouched.
func (r *TaxReport) sliceTax(amount Money) Money {
	y, b := r.year, r.remaining
	basic := amount.Min(b.basicBand)
	tax := basic.AtRate(y.BasicTaxRate)
	rest := amount.Sub(basic)
	if b.hasHiBand {
		hi := rest.Min(b.hiBand)
		tax = tax.Add(hi.AtRate(y.HiTaxRate))
		rest = rest.Sub(hi)
		return tax.Add(rest.AtRate(y.AddDivTaxRate))
	}
	return tax.Add(rest.AtRate(y.HiTaxRate))
}

// processCapitalGains taxes capital gains above the annual exemption, either
// banded with income or at a flat rate.
func (r *TaxReport) processCapitalGains() {
	y, b := r.year, &r.remaining
	p := r.newPass(TaxCapital, r.summary(GrossCapitalGain).Amount)
	allowance := y.CapitalAllowance
	p.consume(CapitalFree, &allowance, Rate{})
	if y.Regime.CapitalGainsAsIncome || !y.HiCapTaxRate.IsZero() {
		hiRate := y.HiCapTaxRate
		if hiRate.IsZero() {
			hiRate = y.HiTaxRate
		}
		p.consume(CapitalBasic, &b.basicBand, y.CapTaxRate)
		p.rest(CapitalHi, hiRate)
		return
	}
	p.rest(CapitalBasic, y.CapTaxRate)
}
