package taxbook

import (
	"iter"

	"github.com/etnz/taxbook/date"
	"github.com/rs/zerolog"
)

// AssetBucket holds the position of one asset account, or the aggregate of
// an account type (Summary) or of all accounts (Total).
//
// During the year Flow and UnitsFlow accumulate the net movements. Valuation
// turns them into the closing Units and Amount.
type AssetBucket struct {
	bucketKey
	Account *Account // Detail buckets only

	Units      Units // closing units
	PriorUnits Units
	UnitsFlow  Units // net units moved in during the year

	Amount      Money // closing value
	PriorAmount Money
	Flow        Money // net money moved in during the year

	Price      Price
	PriceDate  date.Date
	PriorPrice Price

	Rate     Rate      // rated accounts only
	RateDate date.Date // maturity, or the date the rate applies from

	Adjustment Money // money invested in a priced asset during the year
	Market     Money // market movement of a priced asset over the year

	valued bool
}

func newAssetBucket(id int, key Key) *AssetBucket {
	return &AssetBucket{bucketKey: bucketKey{id: id, key: key}}
}

// IsPriced reports whether the bucket holds units of a priced account.
func (b *AssetBucket) IsPriced() bool { return b.Account != nil && b.Account.IsPriced() }

// IsIdle reports whether nothing is held nor moved in the bucket.
func (b *AssetBucket) IsIdle() bool {
	return b.Units.IsZero() && b.PriorUnits.IsZero() && b.UnitsFlow.IsZero() &&
		b.Amount.IsZero() && b.PriorAmount.IsZero() && b.Flow.IsZero()
}

// HasPrice reports whether the bucket could be valued at a market price.
func (b *AssetBucket) HasPrice() bool { return !b.Price.IsZero() }

// Change returns the change of value over the year.
func (b *AssetBucket) Change() Money { return b.Amount.Sub(b.PriorAmount) }

// add aggregates the money columns of o into b.
func (b *AssetBucket) add(o *AssetBucket) {
	b.Amount = b.Amount.Add(o.Amount)
	b.PriorAmount = b.PriorAmount.Add(o.PriorAmount)
	b.Flow = b.Flow.Add(o.Flow)
	b.Adjustment = b.Adjustment.Add(o.Adjustment)
	b.Market = b.Market.Add(o.Market)
}

// marketListener receives the market movements computed at valuation.
type marketListener interface {
	AddMarketMovement(b *AssetBucket)
}

// AssetReport tracks the value of every asset-bearing account over a year.
type AssetReport struct {
	on      date.Date
	store   *BucketStore[*AssetBucket]
	prices  PriceHistory
	rates   RateHistory
	markets []marketListener
	log     zerolog.Logger

	valued   bool
	totalled bool
}

// NewAssetReport returns an empty report valued on day.
func NewAssetReport(on date.Date, prices PriceHistory, rates RateHistory, log zerolog.Logger) *AssetReport {
	return &AssetReport{
		on:     on,
		store:  NewBucketStore(newAssetBucket),
		prices: prices,
		rates:  rates,
		log:    log,
	}
}

// NewValuation values the assets held on day, independently of any tax year.
// It applies every transaction up to and including day.
func NewValuation(ledger TransactionLedger, prices PriceHistory, rates RateHistory, on date.Date) *AssetReport {
	r := NewAssetReport(on, prices, rates, zerolog.Nop())
	for t := range ledger.InDateOrder() {
		if t.Date.After(on) {
			break
		}
		r.ProcessTransaction(t)
	}
	r.ValuePricedAssets()
	return r
}

// Date returns the valuation date.
func (r *AssetReport) Date() date.Date { return r.on }

// detailFor returns the Detail bucket of an account.
func (r *AssetReport) detailFor(a *Account) *AssetBucket {
	b := r.store.BucketFor(Detail, a.Type.Order(), a.Name)
	b.Account = a
	return b
}

// ProcessTransaction books the asset side of t. The accounts it touches
// are valued again on the next query.
func (r *AssetReport) ProcessTransaction(t *Transaction) {
	if t.Credit != nil && t.Credit.HoldsAssets() {
		b := r.detailFor(t.Credit)
		b.Flow = b.Flow.Add(t.Amount)
		if t.Credit.IsPriced() {
			b.UnitsFlow = b.UnitsFlow.Add(t.Units)
		}
		b.valued = false
	}
	if t.Debit != nil && t.Debit.HoldsAssets() {
		b := r.detailFor(t.Debit)
		b.Flow = b.Flow.Sub(t.Amount)
		if t.Debit.IsPriced() {
			b.UnitsFlow = b.UnitsFlow.Sub(t.Units)
		}
		b.valued = false
	}
	r.valued = false
	r.totalled = false
}

// ValuePricedAssets sets the closing position of every account changed
// since the last valuation.
//
// Priced accounts are valued at the latest price on or before the report
// date. The difference with last year's value that is not explained by
// money moved in is the market movement. Missing prices and rates leave the
// corresponding fields unset.
func (r *AssetReport) ValuePricedAssets() {
	if r.valued {
		return
	}
	r.valued = true
	for b := range r.store.OfKind(Detail) {
		r.value(b)
	}
	r.totalled = false
}

func (r *AssetReport) value(b *AssetBucket) {
	if b.valued || b.Account == nil {
		return
	}
	b.valued = true
	b.Units = b.PriorUnits.Add(b.UnitsFlow)
	b.Price, b.PriceDate = Price{}, date.Date{}
	b.Rate, b.RateDate = Rate{}, date.Date{}
	b.Adjustment, b.Market = Money{}, Money{}

	if !b.IsPriced() {
		b.Amount = b.PriorAmount.Add(b.Flow)
		if b.Account.IsRated() {
			r.rate(b)
		}
		return
	}

	b.Amount = Money{}
	b.Adjustment = b.Flow
	if r.prices == nil {
		return
	}
	day, p, ok := r.prices.LatestPrice(b.Account.Name, r.on)
	if !ok {
		if !b.Units.IsZero() {
			r.log.Warn().Str("account", b.Account.Name).Stringer("on", r.on).Msg("no price to value the holding")
		}
		return
	}
	b.Price, b.PriceDate = p, day
	b.Amount = p.Value(b.Units)
	b.Market = b.Amount.Sub(b.PriorAmount).Sub(b.Adjustment)
}

// publishMarketMovements values the accounts and forwards every market
// movement to the listening income and tax reports. It is called once, when
// the year is closed.
func (r *AssetReport) publishMarketMovements() {
	r.ValuePricedAssets()
	for b := range r.store.OfKind(Detail) {
		if b.Market.IsZero() {
			continue
		}
		for _, l := range r.markets {
			l.AddMarketMovement(b)
		}
	}
}

func (r *AssetReport) rate(b *AssetBucket) {
	if r.rates == nil {
		return
	}
	day, ar, ok := r.rates.LatestRate(b.Account.Name, r.on)
	if !ok {
		r.log.Debug().Str("account", b.Account.Name).Msg("no rate")
		return
	}
	b.Rate = ar.Rate
	b.RateDate = day
	if !ar.Maturity.IsZero() {
		b.RateDate = ar.Maturity
	}
}

// ProduceTotals aggregates Detail buckets into one Summary per account type
// and the Total, after dropping idle accounts. It is computed once.
func (r *AssetReport) ProduceTotals() {
	if r.totalled {
		return
	}
	r.totalled = true
	r.ValuePricedAssets()
	r.store.PruneEmpty()
	r.store.Clear(Summary)
	r.store.Clear(Total)
	total := r.store.TotalsBucket()

	// Summary buckets are created while iterating Details, collect first.
	var details []*AssetBucket
	for b := range r.store.OfKind(Detail) {
		details = append(details, b)
	}
	for _, b := range details {
		t := b.Account.Type
		r.store.BucketFor(Summary, t.Order(), t.String()).add(b)
		total.add(b)
	}
}

// Buckets iterates over all buckets in report order, totals included.
func (r *AssetReport) Buckets() iter.Seq[*AssetBucket] {
	r.ProduceTotals()
	return r.store.All()
}

// Details iterates over account buckets.
func (r *AssetReport) Details() iter.Seq[*AssetBucket] {
	r.ProduceTotals()
	return r.store.OfKind(Detail)
}

// Summaries iterates over account type buckets.
func (r *AssetReport) Summaries() iter.Seq[*AssetBucket] {
	r.ProduceTotals()
	return r.store.OfKind(Summary)
}

// Total returns the aggregate of all accounts.
func (r *AssetReport) Total() *AssetBucket {
	r.ProduceTotals()
	return r.store.TotalsBucket()
}

// Account returns the bucket of the named account.
func (r *AssetReport) Account(a *Account) (*AssetBucket, bool) {
	r.ProduceTotals()
	return r.store.Find(Detail, a.Type.Order(), a.Name)
}

// MarketOnly returns a copy of the report restricted to priced accounts,
// with its own totals.
func (r *AssetReport) MarketOnly() *AssetReport {
	r.ValuePricedAssets()
	m := NewAssetReport(r.on, r.prices, r.rates, r.log)
	m.valued = true
	for b := range r.store.OfKind(Detail) {
		c := m.store.BucketFor(Detail, b.key.Order, b.key.Name)
		id := c.id
		*c = *b
		c.id = id
	}
	m.store.PruneNonPriced()
	m.ProduceTotals()
	return m
}

// seed opens the report with last year's closing positions.
func (r *AssetReport) seed(prev *AssetReport) {
	prev.ProduceTotals()
	for b := range prev.store.OfKind(Detail) {
		if b.Units.IsZero() && b.Amount.IsZero() {
			continue
		}
		n := r.detailFor(b.Account)
		n.PriorUnits = b.Units
		n.PriorAmount = b.Amount
		n.PriorPrice = b.Price
		n.valued = false
	}
	r.valued = false
}
