package taxbook

import "iter"

// IncomeBucket holds what an external account paid to, or received from,
// the owner over the year.
type IncomeBucket struct {
	bucketKey
	Account *Account // Detail buckets only

	Income       Money
	Expense      Money
	PriorIncome  Money
	PriorExpense Money

	in, out Money // booked so far, before normalization
}

func newIncomeBucket(id int, key Key) *IncomeBucket {
	return &IncomeBucket{bucketKey: bucketKey{id: id, key: key}}
}

func (b *IncomeBucket) IsPriced() bool { return false }

func (b *IncomeBucket) IsIdle() bool {
	return b.Income.IsZero() && b.Expense.IsZero() && b.PriorIncome.IsZero() && b.PriorExpense.IsZero()
}

// Net returns income less expense.
func (b *IncomeBucket) Net() Money { return b.Income.Sub(b.Expense) }

// PriorNet returns last year's income less expense.
func (b *IncomeBucket) PriorNet() Money { return b.PriorIncome.Sub(b.PriorExpense) }

func (b *IncomeBucket) add(o *IncomeBucket) {
	b.Income = b.Income.Add(o.Income)
	b.Expense = b.Expense.Add(o.Expense)
	b.PriorIncome = b.PriorIncome.Add(o.PriorIncome)
	b.PriorExpense = b.PriorExpense.Add(o.PriorExpense)
}

// settle sets Income and Expense from what was booked, moving a negative
// expense across to income.
func (b *IncomeBucket) settle() {
	b.Income, b.Expense = b.in, b.out
	if b.Expense.IsNegative() {
		b.Income = b.Income.Sub(b.Expense)
		b.Expense = Money{}
	}
	if b.PriorExpense.IsNegative() {
		b.PriorIncome = b.PriorIncome.Sub(b.PriorExpense)
		b.PriorExpense = Money{}
	}
}

// IncomeReport tracks income and expense per external account.
type IncomeReport struct {
	store    *BucketStore[*IncomeBucket]
	market   *Account
	totalled bool
}

// NewIncomeReport returns an empty report, market movements are booked
// against the market account.
func NewIncomeReport(market *Account) *IncomeReport {
	return &IncomeReport{store: NewBucketStore(newIncomeBucket), market: market}
}

func (r *IncomeReport) detailFor(a *Account) *IncomeBucket {
	b := r.store.BucketFor(Detail, a.Type.Order(), a.Name)
	b.Account = a
	return b
}

// ProcessTransaction books the external side of t. Money coming from an
// external account is income, unless it recovers an expense. Money going to
// an external account is expense.
func (r *IncomeReport) ProcessTransaction(t *Transaction) {
	if t.Debit != nil && t.Debit.IsExternal() {
		b := r.detailFor(t.Debit)
		if t.Category.IsRecovery() {
			b.out = b.out.Sub(t.Amount)
		} else {
			b.in = b.in.Add(t.Amount)
		}
	}
	if t.Credit != nil && t.Credit.IsExternal() {
		b := r.detailFor(t.Credit)
		b.out = b.out.Add(t.Amount)
	}
	r.totalled = false
}

// AddMarketMovement books the market movement of a valued asset against the
// market account.
func (r *IncomeReport) AddMarketMovement(a *AssetBucket) {
	if r.market == nil || a.Market.IsZero() {
		return
	}
	b := r.detailFor(r.market)
	if a.Market.IsPositive() {
		b.in = b.in.Add(a.Market)
	} else {
		b.out = b.out.Sub(a.Market)
	}
	r.totalled = false
}

// ProduceTotals normalizes negative expenses, drops idle accounts and sums
// the remaining into the Total. It is computed again after new bookings.
func (r *IncomeReport) ProduceTotals() {
	if r.totalled {
		return
	}
	r.totalled = true
	r.store.Clear(Total)
	for b := range r.store.OfKind(Detail) {
		b.settle()
	}
	r.store.PruneEmpty()
	total := r.store.TotalsBucket()
	for b := range r.store.OfKind(Detail) {
		total.add(b)
	}
}

// Buckets iterates over all buckets, the Total last.
func (r *IncomeReport) Buckets() iter.Seq[*IncomeBucket] {
	r.ProduceTotals()
	return r.store.All()
}

// Details iterates over external account buckets.
func (r *IncomeReport) Details() iter.Seq[*IncomeBucket] {
	r.ProduceTotals()
	return r.store.OfKind(Detail)
}

// Total returns the sum over all accounts.
func (r *IncomeReport) Total() *IncomeBucket {
	r.ProduceTotals()
	return r.store.TotalsBucket()
}

// Account returns the bucket of an external account.
func (r *IncomeReport) Account(a *Account) (*IncomeBucket, bool) {
	r.ProduceTotals()
	return r.store.Find(Detail, a.Type.Order(), a.Name)
}

// seed opens the report with last year's figures as prior values.
func (r *IncomeReport) seed(prev *IncomeReport) {
	prev.ProduceTotals()
	for b := range prev.store.OfKind(Detail) {
		if b.Income.IsZero() && b.Expense.IsZero() {
			continue
		}
		n := r.detailFor(b.Account)
		n.PriorIncome = b.Income
		n.PriorExpense = b.Expense
	}
}
