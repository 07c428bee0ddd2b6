package taxbook

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/taxbook/date"
)

// ErrUnknownAccount is returned when a transaction refers to an undeclared account.
var ErrUnknownAccount = errors.New("unknown account")

// TransactionLedger is the source of transactions.
type TransactionLedger interface {
	// InDateOrder iterates over transactions sorted by date.
	InDateOrder() iter.Seq[*Transaction]
}

// AccountDirectory resolves accounts.
type AccountDirectory interface {
	Account(name string) (*Account, bool)
	// Market returns the account market movements are booked against.
	Market() *Account
}

// TaxYearDirectory resolves the tax year covering a date.
type TaxYearDirectory interface {
	RangeContaining(d date.Date) (*TaxYear, bool)
}

// TaxPayer describes the person the tax is computed for.
type TaxPayer interface {
	BirthDate() date.Date
}

// Profile is the simplest TaxPayer.
type Profile struct {
	Birth date.Date
}

func (p Profile) BirthDate() date.Date { return p.Birth }

// Accounts is the set of declared accounts, indexed by name.
type Accounts struct {
	byName map[string]*Account
	market *Account
}

// NewAccounts returns the directory of the given accounts.
func NewAccounts(accounts ...*Account) *Accounts {
	a := &Accounts{byName: make(map[string]*Account)}
	a.Add(accounts...)
	return a
}

// Add declares accounts, the last declaration of a name wins.
func (a *Accounts) Add(accounts ...*Account) {
	for _, acc := range accounts {
		a.byName[acc.Name] = acc
		if acc.Type.IsMarket() && a.market == nil {
			a.market = acc
		}
	}
}

func (a *Accounts) Account(name string) (*Account, bool) {
	acc, ok := a.byName[name]
	return acc, ok
}

// Market returns the declared market account, or an implicit one named "Market".
func (a *Accounts) Market() *Account {
	if a.market == nil {
		a.market = NewAccount("Market", Market)
		a.byName[a.market.Name] = a.market
	}
	return a.market
}

// All returns accounts sorted by name.
func (a *Accounts) All() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for _, name := range slices.Sorted(maps.Keys(a.byName)) {
			if !yield(a.byName[name]) {
				return
			}
		}
	}
}

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []*Transaction
}

// NewLedger creates a ledger.
func NewLedger(txs ...*Transaction) *Ledger {
	l := &Ledger{}
	l.Append(txs...)
	return l
}

// Append appends transactions to this ledger and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...*Transaction) {
	l.transactions = append(l.transactions, txs...)
	// stable: same day transactions keep their insertion order.
	slices.SortStableFunc(l.transactions, func(a, b *Transaction) int { return a.Date.Compare(b.Date) })
}

// Len returns the number of transactions, deleted ones included.
func (l *Ledger) Len() int { return len(l.transactions) }

// InDateOrder iterates over the transactions that are not deleted.
func (l *Ledger) InDateOrder() iter.Seq[*Transaction] {
	return func(yield func(*Transaction) bool) {
		for _, t := range l.transactions {
			if t.Deleted {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Validate checks the references of every transaction against the directory.
func (l *Ledger) Validate(accounts AccountDirectory) error {
	var errs error
	for _, t := range l.transactions {
		for _, acc := range []*Account{t.Debit, t.Credit} {
			if acc == nil {
				errs = errors.Join(errs, fmt.Errorf("%w: transaction on %s has no account", ErrUnknownAccount, t.Date))
				continue
			}
			if _, ok := accounts.Account(acc.Name); !ok {
				errs = errors.Join(errs, fmt.Errorf("%w %q in transaction on %s", ErrUnknownAccount, acc.Name, t.Date))
			}
		}
		for _, m := range []Money{t.Amount, t.TaxCredit} {
			if _, err := parseCurrency(m.Currency()); err != nil {
				errs = errors.Join(errs, fmt.Errorf("transaction on %s: %w", t.Date, err))
				break
			}
		}
		if t.Category == TaxableGain && t.Years < 1 {
			errs = errors.Join(errs, fmt.Errorf("taxable gain on %s must accrue over at least one year", t.Date))
		}
	}
	return errs
}

var _ TransactionLedger = (*Ledger)(nil)
var _ AccountDirectory = (*Accounts)(nil)
var _ TaxYearDirectory = (*TaxYears)(nil)
var _ TaxPayer = Profile{}
