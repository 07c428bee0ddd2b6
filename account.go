package taxbook

import (
	"fmt"
	"strings"
)

// AccountType classifies an account. The flags used by the reports all
// derive from it.
type AccountType int

const (
	Current AccountType = iota
	Savings
	Bond
	Cash
	CreditCard
	Loan
	Shares
	UnitTrust
	LifeBond
	Property
	Endowment
	Payee
	Employer
	Inheritance
	Benefit
	TaxAuthority
	Market
	WriteOff
)

var accountTypeNames = [...]string{
	Current:      "current",
	Savings:      "savings",
	Bond:         "bond",
	Cash:         "cash",
	CreditCard:   "creditcard",
	Loan:         "loan",
	Shares:       "shares",
	UnitTrust:    "unittrust",
	LifeBond:     "lifebond",
	Property:     "property",
	Endowment:    "endowment",
	Payee:        "payee",
	Employer:     "employer",
	Inheritance:  "inheritance",
	Benefit:      "benefit",
	TaxAuthority: "taxman",
	Market:       "market",
	WriteOff:     "writeoff",
}

func (t AccountType) String() string {
	if t < 0 || int(t) >= len(accountTypeNames) {
		return fmt.Sprintf("AccountType(%d)", int(t))
	}
	return accountTypeNames[t]
}

// ParseAccountType parses the name of an account type.
func ParseAccountType(s string) (AccountType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range accountTypeNames {
		if name == s {
			return AccountType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown account type %q", s)
}

// Order is the rank of the type in reports.
func (t AccountType) Order() int { return int(t) }

// IsPriced reports whether the account holds units valued at a price.
func (t AccountType) IsPriced() bool {
	switch t {
	case Shares, UnitTrust, LifeBond, Property, Endowment:
		return true
	}
	return false
}

// IsMoney reports whether the account holds a money balance.
func (t AccountType) IsMoney() bool {
	switch t {
	case Current, Savings, Bond, Cash, CreditCard, Loan:
		return true
	}
	return false
}

// IsRated reports whether the account may earn interest at a rate.
func (t AccountType) IsRated() bool { return t == Savings || t == Bond }

// IsExternal reports whether the account is outside of the owner's estate.
func (t AccountType) IsExternal() bool {
	switch t {
	case Payee, Employer, Inheritance, TaxAuthority, Market, WriteOff:
		return true
	}
	return false
}

func (t AccountType) IsBenefitSource() bool { return t == Benefit }
func (t AccountType) IsTaxAuthority() bool  { return t == TaxAuthority }
func (t AccountType) IsMarket() bool        { return t == Market }
func (t AccountType) IsWriteOff() bool      { return t == WriteOff }

// Account is a node of the ledger.
type Account struct {
	Name   string
	Type   AccountType
	Parent string // optional parent account name
}

// NewAccount returns an account.
func NewAccount(name string, typ AccountType) *Account {
	return &Account{Name: name, Type: typ}
}

func (a *Account) IsPriced() bool        { return a.Type.IsPriced() }
func (a *Account) IsMoney() bool         { return a.Type.IsMoney() }
func (a *Account) IsRated() bool         { return a.Type.IsRated() }
func (a *Account) IsExternal() bool      { return a.Type.IsExternal() }
func (a *Account) IsBenefitSource() bool { return a.Type.IsBenefitSource() }

// HoldsAssets reports whether balances of the account belong to the owner.
func (a *Account) HoldsAssets() bool {
	return !a.Type.IsExternal() && !a.Type.IsBenefitSource()
}

func (a *Account) String() string { return a.Name }
