package taxbook

import (
	"maps"
	"slices"

	"github.com/etnz/taxbook/date"
)

// AccountRate is the interest rate of a rated account, with the date the
// rate applies until (maturity for bonds), if any.
type AccountRate struct {
	Rate     Rate
	Maturity date.Date
}

// PriceHistory gives access to the unit price of priced accounts.
type PriceHistory interface {
	// LatestPrice returns the last known price on or before day.
	LatestPrice(account string, day date.Date) (date.Date, Price, bool)
}

// RateHistory gives access to the rates of rated accounts.
type RateHistory interface {
	// LatestRate returns the last known rate on or before day.
	LatestRate(account string, day date.Date) (date.Date, AccountRate, bool)
}

// MarketData holds price and rate histories indexed by account name.
type MarketData struct {
	prices map[string]*date.History[Price]
	rates  map[string]*date.History[AccountRate]
}

// NewMarketData returns an empty market.
func NewMarketData() *MarketData {
	return &MarketData{
		prices: make(map[string]*date.History[Price]),
		rates:  make(map[string]*date.History[AccountRate]),
	}
}

// SetPrice records the price of account on day.
func (m *MarketData) SetPrice(account string, day date.Date, p Price) *MarketData {
	h, ok := m.prices[account]
	if !ok {
		h = new(date.History[Price])
		m.prices[account] = h
	}
	h.Append(day, p)
	return m
}

// SetRate records the rate of account from day.
func (m *MarketData) SetRate(account string, day date.Date, r AccountRate) *MarketData {
	h, ok := m.rates[account]
	if !ok {
		h = new(date.History[AccountRate])
		m.rates[account] = h
	}
	h.Append(day, r)
	return m
}

func (m *MarketData) LatestPrice(account string, day date.Date) (date.Date, Price, bool) {
	h, ok := m.prices[account]
	if !ok {
		return date.Date{}, Price{}, false
	}
	return h.ValueAsOf(day)
}

func (m *MarketData) LatestRate(account string, day date.Date) (date.Date, AccountRate, bool) {
	h, ok := m.rates[account]
	if !ok {
		return date.Date{}, AccountRate{}, false
	}
	return h.ValueAsOf(day)
}

// Accounts returns the names of accounts with prices or rates, sorted.
func (m *MarketData) Accounts() []string {
	names := append(sortedKeys(m.prices), sortedKeys(m.rates)...)
	slices.Sort(names)
	return slices.Compact(names)
}

func sortedKeys[V any](m map[string]V) []string { return slices.Sorted(maps.Keys(m)) }

var _ PriceHistory = (*MarketData)(nil)
var _ RateHistory = (*MarketData)(nil)
