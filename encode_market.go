package taxbook

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/etnz/taxbook/date"
	"github.com/shopspring/decimal"
)

// jsonQuote is a line of the market file: either a price or a rate.
type jsonQuote struct {
	Date     date.Date        `json:"date"`
	Account  string           `json:"account"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Currency string           `json:"currency,omitempty"`
	Rate     *Rate            `json:"rate,omitempty"`
	Maturity date.Date        `json:"maturity"`
}

// DecodeMarketData reads prices and rates from JSONL, one quote per line.
//
//	{"date":"2011-04-01","account":"Fund","price":60.25}
//	{"date":"2010-01-01","account":"Saver","rate":2.5,"maturity":"2013-01-31"}
func DecodeMarketData(r io.Reader) (*MarketData, error) {
	m := NewMarketData()
	err := scanLines(r, func(line []byte) error {
		var q jsonQuote
		if err := json.Unmarshal(line, &q); err != nil {
			return err
		}
		if q.Account == "" {
			return errors.New("quote without an account")
		}
		switch {
		case q.Price != nil:
			cur, err := parseCurrency(q.Currency)
			if err != nil {
				return err
			}
			m.SetPrice(q.Account, q.Date, P(*q.Price, cur))
		case q.Rate != nil:
			m.SetRate(q.Account, q.Date, AccountRate{Rate: *q.Rate, Maturity: q.Maturity})
		default:
			return errors.New("quote without price nor rate")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeMarketData writes prices then rates, per account and in date order.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	for _, name := range sortedKeys(m.prices) {
		for day, p := range m.prices[name].Values() {
			var o jsonObjectWriter
			o.Append("date", day).Append("account", name).Append("price", p).Optional("currency", foreign(p.Currency()))
			if err := encodeLine(w, &o); err != nil {
				return err
			}
		}
	}
	for _, name := range sortedKeys(m.rates) {
		for day, r := range m.rates[name].Values() {
			var o jsonObjectWriter
			o.Append("date", day).Append("account", name).Append("rate", r.Rate).Optional("maturity", r.Maturity)
			if err := encodeLine(w, &o); err != nil {
				return err
			}
		}
	}
	return nil
}
