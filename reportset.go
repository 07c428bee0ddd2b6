package taxbook

import (
	"github.com/etnz/taxbook/date"
	"github.com/rs/zerolog"
)

// ReportSet is the asset, income and tax reports of one tax year.
type ReportSet struct {
	year   *TaxYear
	assets *AssetReport
	income *IncomeReport
	tax    *TaxReport
	closed bool
}

// NewReportSet returns the reports of year, opened with the closing
// positions of prev, if any.
func NewReportSet(year *TaxYear, in Inputs, prev *ReportSet) *ReportSet {
	log := in.logger()
	var market *Account
	if in.Accounts != nil {
		market = in.Accounts.Market()
	}
	s := &ReportSet{
		year:   year,
		assets: NewAssetReport(year.End, in.Prices, in.Rates, log),
		income: NewIncomeReport(market),
		tax:    NewTaxReport(year, in.TaxPayer),
	}
	s.assets.markets = []marketListener{s.income, s.tax}
	if prev != nil {
		prev.Close()
		s.assets.seed(prev.assets)
		s.income.seed(prev.income)
	}
	return s
}

// Year returns the tax year parameters.
func (s *ReportSet) Year() *TaxYear { return s.year }

// Date returns the last day of the tax year, when assets are valued.
func (s *ReportSet) Date() date.Date { return s.year.End }

// Label returns the "2010/11" name of the year.
func (s *ReportSet) Label() string { return s.year.Label() }

func (s *ReportSet) Assets() *AssetReport  { return s.assets }
func (s *ReportSet) Income() *IncomeReport { return s.income }
func (s *ReportSet) Tax() *TaxReport       { return s.tax }

// ProcessTransaction dispatches t to the three reports. A closed set has
// forwarded its market movements and cannot take more transactions.
func (s *ReportSet) ProcessTransaction(t *Transaction) {
	if s.closed {
		panic("taxbook: transaction on " + t.Date.String() + " processed after tax year " + s.Label() + " was closed")
	}
	s.assets.ProcessTransaction(t)
	s.income.ProcessTransaction(t)
	s.tax.ProcessTransaction(t)
}

// Close values the assets and produces every total. Market movements reach
// the income and tax reports before they are totalled.
func (s *ReportSet) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.assets.publishMarketMovements()
	s.assets.ProduceTotals()
	s.income.ProduceTotals()
	s.tax.ProduceTotals()
	s.assets.log.Debug().Str("year", s.Label()).
		Stringer("assets", s.assets.Total().Amount).
		Stringer("tax", s.tax.Total().Taxation).
		Msg("tax year closed")
}

// Inputs are the collaborators the reports are computed from.
type Inputs struct {
	Ledger   TransactionLedger
	Accounts AccountDirectory
	TaxYears TaxYearDirectory
	Prices   PriceHistory
	Rates    RateHistory
	TaxPayer TaxPayer
	Logger   *zerolog.Logger // nil logs nothing
}

func (in Inputs) logger() zerolog.Logger {
	if in.Logger == nil {
		return zerolog.Nop()
	}
	return *in.Logger
}
