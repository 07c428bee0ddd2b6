package taxbook

import (
	"errors"
	"fmt"
	"io"

	"github.com/etnz/taxbook/date"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// yamlTaxYear is a tax year of the configuration file. Amounts are in
// pounds, rates in percent ("20" or "20%").
type yamlTaxYear struct {
	End    date.Date `yaml:"end"`
	Regime struct {
		LoBand               bool `yaml:"lo-band"`
		AdditionalBand       bool `yaml:"additional-band"`
		CapitalGainsAsIncome bool `yaml:"capital-gains-as-income"`
	} `yaml:"regime"`

	Allowance        decimal.Decimal `yaml:"allowance"`
	RentalAllowance  decimal.Decimal `yaml:"rental-allowance"`
	CapitalAllowance decimal.Decimal `yaml:"capital-allowance"`
	LoBand           decimal.Decimal `yaml:"lo-band"`
	BasicBand        decimal.Decimal `yaml:"basic-band"`

	LoAgeAllowance    decimal.Decimal `yaml:"lo-age-allowance"`
	HiAgeAllowance    decimal.Decimal `yaml:"hi-age-allowance"`
	AgeAllowanceLimit decimal.Decimal `yaml:"age-allowance-limit"`

	AddAllowanceLimit decimal.Decimal `yaml:"add-allowance-limit"`
	AddIncomeBoundary decimal.Decimal `yaml:"add-income-boundary"`

	Rates struct {
		Lo     Rate `yaml:"lo"`
		Basic  Rate `yaml:"basic"`
		Hi     Rate `yaml:"hi"`
		Int    Rate `yaml:"interest"`
		Div    Rate `yaml:"dividend"`
		HiDiv  Rate `yaml:"hi-dividend"`
		Add    Rate `yaml:"add"`
		AddDiv Rate `yaml:"add-dividend"`
		Cap    Rate `yaml:"capital"`
		HiCap  Rate `yaml:"hi-capital"`
	} `yaml:"rates"`
}

func (y *yamlTaxYear) taxYear() *TaxYear {
	return &TaxYear{
		End: y.End,
		Regime: Regime{
			LoBand:               y.Regime.LoBand,
			AdditionalBand:       y.Regime.AdditionalBand,
			CapitalGainsAsIncome: y.Regime.CapitalGainsAsIncome,
		},
		Allowance:         GBP(y.Allowance),
		RentalAllowance:   GBP(y.RentalAllowance),
		CapitalAllowance:  GBP(y.CapitalAllowance),
		LoBand:            GBP(y.LoBand),
		BasicBand:         GBP(y.BasicBand),
		LoAgeAllowance:    GBP(y.LoAgeAllowance),
		HiAgeAllowance:    GBP(y.HiAgeAllowance),
		AgeAllowanceLimit: GBP(y.AgeAllowanceLimit),
		AddAllowanceLimit: GBP(y.AddAllowanceLimit),
		AddIncomeBoundary: GBP(y.AddIncomeBoundary),
		LoTaxRate:         y.Rates.Lo,
		BasicTaxRate:      y.Rates.Basic,
		HiTaxRate:         y.Rates.Hi,
		IntTaxRate:        y.Rates.Int,
		DivTaxRate:        y.Rates.Div,
		HiDivTaxRate:      y.Rates.HiDiv,
		AddTaxRate:        y.Rates.Add,
		AddDivTaxRate:     y.Rates.AddDiv,
		CapTaxRate:        y.Rates.Cap,
		HiCapTaxRate:      y.Rates.HiCap,
	}
}

// TaxConfig is the content of the tax configuration file.
type TaxConfig struct {
	Profile  Profile
	TaxYears *TaxYears
}

// DecodeTaxConfig reads the tax payer profile and the tax years from YAML.
//
//	profile:
//	  birth: 1950-07-14
//	years:
//	  - end: 2011-04-05
//	    allowance: 6475
//	    basic-band: 37400
//	    rates: {basic: 20%, hi: 40%}
func DecodeTaxConfig(r io.Reader) (*TaxConfig, error) {
	var doc struct {
		Profile struct {
			Birth date.Date `yaml:"birth"`
		} `yaml:"profile"`
		Years []yamlTaxYear `yaml:"years"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode tax configuration: %w", err)
	}
	years := make([]*TaxYear, 0, len(doc.Years))
	for _, y := range doc.Years {
		years = append(years, y.taxYear())
	}
	cfg := &TaxConfig{
		Profile:  Profile{Birth: doc.Profile.Birth},
		TaxYears: NewTaxYears(years...),
	}
	if err := cfg.TaxYears.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
