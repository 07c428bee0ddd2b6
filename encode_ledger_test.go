package taxbook

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/taxbook/date"
	"github.com/google/go-cmp/cmp"
)

const accountsJSONL = `{"name":"Bank","type":"current"}
{"name":"Fund","type":"shares","parent":"Broker"}

{"name":"Acme","type":"employer"}
`

func TestDecodeAccounts(t *testing.T) {
	accounts, err := DecodeAccounts(strings.NewReader(accountsJSONL))
	if err != nil {
		t.Fatalf("DecodeAccounts() error = %v", err)
	}
	fund, ok := accounts.Account("Fund")
	if !ok {
		t.Fatalf("Account(Fund) not found")
	}
	if diff := cmp.Diff(&Account{Name: "Fund", Type: Shares, Parent: "Broker"}, fund); diff != "" {
		t.Errorf("Account(Fund) mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := EncodeAccounts(&buf, accounts); err != nil {
		t.Fatalf("EncodeAccounts() error = %v", err)
	}
	want := `{"name":"Acme","type":"employer"}
{"name":"Bank","type":"current"}
{"name":"Fund","type":"shares","parent":"Broker"}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAccounts_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown type", `{"name":"X","type":"spaceship"}`},
		{"no name", `{"type":"current"}`},
		{"declared twice", "{\"name\":\"X\",\"type\":\"current\"}\n{\"name\":\"X\",\"type\":\"cash\"}"},
		{"not json", `name=X`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeAccounts(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeAccounts(%q) succeeded, want an error", tt.input)
			}
		})
	}
}

func TestDecodeLedger(t *testing.T) {
	accounts, _ := DecodeAccounts(strings.NewReader(accountsJSONL))
	input := `{"date":"2010-06-01","category":"transfer","from":"Bank","to":"Fund","amount":500,"units":10.5}
{"date":"2010-05-01","category":"salary","from":"Acme","to":"Bank","amount":1000,"taxCredit":250.5,"description":"May"}
{"date":"2010-05-02","category":"expense","from":"Bank","to":"Acme","amount":1,"deleted":true}
`
	ledger, err := DecodeLedger(strings.NewReader(input), accounts)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if got, want := ledger.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	var txs []*Transaction
	for trx := range ledger.InDateOrder() {
		txs = append(txs, trx)
	}
	if len(txs) != 2 {
		t.Fatalf("InDateOrder() returned %d transactions, want 2", len(txs))
	}
	salary := txs[0]
	if salary.Date != date.MustParse("2010-05-01") || salary.Category != Salary || salary.Debit.Name != "Acme" {
		t.Errorf("first transaction = %v, want the salary", salary)
	}
	if got, want := salary.Gross(), GBP(1250.5); !got.Equal(want) {
		t.Errorf("Gross() = %v, want %v", got, want)
	}
	if got, want := txs[1].Units, U(10.5); !got.Equal(want) {
		t.Errorf("Units = %v, want %v", got, want)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	want := `{"date":"2010-05-01","category":"salary","from":"Acme","to":"Bank","amount":1000,"taxCredit":250.5,"description":"May"}
{"date":"2010-05-02","category":"expense","from":"Bank","to":"Acme","amount":1,"deleted":true}
{"date":"2010-06-01","category":"transfer","from":"Bank","to":"Fund","amount":500,"units":10.5}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeLedger() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLedger_UnknownAccount(t *testing.T) {
	accounts, _ := DecodeAccounts(strings.NewReader(accountsJSONL))
	input := `{"date":"2010-06-01","category":"transfer","from":"Bank","to":"Nowhere","amount":500}`
	_, err := DecodeLedger(strings.NewReader(input), accounts)
	if !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("DecodeLedger() error = %v, want %v", err, ErrUnknownAccount)
	}
	if err != nil && !strings.Contains(err.Error(), "line 1") {
		t.Errorf("DecodeLedger() error = %v, want the line number", err)
	}
}

func TestDecodeMarketData(t *testing.T) {
	input := `{"date":"2011-04-01","account":"Fund","price":60.25}
{"date":"2010-01-01","account":"Saver","rate":2.5,"maturity":"2013-01-31"}
{"date":"2010-04-01","account":"Fund","price":50}
`
	m, err := DecodeMarketData(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeMarketData() error = %v", err)
	}
	day, p, ok := m.LatestPrice("Fund", date.MustParse("2011-01-01"))
	if !ok || day != date.MustParse("2010-04-01") || !p.Equal(P(50, "GBP")) {
		t.Errorf("LatestPrice() = %v, %v, %v", day, p, ok)
	}
	_, r, ok := m.LatestRate("Saver", date.MustParse("2011-01-01"))
	if !ok || !r.Rate.Equal(Pct(2.5)) || r.Maturity != date.MustParse("2013-01-31") {
		t.Errorf("LatestRate() = %v, %v", r, ok)
	}
	if diff := cmp.Diff([]string{"Fund", "Saver"}, m.Accounts()); diff != "" {
		t.Errorf("Accounts() mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := EncodeMarketData(&buf, m); err != nil {
		t.Fatalf("EncodeMarketData() error = %v", err)
	}
	want := `{"date":"2010-04-01","account":"Fund","price":50}
{"date":"2011-04-01","account":"Fund","price":60.25}
{"date":"2010-01-01","account":"Saver","rate":2.5,"maturity":"2013-01-31"}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeMarketData() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMarketData_NoValue(t *testing.T) {
	if _, err := DecodeMarketData(strings.NewReader(`{"date":"2011-04-01","account":"Fund"}`)); err == nil {
		t.Errorf("DecodeMarketData() succeeded, want an error")
	}
}

func TestDecode_Currency(t *testing.T) {
	accounts, _ := DecodeAccounts(strings.NewReader(accountsJSONL))
	tests := []struct {
		name   string
		decode func() error
		want   error
	}{
		{"ledger default", func() error {
			_, err := DecodeLedger(strings.NewReader(`{"date":"2010-06-01","category":"transfer","from":"Bank","to":"Fund","amount":500,"currency":"GBP"}`), accounts)
			return err
		}, nil},
		{"ledger foreign", func() error {
			_, err := DecodeLedger(strings.NewReader(`{"date":"2010-06-01","category":"transfer","from":"Bank","to":"Fund","amount":500,"currency":"USD"}`), accounts)
			return err
		}, ErrCurrency},
		{"market default", func() error {
			_, err := DecodeMarketData(strings.NewReader(`{"date":"2011-04-01","account":"Fund","price":60,"currency":"GBP"}`))
			return err
		}, nil},
		{"market foreign", func() error {
			_, err := DecodeMarketData(strings.NewReader(`{"date":"2011-04-01","account":"Fund","price":60,"currency":"USD"}`))
			return err
		}, ErrCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.decode(); !errors.Is(err, tt.want) {
				t.Errorf("decode error = %v, want %v", err, tt.want)
			}
		})
	}
}
