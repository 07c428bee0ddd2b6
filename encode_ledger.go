package taxbook

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxbook/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jsonAccount is an account line of the accounts file.
type jsonAccount struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Parent string `json:"parent,omitempty"`
}

// DecodeAccounts reads accounts from JSONL, one account per line.
func DecodeAccounts(r io.Reader) (*Accounts, error) {
	accounts := NewAccounts()
	err := scanLines(r, func(line []byte) error {
		var a jsonAccount
		if err := json.Unmarshal(line, &a); err != nil {
			return err
		}
		if a.Name == "" {
			return errors.New("account without a name")
		}
		typ, err := ParseAccountType(a.Type)
		if err != nil {
			return err
		}
		if _, exists := accounts.Account(a.Name); exists {
			return fmt.Errorf("account %q declared twice", a.Name)
		}
		accounts.Add(&Account{Name: a.Name, Type: typ, Parent: a.Parent})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// EncodeAccounts writes accounts in JSONL, sorted by name.
func EncodeAccounts(w io.Writer, accounts *Accounts) error {
	for a := range accounts.All() {
		if err := encodeLine(w, a); err != nil {
			return err
		}
	}
	return nil
}

func (a *Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", a.Name).
		Append("type", a.Type.String()).
		Optional("parent", a.Parent)
	return w.MarshalJSON()
}

// jsonTransaction is a transaction line of the ledger file.
type jsonTransaction struct {
	Date        date.Date       `json:"date"`
	Category    string          `json:"category"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	TaxCredit   decimal.Decimal `json:"taxCredit"`
	Units       Units           `json:"units"`
	Years       int             `json:"years,omitempty"`
	Description string          `json:"description,omitempty"`
	Deleted     bool            `json:"deleted,omitempty"`
}

// DecodeLedger reads transactions from JSONL, one transaction per line.
// Account names are resolved in accounts.
func DecodeLedger(r io.Reader, accounts AccountDirectory) (*Ledger, error) {
	ledger := NewLedger()
	err := scanLines(r, func(line []byte) error {
		var j jsonTransaction
		if err := json.Unmarshal(line, &j); err != nil {
			return err
		}
		cat, err := ParseCategory(j.Category)
		if err != nil {
			return err
		}
		from, err := lookup(accounts, j.From)
		if err != nil {
			return err
		}
		to, err := lookup(accounts, j.To)
		if err != nil {
			return err
		}
		cur, err := parseCurrency(j.Currency)
		if err != nil {
			return err
		}
		ledger.Append(&Transaction{
			Date:        j.Date,
			Description: j.Description,
			Amount:      M(j.Amount, cur),
			Debit:       from,
			Credit:      to,
			Category:    cat,
			Units:       j.Units,
			TaxCredit:   M(j.TaxCredit, cur),
			Years:       j.Years,
			Deleted:     j.Deleted,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func lookup(accounts AccountDirectory, name string) (*Account, error) {
	if name == "" {
		return nil, errors.New("missing account")
	}
	a, ok := accounts.Account(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAccount, name)
	}
	return a, nil
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date).
		Append("category", t.Category.String()).
		Append("from", t.Debit.Name).
		Append("to", t.Credit.Name).
		Append("amount", t.Amount).
		Optional("currency", foreign(t.Amount.Currency())).
		Optional("taxCredit", t.TaxCredit).
		Optional("units", t.Units).
		Optional("years", t.Years).
		Optional("description", t.Description).
		Optional("deleted", t.Deleted)
	return w.MarshalJSON()
}

// EncodeLedger writes every transaction in date order in JSONL, deleted
// ones included.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, t := range ledger.transactions {
		if err := encodeLine(w, t); err != nil {
			return err
		}
	}
	return nil
}

// encodeLine writes v as a single JSON line.
func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %v: %w", v, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

// scanLines calls decode for every non blank line of r. Errors are reported
// with their line number.
func scanLines(r io.Reader, decode func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from input: %w", err)
	}
	return nil
}
