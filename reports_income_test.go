package taxbook

import (
	"testing"
)

func incomeBucket(t *testing.T, r *IncomeReport, a *Account) *IncomeBucket {
	t.Helper()
	b, ok := r.Account(a)
	if !ok {
		t.Fatalf("Account(%s) not found", a)
	}
	return b
}

func TestIncomeReport_ProcessTransaction(t *testing.T) {
	tests := []struct {
		name        string
		txs         []*Transaction
		account     *Account
		wantIncome  Money
		wantExpense Money
	}{
		{
			name:       "salary",
			txs:        []*Transaction{tx("2010-05-01", Salary, 1000, employer, bank)},
			account:    employer,
			wantIncome: GBP(1000),
		},
		{
			name:        "expense",
			txs:         []*Transaction{tx("2010-05-01", Expense, 300, bank, shop)},
			account:     shop,
			wantExpense: GBP(300),
		},
		{
			name: "recovery reduces the expense",
			txs: []*Transaction{
				tx("2010-05-01", Expense, 300, bank, shop),
				tx("2010-05-02", Recovery, 100, shop, bank),
			},
			account:     shop,
			wantExpense: GBP(200),
		},
		{
			name: "negative expense becomes income",
			txs: []*Transaction{
				tx("2010-05-01", Expense, 300, bank, shop),
				tx("2010-05-02", Recovery, 400, shop, bank),
			},
			account:    shop,
			wantIncome: GBP(100),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewIncomeReport(nil)
			for _, trx := range tt.txs {
				r.ProcessTransaction(trx)
			}
			b := incomeBucket(t, r, tt.account)
			if !b.Income.Equal(tt.wantIncome) {
				t.Errorf("Income = %v, want %v", b.Income, tt.wantIncome)
			}
			if !b.Expense.Equal(tt.wantExpense) {
				t.Errorf("Expense = %v, want %v", b.Expense, tt.wantExpense)
			}
			if _, ok := r.Account(bank); ok {
				t.Errorf("asset account %s has an income bucket", bank)
			}
		})
	}
}

func TestIncomeReport_AddMarketMovement(t *testing.T) {
	m := NewAccount("Market", Market)
	r := NewIncomeReport(m)
	r.AddMarketMovement(&AssetBucket{Market: GBP(100)})
	r.AddMarketMovement(&AssetBucket{Market: GBP(-30)})
	r.AddMarketMovement(&AssetBucket{})

	b := incomeBucket(t, r, m)
	if got, want := b.Income, GBP(100); !got.Equal(want) {
		t.Errorf("Income = %v, want %v", got, want)
	}
	if got, want := b.Expense, GBP(30); !got.Equal(want) {
		t.Errorf("Expense = %v, want %v", got, want)
	}
}

func TestIncomeReport_Totals(t *testing.T) {
	r := NewIncomeReport(nil)
	r.ProcessTransaction(tx("2010-05-01", Salary, 1000, employer, bank))
	r.ProcessTransaction(tx("2010-05-02", Expense, 300, bank, shop))
	r.ProcessTransaction(tx("2010-05-03", TaxPaid, 200, bank, taxman))

	total := r.Total()
	if got, want := total.Income, GBP(1000); !got.Equal(want) {
		t.Errorf("Total().Income = %v, want %v", got, want)
	}
	if got, want := total.Expense, GBP(500); !got.Equal(want) {
		t.Errorf("Total().Expense = %v, want %v", got, want)
	}
	if got, want := total.Net(), GBP(500); !got.Equal(want) {
		t.Errorf("Total().Net() = %v, want %v", got, want)
	}

	var sum Money
	for b := range r.Details() {
		sum = sum.Add(b.Net())
	}
	if !sum.Equal(total.Net()) {
		t.Errorf("sum of details = %v, want %v", sum, total.Net())
	}
}

func TestIncomeReport_ProcessAfterTotal(t *testing.T) {
	r := NewIncomeReport(nil)
	r.ProcessTransaction(tx("2010-05-01", Expense, 100, bank, shop))
	r.ProcessTransaction(tx("2010-05-02", Recovery, 150, shop, bank))
	if got, want := r.Total().Income, GBP(50); !got.Equal(want) {
		t.Errorf("first Total().Income = %v, want %v", got, want)
	}
	r.ProcessTransaction(tx("2010-05-03", Expense, 80, bank, shop))

	b := incomeBucket(t, r, shop)
	if !b.Income.IsZero() {
		t.Errorf("Income = %v, want zero", b.Income)
	}
	if got, want := b.Expense, GBP(30); !got.Equal(want) {
		t.Errorf("Expense = %v, want %v", got, want)
	}
}

func TestIncomeReport_Seed(t *testing.T) {
	prev := NewIncomeReport(nil)
	prev.ProcessTransaction(tx("2010-05-01", Salary, 1000, employer, bank))
	prev.ProcessTransaction(tx("2010-05-02", Expense, 300, bank, shop))
	prev.ProcessTransaction(tx("2010-05-03", Recovery, 400, shop, bank))

	r := NewIncomeReport(nil)
	r.seed(prev)

	b := incomeBucket(t, r, employer)
	if got, want := b.PriorIncome, GBP(1000); !got.Equal(want) {
		t.Errorf("PriorIncome = %v, want %v", got, want)
	}
	if !b.Income.IsZero() {
		t.Errorf("Income = %v, want zero", b.Income)
	}
	// seeded from the normalized closing values.
	s := incomeBucket(t, r, shop)
	if got, want := s.PriorIncome, GBP(100); !got.Equal(want) {
		t.Errorf("Shop.PriorIncome = %v, want %v", got, want)
	}
	if !s.PriorExpense.IsZero() {
		t.Errorf("Shop.PriorExpense = %v, want zero", s.PriorExpense)
	}
}
