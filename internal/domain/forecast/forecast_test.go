package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var today = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

func baseInput(horizon int) Input {
	return Input{
		Today:           today,
		Horizon:         horizon,
		StartingBalance: dec("10000.00"),
		HasBaseline:     true,
	}
}

func TestCompute_RequiresBaseline(t *testing.T) {
	in := baseInput(30)
	in.HasBaseline = false

	_, err := Compute(in)
	assert.ErrorIs(t, err, ErrNoBaselineBalance)
}

func TestCompute_RejectsZeroHorizon(t *testing.T) {
	_, err := Compute(baseInput(0))
	assert.Error(t, err)
}

func TestCompute_EmptyInputHoldsBalance(t *testing.T) {
	f, err := Compute(baseInput(14))
	require.NoError(t, err)

	assert.Len(t, f.Days, 14)
	assert.True(t, f.TotalExpectedIncome.IsZero())
	assert.True(t, f.TotalExpectedExpenses.IsZero())
	assert.True(t, f.FinalBalance.Equal(dec("10000.00")))

	// Days are consecutive starting today.
	for i, day := range f.Days {
		assert.Equal(t, today.AddDate(0, 0, i), day.Date)
		assert.True(t, day.Balance.Equal(dec("10000.00")))
	}
}

func TestCompute_CrediteurReducesBalance(t *testing.T) {
	in := baseInput(31)
	in.Crediteuren = []ledger.Crediteur{
		{ID: "cr-1", Name: "Huur praktijk", Amount: dec("1200.00"), Day: 1, Active: true},
	}

	f, err := Compute(in)
	require.NoError(t, err)

	assert.True(t, f.TotalExpectedExpenses.Equal(dec("-1200.00")), "got %s", f.TotalExpectedExpenses)
	assert.True(t, f.FinalBalance.Equal(dec("8800.00")), "got %s", f.FinalBalance)

	day0 := f.Days[0]
	require.Len(t, day0.Items, 1)
	assert.Equal(t, KindCrediteur, day0.Items[0].Kind)
	assert.True(t, day0.Items[0].Amount.Equal(dec("-1200.00")))
	assert.True(t, day0.Balance.Equal(dec("8800.00")))
}

func TestCompute_InactiveCrediteurIgnored(t *testing.T) {
	in := baseInput(31)
	in.Crediteuren = []ledger.Crediteur{
		{ID: "cr-1", Name: "Oud contract", Amount: dec("500.00"), Day: 1, Active: false},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	assert.True(t, f.TotalExpectedExpenses.IsZero())
}

func TestCompute_CrediteurFiresTwiceOverTwoMonths(t *testing.T) {
	in := baseInput(60)
	in.Crediteuren = []ledger.Crediteur{
		{ID: "cr-1", Name: "Huur", Amount: dec("1200.00"), Day: 1, Active: true},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	assert.True(t, f.TotalExpectedExpenses.Equal(dec("-2400.00")))
	assert.True(t, f.FinalBalance.Equal(dec("7600.00")))
}

func TestCompute_DeclaratieUsesVerzekeraarTerm(t *testing.T) {
	in := baseInput(30)
	in.Verzekeraars = []ledger.Verzekeraar{
		{ID: "vz-1", Name: "Zilveren Kruis", PaymentTermDays: 21},
	}
	in.Declaraties = []ledger.Transaction{
		{
			ID:          "tx-1",
			Type:        ledger.TypeIncome,
			Category:    ledger.CategoryZorgverzekeraar,
			Amount:      dec("450.00"),
			Description: "Declaratie Zilveren Kruis week 9",
			Date:        today,
		},
	}

	f, err := Compute(in)
	require.NoError(t, err)

	day := f.Days[21]
	require.Len(t, day.Items, 1)
	assert.Equal(t, KindDeclaratie, day.Items[0].Kind)
	assert.True(t, f.TotalExpectedIncome.Equal(dec("450.00")))
	assert.True(t, f.FinalBalance.Equal(dec("10450.00")))
}

func TestCompute_DeclaratieDefaultTermWhenInsurerUnknown(t *testing.T) {
	in := baseInput(31)
	in.Declaraties = []ledger.Transaction{
		{
			ID:          "tx-1",
			Type:        ledger.TypeIncome,
			Category:    ledger.CategoryZorgverzekeraar,
			Amount:      dec("450.00"),
			Description: "Declaratie week 9",
			Date:        today,
		},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	require.Len(t, f.Days[DefaultDeclaratieTermDays].Items, 1)
}

func TestCompute_ParticulierUsesShortTerm(t *testing.T) {
	in := baseInput(30)
	in.Declaraties = []ledger.Transaction{
		{
			ID:       "tx-1",
			Type:     ledger.TypeIncome,
			Category: ledger.CategoryParticulier,
			Amount:   dec("85.00"),
			Date:     today,
		},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	require.Len(t, f.Days[DefaultParticulierTermDays].Items, 1)
}

func TestCompute_OverdueDeclaratieLandsToday(t *testing.T) {
	in := baseInput(30)
	in.Declaraties = []ledger.Transaction{
		{
			ID:       "tx-1",
			Type:     ledger.TypeIncome,
			Category: ledger.CategoryParticulier,
			Amount:   dec("85.00"),
			Date:     today.AddDate(0, 0, -60),
		},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	require.Len(t, f.Days[0].Items, 1)
	assert.True(t, f.Days[0].Income.Equal(dec("85.00")))
}

func TestCompute_ReconciledDeclaratieExcluded(t *testing.T) {
	in := baseInput(30)
	in.Declaraties = []ledger.Transaction{
		{
			ID:         "tx-1",
			Type:       ledger.TypeIncome,
			Category:   ledger.CategoryParticulier,
			Amount:     dec("85.00"),
			Date:       today,
			Reconciled: true,
		},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	assert.True(t, f.TotalExpectedIncome.IsZero())
}

func TestCompute_DeclaratieBeyondHorizonDropped(t *testing.T) {
	in := baseInput(10)
	in.Declaraties = []ledger.Transaction{
		{
			ID:       "tx-1",
			Type:     ledger.TypeIncome,
			Category: ledger.CategoryParticulier,
			Amount:   dec("85.00"),
			Date:     today, // lands on day 14, outside the horizon
		},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	assert.True(t, f.TotalExpectedIncome.IsZero())
}

func TestCompute_OneOffOverigeOmzet(t *testing.T) {
	in := baseInput(30)
	in.OverigeOmzet = []ledger.OverigeOmzet{
		{ID: "om-1", Description: "Fysiofitness abonnementen", Amount: dec("300.00"), Date: today.AddDate(0, 0, 5)},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	require.Len(t, f.Days[5].Items, 1)
	assert.Equal(t, KindOverigeOmzet, f.Days[5].Items[0].Kind)
	assert.True(t, f.FinalBalance.Equal(dec("10300.00")))
}

func TestCompute_RecurringOverigeOmzet(t *testing.T) {
	in := baseInput(62)
	in.OverigeOmzet = []ledger.OverigeOmzet{
		{ID: "om-1", Description: "Zaalhuur onderverhuur", Amount: dec("250.00"), Date: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), Recurring: true},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	// March 10 and April 10 fall in the window.
	assert.True(t, f.TotalExpectedIncome.Equal(dec("500.00")))
}

func TestCompute_UnmatchedCorrectieSubtracts(t *testing.T) {
	in := baseInput(30)
	in.Correcties = []ledger.Correctie{
		{ID: "co-1", CorrectionType: ledger.CorrectionCreditfactuurParticulier, Amount: dec("60.00"), Date: today.AddDate(0, 0, 3), Description: "Creditfactuur"},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	require.Len(t, f.Days[3].Items, 1)
	assert.True(t, f.Days[3].Items[0].Amount.Equal(dec("-60.00")))
	assert.True(t, f.FinalBalance.Equal(dec("9940.00")))
}

func TestCompute_OverdueCorrectieLandsToday(t *testing.T) {
	in := baseInput(30)
	in.Correcties = []ledger.Correctie{
		{ID: "co-1", CorrectionType: ledger.CorrectionCreditfactuurParticulier, Amount: dec("60.00"), Date: today.AddDate(0, 0, -5), Description: "Creditfactuur"},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	require.Len(t, f.Days[0].Items, 1)
	assert.True(t, f.Days[0].Items[0].Amount.Equal(dec("-60.00")))
	assert.True(t, f.FinalBalance.Equal(dec("9940.00")))
}

func TestCompute_MatchedCorrectieIgnored(t *testing.T) {
	in := baseInput(30)
	in.Correcties = []ledger.Correctie{
		{ID: "co-1", CorrectionType: ledger.CorrectionCreditfactuurParticulier, Amount: dec("60.00"), Date: today.AddDate(0, 0, 3), Matched: true},
	}

	f, err := Compute(in)
	require.NoError(t, err)
	assert.True(t, f.FinalBalance.Equal(dec("10000.00")))
}

func TestCompute_BalanceRecurrence(t *testing.T) {
	in := baseInput(45)
	in.Crediteuren = []ledger.Crediteur{
		{ID: "cr-1", Name: "Huur", Amount: dec("1200.00"), Day: 1, Active: true},
		{ID: "cr-2", Name: "Salaris", Amount: dec("3400.00"), Day: 25, Active: true},
	}
	in.Declaraties = []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Category: ledger.CategoryZorgverzekeraar, Amount: dec("2100.00"), Description: "Declaratie", Date: today.AddDate(0, 0, -10)},
	}
	in.OverigeOmzet = []ledger.OverigeOmzet{
		{ID: "om-1", Description: "Fitness", Amount: dec("300.00"), Date: today.AddDate(0, 0, 12)},
	}

	f, err := Compute(in)
	require.NoError(t, err)

	prev := f.CurrentBalance
	for _, day := range f.Days {
		expect := prev.Add(day.Income).Add(day.Expenses)
		assert.True(t, day.Balance.Equal(expect), "day %s: got %s want %s", day.Date, day.Balance, expect)
		prev = day.Balance
	}
	assert.True(t, f.FinalBalance.Equal(prev))
	assert.True(t, f.NetExpected.Equal(f.TotalExpectedIncome.Add(f.TotalExpectedExpenses)))
}

func TestPaymentTermFor(t *testing.T) {
	verzekeraars := []ledger.Verzekeraar{
		{ID: "vz-1", Name: "CZ", PaymentTermDays: 18},
	}

	term, ok := PaymentTermFor(ledger.Transaction{
		Category:    ledger.CategoryZorgverzekeraar,
		Description: "Declaratie CZ maart",
	}, verzekeraars)
	require.True(t, ok)
	assert.Equal(t, 18, term)

	term, ok = PaymentTermFor(ledger.Transaction{
		Category:    ledger.CategoryZorgverzekeraar,
		Description: "Declaratie maart",
	}, verzekeraars)
	require.True(t, ok)
	assert.Equal(t, DefaultDeclaratieTermDays, term)

	term, ok = PaymentTermFor(ledger.Transaction{Category: ledger.CategoryParticulier}, nil)
	require.True(t, ok)
	assert.Equal(t, DefaultParticulierTermDays, term)

	_, ok = PaymentTermFor(ledger.Transaction{Category: ledger.CategoryFysiofitness}, nil)
	assert.False(t, ok)
}
