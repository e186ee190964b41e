package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

func date(s string) time.Time {
	t, err := ledger.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFindCandidates_ExactAmountAndDate(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{
		ID:     "bt-1",
		Date:   date("2025-03-10"),
		Amount: dec("185.50"),
	}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Amount: dec("185.50"), Date: date("2025-03-10")},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, "tx-1", candidates[0].EntityID)
	assert.Equal(t, MatchTypeTransaction, candidates[0].MatchType)
	assert.Equal(t, 80, candidates[0].Score)
	assert.Equal(t, ConfidenceHigh, candidates[0].Confidence())
}

func TestFindCandidates_DateWithinWindow(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-10"), Amount: dec("185.50")}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Amount: dec("185.50"), Date: date("2025-03-05")},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, 65, candidates[0].Score)
	assert.Equal(t, ConfidenceMedium, candidates[0].Confidence())
}

func TestFindCandidates_DateOutsideWindow(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-10"), Amount: dec("185.50")}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Amount: dec("185.50"), Date: date("2025-03-01")},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, 50, candidates[0].Score)
	assert.Equal(t, ConfidenceMedium, candidates[0].Confidence())
}

func TestFindCandidates_UnequalAmountGetsDateTermOnly(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-10"), Amount: dec("185.50")}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Amount: dec("185.49"), Date: date("2025-03-10")},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, 30, candidates[0].Score)
	assert.Equal(t, ConfidenceLow, candidates[0].Confidence())
}

func TestFindCandidates_NoAmountNoDateScoresNothing(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-10"), Amount: dec("185.50")}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Amount: dec("99.00"), Date: date("2025-01-02")},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	assert.Empty(t, candidates)
}

func TestFindCandidates_SkipsReconciledTransactions(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-10"), Amount: dec("185.50")}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeIncome, Amount: dec("185.50"), Date: date("2025-03-10"), Reconciled: true},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	assert.Empty(t, candidates)
}

func TestFindCandidates_CrediteurOnDay(t *testing.T) {
	m := New(DefaultConfig())

	// Outgoing payment on the 15th, crediteur expects the 15th.
	bank := ledger.BankTransaction{
		ID:           "bt-1",
		Date:         date("2025-03-15"),
		Amount:       dec("-150.50"),
		Counterparty: "Vattenfall",
	}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Elektra", Amount: dec("150.50"), Day: 15, Active: true},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	require.Len(t, candidates, 1)
	assert.Equal(t, MatchTypeCrediteur, candidates[0].MatchType)
	assert.Equal(t, 80, candidates[0].Score)
	assert.Equal(t, ConfidenceHigh, candidates[0].Confidence())
}

func TestFindCandidates_CrediteurNearDay(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-17"), Amount: dec("-150.50")}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Elektra", Amount: dec("150.50"), Day: 15, Active: true},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	require.Len(t, candidates, 1)
	assert.Equal(t, 65, candidates[0].Score)
}

func TestFindCandidates_CrediteurIgnoredForIncomingMoney(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-15"), Amount: dec("150.50")}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Elektra", Amount: dec("150.50"), Day: 15, Active: true},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	assert.Empty(t, candidates)
}

func TestFindCandidates_InactiveCrediteurSkipped(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-15"), Amount: dec("-150.50")}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Elektra", Amount: dec("150.50"), Day: 15, Active: false},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	assert.Empty(t, candidates)
}

func TestFindCandidates_CrediteurDayClippedToMonthEnd(t *testing.T) {
	m := New(DefaultConfig())

	// Crediteur set to day 31; in February the expectation lands on
	// the last calendar day.
	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-02-28"), Amount: dec("-900.00")}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Huur", Amount: dec("900.00"), Day: 31, Active: true},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	require.Len(t, candidates, 1)
	assert.Equal(t, 80, candidates[0].Score)
}

func TestFindCandidates_CrediteurDayCyclicDistance(t *testing.T) {
	m := New(DefaultConfig())

	// Payment on the 1st against a day-31 crediteur is one day late,
	// not thirty days early.
	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-04-01"), Amount: dec("-900.00")}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Huur", Amount: dec("900.00"), Day: 31, Active: true},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	require.Len(t, candidates, 1)
	assert.Equal(t, 65, candidates[0].Score)
}

func TestFindCandidates_AmountToleranceAdmitsNearMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AmountTolerance = dec("1.00")
	m := New(cfg)

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-15"), Amount: dec("-150.75")}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Elektra", Amount: dec("150.50"), Day: 15, Active: true},
	}

	candidates := m.FindCandidates(bank, nil, crediteuren)
	require.Len(t, candidates, 1)
	assert.Equal(t, 65, candidates[0].Score)
	assert.Equal(t, ConfidenceMedium, candidates[0].Confidence())
}

func TestFindCandidates_BothPoolsOrderedByScore(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-15"), Amount: dec("-150.50")}
	txs := []ledger.Transaction{
		{ID: "tx-1", Type: ledger.TypeExpense, Amount: dec("150.50"), Date: date("2025-03-12")},
	}
	crediteuren := []ledger.Crediteur{
		{ID: "cr-1", Name: "Elektra", Amount: dec("150.50"), Day: 15, Active: true},
	}

	candidates := m.FindCandidates(bank, txs, crediteuren)
	require.Len(t, candidates, 2)
	assert.Equal(t, "cr-1", candidates[0].EntityID)
	assert.Equal(t, 80, candidates[0].Score)
	assert.Equal(t, "tx-1", candidates[1].EntityID)
	assert.Equal(t, 65, candidates[1].Score)
}

func TestFindCandidates_TieBrokenByDateDistanceThenID(t *testing.T) {
	m := New(DefaultConfig())

	bank := ledger.BankTransaction{ID: "bt-1", Date: date("2025-03-10"), Amount: dec("100.00")}
	txs := []ledger.Transaction{
		{ID: "tx-b", Type: ledger.TypeIncome, Amount: dec("100.00"), Date: date("2025-03-07")},
		{ID: "tx-a", Type: ledger.TypeIncome, Amount: dec("100.00"), Date: date("2025-03-08")},
		{ID: "tx-c", Type: ledger.TypeIncome, Amount: dec("100.00"), Date: date("2025-03-08")},
	}

	candidates := m.FindCandidates(bank, txs, nil)
	require.Len(t, candidates, 3)
	assert.Equal(t, "tx-a", candidates[0].EntityID)
	assert.Equal(t, "tx-c", candidates[1].EntityID)
	assert.Equal(t, "tx-b", candidates[2].EntityID)
}

func TestConfidenceBands(t *testing.T) {
	assert.Equal(t, ConfidenceLow, Candidate{Score: 49}.Confidence())
	assert.Equal(t, ConfidenceMedium, Candidate{Score: 50}.Confidence())
	assert.Equal(t, ConfidenceMedium, Candidate{Score: 79}.Confidence())
	assert.Equal(t, ConfidenceHigh, Candidate{Score: 80}.Confidence())
}
