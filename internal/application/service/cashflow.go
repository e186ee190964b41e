package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

// DailyCashflow is the realized cashflow of a single day, broken down
// per category. Credits reduce income within their category.
type DailyCashflow struct {
	Date              time.Time
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetCashflow       decimal.Decimal
	TransactionCount  int
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
}

// DailyCashflow aggregates the ledger transactions recorded on a date.
func (s *LedgerService) DailyCashflow(ctx context.Context, date time.Time) (*DailyCashflow, error) {
	day := ledger.DateOnly(date)
	transactions, err := s.repo.ListTransactions(storage.TransactionFilters{
		StartDate: &day,
		EndDate:   &day,
	})
	if err != nil {
		return nil, err
	}

	out := &DailyCashflow{
		Date:              day,
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		TransactionCount:  len(transactions),
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}

	for _, tx := range transactions {
		switch tx.Type {
		case ledger.TypeIncome:
			out.TotalIncome = out.TotalIncome.Add(tx.Amount)
			out.IncomeByCategory[tx.Category] = out.IncomeByCategory[tx.Category].Add(tx.Amount)
		case ledger.TypeExpense:
			out.TotalExpenses = out.TotalExpenses.Add(tx.Amount)
			out.ExpenseByCategory[tx.Category] = out.ExpenseByCategory[tx.Category].Add(tx.Amount)
		case ledger.TypeCredit, ledger.TypeCorrection:
			out.TotalIncome = out.TotalIncome.Sub(tx.Amount)
			out.IncomeByCategory[tx.Category] = out.IncomeByCategory[tx.Category].Sub(tx.Amount)
		}
	}

	out.NetCashflow = out.TotalIncome.Sub(out.TotalExpenses)
	return out, nil
}

// CashflowSummary rolls up today's cashflow with week and month totals.
type CashflowSummary struct {
	Today             *DailyCashflow
	ThisWeek          decimal.Decimal
	ThisMonth         decimal.Decimal
	TotalTransactions int
}

// CashflowSummary aggregates realized cashflow for today, the current
// week (Monday-based) and the current month.
func (s *LedgerService) CashflowSummary(ctx context.Context, now time.Time) (*CashflowSummary, error) {
	today, err := s.DailyCashflow(ctx, now)
	if err != nil {
		return nil, err
	}

	day := ledger.DateOnly(now)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	weekStart := day.AddDate(0, 0, -(weekday - 1))
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	thisWeek, err := s.netBetween(ctx, weekStart, day)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.netBetween(ctx, monthStart, day)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListTransactions(storage.TransactionFilters{})
	if err != nil {
		return nil, err
	}

	return &CashflowSummary{
		Today:             today,
		ThisWeek:          thisWeek,
		ThisMonth:         thisMonth,
		TotalTransactions: len(all),
	}, nil
}

func (s *LedgerService) netBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	transactions, err := s.repo.ListTransactions(storage.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return decimal.Zero, err
	}

	net := decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case ledger.TypeIncome:
			net = net.Add(tx.Amount)
		case ledger.TypeExpense, ledger.TypeCredit, ledger.TypeCorrection:
			net = net.Sub(tx.Amount)
		}
	}
	return net, nil
}
