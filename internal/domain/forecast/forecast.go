// Package forecast projects the expected bank balance day by day over a
// requested horizon by combining a baseline balance, recurring crediteur
// payments, expected declaration payouts, other revenue and outstanding
// corrections.
package forecast

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// ErrNoBaselineBalance is returned when no starting bank balance is
// configured. Forecasting from a silent zero would corrupt every
// downstream balance figure, so this is a hard failure.
var ErrNoBaselineBalance = errors.New("no baseline bank balance configured")

// Payment term defaults used when a declaration cannot be tied to a
// configured verzekeraar.
const (
	DefaultDeclaratieTermDays  = 30
	DefaultParticulierTermDays = 14
)

// Compute builds the day-indexed projection for in.Horizon consecutive
// calendar days starting at in.Today.
func Compute(in Input) (*Forecast, error) {
	if !in.HasBaseline {
		return nil, ErrNoBaselineBalance
	}
	if in.Horizon < 1 {
		return nil, fmt.Errorf("forecast horizon must be at least 1 day, got %d", in.Horizon)
	}

	today := ledger.DateOnly(in.Today)
	itemsByDay := make(map[int][]PaymentItem)

	add := func(day int, item PaymentItem) {
		itemsByDay[day] = append(itemsByDay[day], item)
	}

	// Recurring crediteur payments.
	for _, cr := range in.Crediteuren {
		if !cr.Active {
			continue
		}
		next := Schedule{Day: cr.Day}.Occurrences(today, in.Horizon)
		for occ, ok := next(); ok; occ, ok = next() {
			add(dayIndex(today, occ), PaymentItem{
				ID:          cr.ID,
				Kind:        KindCrediteur,
				Description: cr.Name,
				Amount:      cr.Amount.Neg(),
			})
		}
	}

	// Expected declaration payouts: submission date + payment term.
	// Expectations already overdue land on day 0; they are still money
	// the practice is waiting on.
	for _, tx := range in.Declaraties {
		if tx.Reconciled || tx.Type != ledger.TypeIncome {
			continue
		}
		term, ok := PaymentTermFor(tx, in.Verzekeraars)
		if !ok {
			continue
		}
		expected := ledger.DateOnly(tx.Date).AddDate(0, 0, term)
		day := dayIndex(today, expected)
		if day < 0 {
			day = 0
		}
		if day >= in.Horizon {
			continue
		}
		add(day, PaymentItem{
			ID:          tx.ID,
			Kind:        KindDeclaratie,
			Description: tx.Description,
			Amount:      tx.Amount,
		})
	}

	// Other revenue: one-off on its date, recurring monthly.
	for _, om := range in.OverigeOmzet {
		if om.Recurring {
			next := Schedule{Day: om.Date.Day()}.Occurrences(today, in.Horizon)
			for occ, ok := next(); ok; occ, ok = next() {
				add(dayIndex(today, occ), PaymentItem{
					ID:          om.ID,
					Kind:        KindOverigeOmzet,
					Description: om.Description,
					Amount:      om.Amount,
				})
			}
			continue
		}
		day := dayIndex(today, ledger.DateOnly(om.Date))
		if day < 0 || day >= in.Horizon {
			continue
		}
		add(day, PaymentItem{
			ID:          om.ID,
			Kind:        KindOverigeOmzet,
			Description: om.Description,
			Amount:      om.Amount,
		})
	}

	// Outstanding corrections reduce expected receipts on their date.
	// Like overdue declarations, corrections dated before today land on
	// day 0: unmatched means the money is still going out.
	for _, co := range in.Correcties {
		if co.Matched {
			continue
		}
		day := dayIndex(today, ledger.DateOnly(co.Date))
		if day < 0 {
			day = 0
		}
		if day >= in.Horizon {
			continue
		}
		add(day, PaymentItem{
			ID:          co.ID,
			Kind:        KindCorrectie,
			Description: co.Description,
			Amount:      co.Amount.Neg(),
		})
	}

	out := &Forecast{
		CurrentBalance:        in.StartingBalance,
		TotalExpectedIncome:   decimal.Zero,
		TotalExpectedExpenses: decimal.Zero,
		Days:                  make([]ForecastDay, 0, in.Horizon),
	}

	balance := in.StartingBalance
	for i := 0; i < in.Horizon; i++ {
		day := ForecastDay{
			Date:     today.AddDate(0, 0, i),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Items:    itemsByDay[i],
		}
		for _, item := range day.Items {
			if item.Amount.Sign() >= 0 {
				day.Income = day.Income.Add(item.Amount)
			} else {
				day.Expenses = day.Expenses.Add(item.Amount)
			}
		}
		balance = balance.Add(day.Income).Add(day.Expenses)
		day.Balance = balance

		out.TotalExpectedIncome = out.TotalExpectedIncome.Add(day.Income)
		out.TotalExpectedExpenses = out.TotalExpectedExpenses.Add(day.Expenses)
		out.Days = append(out.Days, day)
	}

	out.NetExpected = out.TotalExpectedIncome.Add(out.TotalExpectedExpenses)
	out.FinalBalance = balance

	return out, nil
}

// PaymentTermFor resolves the expected payment term in days for a
// receivable. Insurer declarations use the matching verzekeraar's term
// (matched by name in the description), particulier invoices a fixed
// short term. Other categories are not projected; ok is false.
func PaymentTermFor(tx ledger.Transaction, verzekeraars []ledger.Verzekeraar) (int, bool) {
	switch tx.Category {
	case ledger.CategoryZorgverzekeraar:
		desc := strings.ToLower(tx.Description)
		for _, v := range verzekeraars {
			if v.Name != "" && strings.Contains(desc, strings.ToLower(v.Name)) {
				return v.PaymentTermDays, true
			}
		}
		return DefaultDeclaratieTermDays, true
	case ledger.CategoryParticulier:
		return DefaultParticulierTermDays, true
	}
	return 0, false
}

// dayIndex is the offset in whole days of date from today; negative for
// past dates.
func dayIndex(today, date time.Time) int {
	return int(ledger.DateOnly(date).Sub(today).Hours() / 24)
}
