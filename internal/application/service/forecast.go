package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/forecast"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

// ForecastService assembles a consistent snapshot from storage and
// delegates projection to the pure aggregator. The clock is injected so
// forecasts are reproducible in tests.
type ForecastService struct {
	repo   storage.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewForecastService creates a ForecastService using the wall clock.
func NewForecastService(repo storage.Repository, logger *slog.Logger) *ForecastService {
	return NewForecastServiceWithClock(repo, logger, time.Now)
}

// NewForecastServiceWithClock creates a ForecastService with a custom
// clock.
func NewForecastServiceWithClock(repo storage.Repository, logger *slog.Logger, now func() time.Time) *ForecastService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastService{repo: repo, logger: logger, now: now}
}

// ComputeForecast projects the expected balance for the given number of
// days starting today. A missing baseline balance surfaces as
// forecast.ErrNoBaselineBalance.
func (s *ForecastService) ComputeForecast(ctx context.Context, days int) (*forecast.Forecast, error) {
	if days < 1 {
		return nil, NewValidationError("days", "must be a positive number of days")
	}

	in := forecast.Input{
		Today:   s.now(),
		Horizon: days,
	}

	saldo, err := s.repo.LatestBankSaldo()
	switch {
	case err == nil:
		in.StartingBalance = saldo.Saldo
		in.HasBaseline = true
	case errors.Is(err, storage.ErrNotFound):
		// Compute reports ErrNoBaselineBalance.
	default:
		return nil, err
	}

	if in.Crediteuren, err = s.repo.ListCrediteuren(true); err != nil {
		return nil, err
	}
	reconciled := false
	if in.Declaraties, err = s.repo.ListTransactions(storage.TransactionFilters{
		Type:       ledger.TypeIncome,
		Reconciled: &reconciled,
	}); err != nil {
		return nil, err
	}
	if in.Verzekeraars, err = s.repo.ListVerzekeraars(); err != nil {
		return nil, err
	}
	if in.OverigeOmzet, err = s.repo.ListOverigeOmzet(); err != nil {
		return nil, err
	}
	if in.Correcties, err = s.repo.ListCorrecties(true); err != nil {
		return nil, err
	}

	out, err := forecast.Compute(in)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("forecast computed",
		"days", days,
		"final_balance", out.FinalBalance.StringFixed(2))
	return out, nil
}

// VerwachteBetaling is one upcoming expected payment: a declaration
// payout or a crediteur debit.
type VerwachteBetaling struct {
	ID           string
	Kind         forecast.ItemKind
	Description  string
	Amount       decimal.Decimal // signed
	ExpectedDate time.Time
	Overdue      bool
}

// VerwachteBetalingen returns the flat list of expected payments for
// the next 30 days (plus overdue declaration payouts), ordered by
// expected date.
func (s *ForecastService) VerwachteBetalingen(ctx context.Context) ([]VerwachteBetaling, error) {
	const windowDays = 30

	today := ledger.DateOnly(s.now())
	var out []VerwachteBetaling

	reconciled := false
	declaraties, err := s.repo.ListTransactions(storage.TransactionFilters{
		Type:       ledger.TypeIncome,
		Reconciled: &reconciled,
	})
	if err != nil {
		return nil, err
	}
	verzekeraars, err := s.repo.ListVerzekeraars()
	if err != nil {
		return nil, err
	}
	for _, tx := range declaraties {
		term, ok := forecast.PaymentTermFor(tx, verzekeraars)
		if !ok {
			continue
		}
		expected := ledger.DateOnly(tx.Date).AddDate(0, 0, term)
		if expected.After(today.AddDate(0, 0, windowDays)) {
			continue
		}
		out = append(out, VerwachteBetaling{
			ID:           tx.ID,
			Kind:         forecast.KindDeclaratie,
			Description:  tx.Description,
			Amount:       tx.Amount,
			ExpectedDate: expected,
			Overdue:      expected.Before(today),
		})
	}

	crediteuren, err := s.repo.ListCrediteuren(true)
	if err != nil {
		return nil, err
	}
	for _, cr := range crediteuren {
		next := forecast.Schedule{Day: cr.Day}.Occurrences(today, windowDays)
		for occ, ok := next(); ok; occ, ok = next() {
			out = append(out, VerwachteBetaling{
				ID:           cr.ID,
				Kind:         forecast.KindCrediteur,
				Description:  cr.Name,
				Amount:       cr.Amount.Neg(),
				ExpectedDate: occ,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ExpectedDate.Equal(out[j].ExpectedDate) {
			return out[i].ExpectedDate.Before(out[j].ExpectedDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LineItemPatch carries the editable fields of a forecast line item.
// Nil fields are left unchanged.
type LineItemPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
}

// EditLineItem propagates an edit of a projected line item back to the
// underlying record identified by kind. Forecast items are projections:
// editing the projection edits its source.
func (s *ForecastService) EditLineItem(ctx context.Context, itemID string, kind forecast.ItemKind, patch LineItemPatch) error {
	if !forecast.ValidItemKind(kind) {
		return NewValidationError("item_kind", fmt.Sprintf("unknown kind %q", kind))
	}
	if patch.Amount != nil && patch.Amount.Sign() <= 0 {
		return NewValidationError("amount", "must be positive")
	}

	switch kind {
	case forecast.KindCrediteur:
		cr, err := s.repo.GetCrediteur(itemID)
		if err != nil {
			return err
		}
		if patch.Description != nil {
			cr.Name = *patch.Description
		}
		if patch.Amount != nil {
			cr.Amount = *patch.Amount
		}
		if patch.Date != nil {
			cr.Day = patch.Date.Day()
		}
		return s.repo.UpdateCrediteur(cr)

	case forecast.KindDeclaratie:
		tx, err := s.repo.GetTransaction(itemID)
		if err != nil {
			return err
		}
		if patch.Description != nil {
			tx.Description = *patch.Description
		}
		if patch.Amount != nil {
			tx.Amount = *patch.Amount
		}
		if patch.Date != nil {
			tx.Date = ledger.DateOnly(*patch.Date)
		}
		return s.repo.UpdateTransaction(tx)

	case forecast.KindOverigeOmzet:
		o, err := s.repo.GetOverigeOmzet(itemID)
		if err != nil {
			return err
		}
		if patch.Description != nil {
			o.Description = *patch.Description
		}
		if patch.Amount != nil {
			o.Amount = *patch.Amount
		}
		if patch.Date != nil {
			o.Date = ledger.DateOnly(*patch.Date)
		}
		return s.repo.UpdateOverigeOmzet(o)

	case forecast.KindCorrectie:
		c, err := s.repo.GetCorrectie(itemID)
		if err != nil {
			return err
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Amount != nil {
			c.Amount = *patch.Amount
		}
		if patch.Date != nil {
			c.Date = ledger.DateOnly(*patch.Date)
		}
		return s.repo.UpdateCorrectie(c)
	}

	return NewValidationError("item_kind", fmt.Sprintf("unknown kind %q", kind))
}

// DeleteLineItem removes the underlying record of a projected line
// item.
func (s *ForecastService) DeleteLineItem(ctx context.Context, itemID string, kind forecast.ItemKind) error {
	switch kind {
	case forecast.KindCrediteur:
		return s.repo.DeleteCrediteur(itemID)
	case forecast.KindDeclaratie:
		return s.repo.DeleteTransaction(itemID)
	case forecast.KindOverigeOmzet:
		return s.repo.DeleteOverigeOmzet(itemID)
	case forecast.KindCorrectie:
		return s.repo.DeleteCorrectie(itemID)
	}
	return NewValidationError("item_kind", fmt.Sprintf("unknown kind %q", kind))
}
