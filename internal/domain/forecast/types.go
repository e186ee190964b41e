package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// ItemKind identifies which underlying record a projected payment item
// came from. Forecast items are projections, not stored entities: edits
// route back to the record named by the kind.
type ItemKind string

const (
	KindCrediteur    ItemKind = "crediteur"
	KindDeclaratie   ItemKind = "declaratie"
	KindOverigeOmzet ItemKind = "overige_omzet"
	KindCorrectie    ItemKind = "correctie"
)

// ValidItemKind reports whether k names a known line-item kind.
func ValidItemKind(k ItemKind) bool {
	switch k {
	case KindCrediteur, KindDeclaratie, KindOverigeOmzet, KindCorrectie:
		return true
	}
	return false
}

// PaymentItem is one contributing payment on a forecast day. Amount is
// signed: positive income, negative expense or correction.
type PaymentItem struct {
	ID          string
	Kind        ItemKind
	Description string
	Amount      decimal.Decimal
}

// ForecastDay is one day of the projection. Income is the sum of the
// day's positive items, Expenses the sum of the negative ones (kept
// negative), and Balance the running balance at end of day.
type ForecastDay struct {
	Date     time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Items    []PaymentItem
	Balance  decimal.Decimal
}

// Forecast is the horizon-wide projection.
type Forecast struct {
	CurrentBalance        decimal.Decimal
	TotalExpectedIncome   decimal.Decimal
	TotalExpectedExpenses decimal.Decimal
	NetExpected           decimal.Decimal
	FinalBalance          decimal.Decimal
	Days                  []ForecastDay
}

// Input carries everything the aggregator needs. It is a consistent
// snapshot supplied by the caller; the aggregator performs no I/O and
// reads no clocks, so output is fully determined by this struct.
type Input struct {
	Today           time.Time
	Horizon         int
	StartingBalance decimal.Decimal
	HasBaseline     bool

	Crediteuren  []ledger.Crediteur
	Declaraties  []ledger.Transaction
	Verzekeraars []ledger.Verzekeraar
	OverigeOmzet []ledger.OverigeOmzet
	Correcties   []ledger.Correctie
}
