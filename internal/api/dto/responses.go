package dto

import (
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/forecast"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/domain/matcher"
)

// Amounts are rendered as JSON numbers (float64) at this boundary only;
// decimal.Decimal stays authoritative everywhere inside the domain and
// storage layers.

// TransactionResponse is the JSON shape of a ledger transaction.
type TransactionResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	PatientName   string  `json:"patient_name,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Reconciled    bool    `json:"reconciled"`
	CreatedAt     string  `json:"created_at"`
}

func ToTransactionResponse(t ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Category:      t.Category,
		Amount:        t.Amount.InexactFloat64(),
		Description:   t.Description,
		Date:          ledger.FormatDate(t.Date),
		PatientName:   t.PatientName,
		InvoiceNumber: t.InvoiceNumber,
		Notes:         t.Notes,
		Reconciled:    t.Reconciled,
		CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ToTransactionResponses(ts []ledger.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// BankTransactionResponse is the JSON shape of an imported bank line.
type BankTransactionResponse struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	Amount               float64 `json:"amount"`
	Counterparty         string  `json:"counterparty"`
	Description          string  `json:"description"`
	Reconciled           bool    `json:"reconciled"`
	MatchedTransactionID string  `json:"matched_transaction_id,omitempty"`
	MatchedCrediteurID   string  `json:"matched_crediteur_id,omitempty"`
}

func ToBankTransactionResponse(b ledger.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:                   b.ID,
		Date:                 ledger.FormatDate(b.Date),
		Amount:               b.Amount.InexactFloat64(),
		Counterparty:         b.Counterparty,
		Description:          b.Description,
		Reconciled:           b.Reconciled,
		MatchedTransactionID: b.MatchedTransactionID,
		MatchedCrediteurID:   b.MatchedCrediteurID,
	}
}

func ToBankTransactionResponses(bs []ledger.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, ToBankTransactionResponse(b))
	}
	return out
}

// MatchCandidateResponse is one scored suggestion for a bank transaction.
type MatchCandidateResponse struct {
	EntityID   string `json:"entity_id"`
	MatchType  string `json:"match_type"`
	Score      int    `json:"score"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

func ToMatchCandidateResponses(cs []matcher.Candidate) []MatchCandidateResponse {
	out := make([]MatchCandidateResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, MatchCandidateResponse{
			EntityID:   c.EntityID,
			MatchType:  string(c.MatchType),
			Score:      c.Score,
			Confidence: string(c.Confidence()),
			Reason:     c.Reason,
		})
	}
	return out
}

// CrediteurResponse is the JSON shape of a recurring payment obligation.
type CrediteurResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Day    int     `json:"day"`
	Active bool    `json:"active"`
}

func ToCrediteurResponse(c ledger.Crediteur) CrediteurResponse {
	return CrediteurResponse{
		ID:     c.ID,
		Name:   c.Name,
		Amount: c.Amount.InexactFloat64(),
		Day:    c.Day,
		Active: c.Active,
	}
}

func ToCrediteurResponses(cs []ledger.Crediteur) []CrediteurResponse {
	out := make([]CrediteurResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCrediteurResponse(c))
	}
	return out
}

// VerzekeraarResponse is the JSON shape of an insurer.
type VerzekeraarResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PaymentTermDays int    `json:"payment_term_days"`
}

func ToVerzekeraarResponses(vs []ledger.Verzekeraar) []VerzekeraarResponse {
	out := make([]VerzekeraarResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, VerzekeraarResponse{ID: v.ID, Name: v.Name, PaymentTermDays: v.PaymentTermDays})
	}
	return out
}

// BankSaldoResponse is the JSON shape of a balance snapshot.
type BankSaldoResponse struct {
	ID          string  `json:"id"`
	Saldo       float64 `json:"saldo"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

func ToBankSaldoResponse(b ledger.BankSaldo) BankSaldoResponse {
	return BankSaldoResponse{
		ID:          b.ID,
		Saldo:       b.Saldo.InexactFloat64(),
		Date:        ledger.FormatDate(b.Date),
		Description: b.Description,
	}
}

func ToBankSaldoResponses(bs []ledger.BankSaldo) []BankSaldoResponse {
	out := make([]BankSaldoResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, ToBankSaldoResponse(b))
	}
	return out
}

// OverigeOmzetResponse is the JSON shape of other expected income.
type OverigeOmzetResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Recurring   bool    `json:"recurring"`
}

func ToOverigeOmzetResponses(os []ledger.OverigeOmzet) []OverigeOmzetResponse {
	out := make([]OverigeOmzetResponse, 0, len(os))
	for _, o := range os {
		out = append(out, OverigeOmzetResponse{
			ID:          o.ID,
			Description: o.Description,
			Amount:      o.Amount.InexactFloat64(),
			Date:        ledger.FormatDate(o.Date),
			Recurring:   o.Recurring,
		})
	}
	return out
}

// CorrectieResponse is the JSON shape of a correction.
type CorrectieResponse struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"type"`
	Amount               float64 `json:"amount"`
	Date                 string  `json:"date"`
	Description          string  `json:"description,omitempty"`
	PatientName          string  `json:"patient_name,omitempty"`
	InvoiceNumber        string  `json:"invoice_number,omitempty"`
	Matched              bool    `json:"matched"`
	MatchedTransactionID string  `json:"matched_transaction_id,omitempty"`
}

func ToCorrectieResponse(c ledger.Correctie) CorrectieResponse {
	return CorrectieResponse{
		ID:                   c.ID,
		Type:                 string(c.CorrectionType),
		Amount:               c.Amount.InexactFloat64(),
		Date:                 ledger.FormatDate(c.Date),
		Description:          c.Description,
		PatientName:          c.PatientName,
		InvoiceNumber:        c.InvoiceNumber,
		Matched:              c.Matched,
		MatchedTransactionID: c.OriginalTransactionID,
	}
}

func ToCorrectieResponses(cs []ledger.Correctie) []CorrectieResponse {
	out := make([]CorrectieResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCorrectieResponse(c))
	}
	return out
}

// ForecastDayResponse is one projected day in the horizon.
type ForecastDayResponse struct {
	Date         string                 `json:"date"`
	Income       float64                `json:"income"`
	Expenses     float64                `json:"expenses"`
	Balance      float64                `json:"balance"`
	Transactions []ForecastItemResponse `json:"transactions"`
}

// ForecastItemResponse is a single expected payment on a forecast day.
type ForecastItemResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ForecastResponse mirrors the dashboard's forecast contract.
type ForecastResponse struct {
	CurrentBalance        float64               `json:"current_balance"`
	TotalExpectedIncome   float64               `json:"total_expected_income"`
	TotalExpectedExpenses float64               `json:"total_expected_expenses"`
	NetExpected           float64               `json:"net_expected"`
	FinalBalance          float64               `json:"final_balance"`
	ForecastDays          []ForecastDayResponse `json:"forecast_days"`
}

func ToForecastResponse(f forecast.Forecast) ForecastResponse {
	days := make([]ForecastDayResponse, 0, len(f.Days))
	for _, d := range f.Days {
		items := make([]ForecastItemResponse, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, ForecastItemResponse{
				ID:          it.ID,
				Kind:        string(it.Kind),
				Description: it.Description,
				Amount:      it.Amount.InexactFloat64(),
			})
		}
		days = append(days, ForecastDayResponse{
			Date:         ledger.FormatDate(d.Date),
			Income:       d.Income.InexactFloat64(),
			Expenses:     d.Expenses.InexactFloat64(),
			Balance:      d.Balance.InexactFloat64(),
			Transactions: items,
		})
	}
	return ForecastResponse{
		CurrentBalance:        f.CurrentBalance.InexactFloat64(),
		TotalExpectedIncome:   f.TotalExpectedIncome.InexactFloat64(),
		TotalExpectedExpenses: f.TotalExpectedExpenses.InexactFloat64(),
		NetExpected:           f.NetExpected.InexactFloat64(),
		FinalBalance:          f.FinalBalance.InexactFloat64(),
		ForecastDays:          days,
	}
}

// VerwachteBetalingResponse is one upcoming expected payment.
type VerwachteBetalingResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Overdue     bool    `json:"overdue"`
}

func ToVerwachteBetalingResponses(vs []service.VerwachteBetaling) []VerwachteBetalingResponse {
	out := make([]VerwachteBetalingResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, VerwachteBetalingResponse{
			ID:          v.ID,
			Kind:        string(v.Kind),
			Description: v.Description,
			Amount:      v.Amount.InexactFloat64(),
			Date:        ledger.FormatDate(v.ExpectedDate),
			Overdue:     v.Overdue,
		})
	}
	return out
}

// KostenCategorieResponse groups classified bank transactions by category.
type KostenCategorieResponse struct {
	CategoryName     string                    `json:"category_name"`
	TotalAmount      float64                   `json:"total_amount"`
	TransactionCount int                       `json:"transaction_count"`
	Transactions     []BankTransactionResponse `json:"transactions"`
}

func ToKostenCategorieResponses(ks []service.KostenCategorie) []KostenCategorieResponse {
	out := make([]KostenCategorieResponse, 0, len(ks))
	for _, k := range ks {
		out = append(out, KostenCategorieResponse{
			CategoryName:     k.CategoryName,
			TotalAmount:      k.TotalAmount.InexactFloat64(),
			TransactionCount: k.TransactionCount,
			Transactions:     ToBankTransactionResponses(k.Transactions),
		})
	}
	return out
}

// DailyCashflowResponse is realized cashflow for a single day.
type DailyCashflowResponse struct {
	Date              string             `json:"date"`
	TotalIncome       float64            `json:"total_income"`
	TotalExpenses     float64            `json:"total_expenses"`
	NetCashflow       float64            `json:"net_cashflow"`
	TransactionCount  int                `json:"transaction_count"`
	IncomeByCategory  map[string]float64 `json:"income_by_category"`
	ExpenseByCategory map[string]float64 `json:"expense_by_category"`
}

func ToDailyCashflowResponse(d service.DailyCashflow) DailyCashflowResponse {
	return DailyCashflowResponse{
		Date:              ledger.FormatDate(d.Date),
		TotalIncome:       d.TotalIncome.InexactFloat64(),
		TotalExpenses:     d.TotalExpenses.InexactFloat64(),
		NetCashflow:       d.NetCashflow.InexactFloat64(),
		TransactionCount:  d.TransactionCount,
		IncomeByCategory:  toFloatMap(d.IncomeByCategory),
		ExpenseByCategory: toFloatMap(d.ExpenseByCategory),
	}
}

func toFloatMap(in map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v.InexactFloat64()
	}
	return out
}

// CashflowSummaryResponse aggregates realized cashflow over common windows.
type CashflowSummaryResponse struct {
	Today             DailyCashflowResponse `json:"today"`
	ThisWeek          float64               `json:"this_week"`
	ThisMonth         float64               `json:"this_month"`
	TotalTransactions int                   `json:"total_transactions"`
}

func ToCashflowSummaryResponse(s service.CashflowSummary) CashflowSummaryResponse {
	resp := CashflowSummaryResponse{
		ThisWeek:          s.ThisWeek.InexactFloat64(),
		ThisMonth:         s.ThisMonth.InexactFloat64(),
		TotalTransactions: s.TotalTransactions,
	}
	if s.Today != nil {
		resp.Today = ToDailyCashflowResponse(*s.Today)
	}
	return resp
}

// ImportResultResponse reports the outcome of a bank CSV import.
type ImportResultResponse struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
}
