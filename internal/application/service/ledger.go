package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

// LedgerService owns CRUD on ledger records and the supporting setup
// entities (crediteuren, verzekeraars, bank saldos, overige omzet), the
// correctie workflow and bank CSV import.
type LedgerService struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(repo storage.Repository, logger *slog.Logger) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{repo: repo, logger: logger}
}

// ValidateTransaction checks a ledger transaction before any mutation.
func ValidateTransaction(tx *ledger.Transaction) error {
	if !ledger.ValidTransactionType(tx.Type) {
		return NewValidationError("type", fmt.Sprintf("unknown transaction type %q", tx.Type))
	}
	if !ledger.ValidCategory(tx.Type, tx.Category) {
		return NewValidationError("category", fmt.Sprintf("category %q is not valid for type %q", tx.Category, tx.Type))
	}
	if tx.Amount.Sign() <= 0 {
		return NewValidationError("amount", "must be positive; the sign is implied by type")
	}
	if tx.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	return nil
}

// CreateTransaction validates and stores a new ledger transaction.
func (s *LedgerService) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	if err := ValidateTransaction(tx); err != nil {
		return err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.Date = ledger.DateOnly(tx.Date)
	if err := s.repo.SaveTransaction(tx); err != nil {
		return err
	}
	s.logger.Info("transaction created", "id", tx.ID, "type", string(tx.Type), "category", tx.Category)
	return nil
}

// GetTransaction fetches one transaction.
func (s *LedgerService) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	return s.repo.GetTransaction(id)
}

// ListTransactions lists transactions matching the filters.
func (s *LedgerService) ListTransactions(ctx context.Context, filters storage.TransactionFilters) ([]ledger.Transaction, error) {
	return s.repo.ListTransactions(filters)
}

// UpdateTransaction validates and rewrites a transaction.
func (s *LedgerService) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	if err := ValidateTransaction(tx); err != nil {
		return err
	}
	tx.Date = ledger.DateOnly(tx.Date)
	return s.repo.UpdateTransaction(tx)
}

// DeleteTransaction removes a transaction.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.DeleteTransaction(id)
}

// --- Setup entities ---

// CreateCrediteur validates and stores a recurring fixed-cost payee.
func (s *LedgerService) CreateCrediteur(ctx context.Context, c *ledger.Crediteur) error {
	if c.Name == "" {
		return NewValidationError("name", "is required")
	}
	if c.Amount.Sign() <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	if c.Day < 1 || c.Day > 31 {
		return NewValidationError("day", "must be between 1 and 31")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return s.repo.SaveCrediteur(c)
}

// ListCrediteuren lists crediteuren, optionally only active ones.
func (s *LedgerService) ListCrediteuren(ctx context.Context, activeOnly bool) ([]ledger.Crediteur, error) {
	return s.repo.ListCrediteuren(activeOnly)
}

// DeleteCrediteur removes a crediteur.
func (s *LedgerService) DeleteCrediteur(ctx context.Context, id string) error {
	return s.repo.DeleteCrediteur(id)
}

// CreateVerzekeraar validates and stores an insurer profile.
func (s *LedgerService) CreateVerzekeraar(ctx context.Context, v *ledger.Verzekeraar) error {
	if v.Name == "" {
		return NewValidationError("name", "is required")
	}
	if v.PaymentTermDays < 0 {
		return NewValidationError("payment_term_days", "must not be negative")
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return s.repo.SaveVerzekeraar(v)
}

// ListVerzekeraars lists all insurer profiles.
func (s *LedgerService) ListVerzekeraars(ctx context.Context) ([]ledger.Verzekeraar, error) {
	return s.repo.ListVerzekeraars()
}

// DeleteVerzekeraar removes an insurer profile.
func (s *LedgerService) DeleteVerzekeraar(ctx context.Context, id string) error {
	return s.repo.DeleteVerzekeraar(id)
}

// CreateBankSaldo validates and stores a known balance.
func (s *LedgerService) CreateBankSaldo(ctx context.Context, b *ledger.BankSaldo) error {
	if b.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Date = ledger.DateOnly(b.Date)
	return s.repo.SaveBankSaldo(b)
}

// ListBankSaldos lists all known balances.
func (s *LedgerService) ListBankSaldos(ctx context.Context) ([]ledger.BankSaldo, error) {
	return s.repo.ListBankSaldos()
}

// CreateOverigeOmzet validates and stores an other-revenue entry.
func (s *LedgerService) CreateOverigeOmzet(ctx context.Context, o *ledger.OverigeOmzet) error {
	if o.Amount.Sign() <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	if o.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Date = ledger.DateOnly(o.Date)
	return s.repo.SaveOverigeOmzet(o)
}

// ListOverigeOmzet lists all other-revenue entries.
func (s *LedgerService) ListOverigeOmzet(ctx context.Context) ([]ledger.OverigeOmzet, error) {
	return s.repo.ListOverigeOmzet()
}

// --- Correcties ---

// CreateCorrectie validates and stores a credit note.
func (s *LedgerService) CreateCorrectie(ctx context.Context, c *ledger.Correctie) error {
	if !ledger.ValidCorrectionType(c.CorrectionType) {
		return NewValidationError("correction_type", fmt.Sprintf("unknown correction type %q", c.CorrectionType))
	}
	if c.Amount.Sign() <= 0 {
		return NewValidationError("amount", "must be positive; corrections always reduce")
	}
	if c.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Date = ledger.DateOnly(c.Date)
	return s.repo.SaveCorrectie(c)
}

// ListCorrecties lists correcties, optionally only unmatched ones.
func (s *LedgerService) ListCorrecties(ctx context.Context, unmatchedOnly bool) ([]ledger.Correctie, error) {
	return s.repo.ListCorrecties(unmatchedOnly)
}

// DeleteCorrectie removes a correctie.
func (s *LedgerService) DeleteCorrectie(ctx context.Context, id string) error {
	return s.repo.DeleteCorrectie(id)
}

// CorrectieSuggestions finds the original transactions a correctie most
// plausibly corrects: first by invoice number, then by patient name
// plus amount. Only income-side transactions qualify.
func (s *LedgerService) CorrectieSuggestions(ctx context.Context, correctieID string) ([]ledger.Transaction, error) {
	c, err := s.repo.GetCorrectie(correctieID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.repo.ListTransactions(storage.TransactionFilters{Type: ledger.TypeIncome})
	if err != nil {
		return nil, err
	}

	var byInvoice, byPatient []ledger.Transaction
	for _, tx := range transactions {
		if c.InvoiceNumber != "" && tx.InvoiceNumber == c.InvoiceNumber {
			byInvoice = append(byInvoice, tx)
			continue
		}
		if c.PatientName != "" &&
			strings.EqualFold(tx.PatientName, c.PatientName) &&
			tx.Amount.GreaterThanOrEqual(c.Amount) {
			byPatient = append(byPatient, tx)
		}
	}

	if len(byInvoice) > 0 {
		return byInvoice, nil
	}
	return byPatient, nil
}

// LinkCorrectie links a correctie to the transaction it corrects.
func (s *LedgerService) LinkCorrectie(ctx context.Context, correctieID, transactionID string) error {
	if err := s.repo.LinkCorrectie(correctieID, transactionID); err != nil {
		return err
	}
	s.logger.Info("correctie linked", "correctie_id", correctieID, "transaction_id", transactionID)
	return nil
}

// --- Bank import ---

// ImportResult summarizes a bank CSV import.
type ImportResult struct {
	Imported   int
	Duplicates int
}

// ImportBankCSV reads bank transactions from a CSV export with columns
// date (YYYY-MM-DD), amount, counterparty, description. A header row is
// detected and skipped. Rows already present (same date, amount and
// counterparty) are counted as duplicates and not inserted again.
func (s *LedgerService) ImportBankCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	existing, err := s.repo.ListBankTransactions(nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, tx := range existing {
		seen[importKey(tx.Date, tx.Amount, tx.Counterparty)] = true
	}

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bank import line %d: %w", line+1, err)
		}
		line++

		if len(record) < 3 {
			return nil, NewValidationError("csv", fmt.Sprintf("line %d: expected at least date, amount and counterparty", line))
		}

		// Header row.
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "date") {
			continue
		}

		date, err := ledger.ParseDate(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, NewValidationError("date", fmt.Sprintf("line %d: %v", line, err))
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, NewValidationError("amount", fmt.Sprintf("line %d: %v", line, err))
		}
		counterparty := strings.TrimSpace(record[2])
		description := ""
		if len(record) > 3 {
			description = strings.TrimSpace(record[3])
		}

		key := importKey(date, amount, counterparty)
		if seen[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true

		tx := &ledger.BankTransaction{
			ID:           uuid.NewString(),
			Date:         date,
			Amount:       amount,
			Counterparty: counterparty,
			Description:  description,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.repo.SaveBankTransaction(tx); err != nil {
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("bank import finished",
		"imported", result.Imported,
		"duplicates", result.Duplicates)
	return result, nil
}

func importKey(date time.Time, amount decimal.Decimal, counterparty string) string {
	return ledger.FormatDate(date) + "|" + amount.String() + "|" + strings.ToLower(counterparty)
}
