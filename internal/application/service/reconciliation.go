// Package service orchestrates the domain logic over the storage
// layer: reconciliation matching, cost classification, forecasting and
// ledger CRUD. Services hold no state beyond their dependencies; all
// data flows through the repository.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/domain/matcher"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

// ReconciliationService matches bank transactions against the ledger
// and crediteuren, and classifies the unexplained ones.
type ReconciliationService struct {
	repo    storage.Repository
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// NewReconciliationService creates a ReconciliationService.
func NewReconciliationService(repo storage.Repository, m *matcher.Matcher, logger *slog.Logger) *ReconciliationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationService{repo: repo, matcher: m, logger: logger}
}

// UnmatchedBankTransactions returns all bank transactions awaiting
// reconciliation.
func (s *ReconciliationService) UnmatchedBankTransactions(ctx context.Context) ([]ledger.BankTransaction, error) {
	reconciled := false
	return s.repo.ListBankTransactions(&reconciled)
}

// FindMatchCandidates returns scored match suggestions for one bank
// transaction, best first. An already-reconciled bank transaction is a
// consistency error, not an empty result.
func (s *ReconciliationService) FindMatchCandidates(ctx context.Context, bankTransactionID string) ([]matcher.Candidate, error) {
	bank, err := s.repo.GetBankTransaction(bankTransactionID)
	if err != nil {
		return nil, err
	}
	if bank.Reconciled {
		return nil, fmt.Errorf("bank transaction %s: %w", bankTransactionID, storage.ErrAlreadyReconciled)
	}

	reconciled := false
	open, err := s.repo.ListTransactions(storage.TransactionFilters{Reconciled: &reconciled})
	if err != nil {
		return nil, err
	}
	crediteuren, err := s.repo.ListCrediteuren(true)
	if err != nil {
		return nil, err
	}

	candidates := s.matcher.FindCandidates(*bank, open, crediteuren)
	s.logger.Debug("match candidates computed",
		"bank_transaction_id", bankTransactionID,
		"candidates", len(candidates))
	return candidates, nil
}

// ConfirmMatch links a bank transaction to a ledger transaction. Both
// sides are mutated in one storage transaction; double submission fails
// with storage.ErrAlreadyReconciled and changes nothing.
func (s *ReconciliationService) ConfirmMatch(ctx context.Context, bankTransactionID, transactionID string) error {
	if err := s.repo.ConfirmMatch(bankTransactionID, transactionID); err != nil {
		return err
	}
	s.logger.Info("bank transaction reconciled",
		"bank_transaction_id", bankTransactionID,
		"transaction_id", transactionID)
	return nil
}

// ConfirmCrediteurMatch links a bank transaction to a crediteur
// occurrence, atomically.
func (s *ReconciliationService) ConfirmCrediteurMatch(ctx context.Context, bankTransactionID, crediteurID string) error {
	if err := s.repo.ConfirmCrediteurMatch(bankTransactionID, crediteurID); err != nil {
		return err
	}
	s.logger.Info("bank transaction reconciled against crediteur",
		"bank_transaction_id", bankTransactionID,
		"crediteur_id", crediteurID)
	return nil
}

// ClassifyTransaction records a standing fixed/variable cost
// classification for a bank transaction that matched nothing. This is
// independent of matching: the transaction stays unreconciled.
func (s *ReconciliationService) ClassifyTransaction(ctx context.Context, bankTransactionID string, classificationType ledger.ClassificationType, categoryName string) error {
	if !ledger.ValidClassificationType(classificationType) {
		return NewValidationError("classification_type", "must be fixed or variable")
	}
	if categoryName == "" {
		return NewValidationError("category_name", "must not be empty")
	}

	if _, err := s.repo.GetBankTransaction(bankTransactionID); err != nil {
		return err
	}

	classificatie := &ledger.KostenClassificatie{
		ID:                 uuid.NewString(),
		BankTransactionID:  bankTransactionID,
		ClassificationType: classificationType,
		CategoryName:       categoryName,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.repo.SaveClassificatie(classificatie); err != nil {
		return err
	}

	s.logger.Info("bank transaction classified",
		"bank_transaction_id", bankTransactionID,
		"classification_type", string(classificationType),
		"category", categoryName)
	return nil
}

// KostenCategorie is one cost category in the cost overview: all bank
// transactions classified under the same name, with their total.
type KostenCategorie struct {
	CategoryName     string
	TotalAmount      decimal.Decimal
	TransactionCount int
	Transactions     []ledger.BankTransaction
}

// KostenOverzicht groups classified bank transactions of the given
// classification type per category, ordered by category name.
func (s *ReconciliationService) KostenOverzicht(ctx context.Context, classificationType ledger.ClassificationType) ([]KostenCategorie, error) {
	if !ledger.ValidClassificationType(classificationType) {
		return nil, NewValidationError("classification_type", "must be fixed or variable")
	}

	classificaties, err := s.repo.ListClassificaties(classificationType)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*KostenCategorie)
	for _, c := range classificaties {
		bank, err := s.repo.GetBankTransaction(c.BankTransactionID)
		if err != nil {
			return nil, err
		}

		cat, ok := byCategory[c.CategoryName]
		if !ok {
			cat = &KostenCategorie{CategoryName: c.CategoryName, TotalAmount: decimal.Zero}
			byCategory[c.CategoryName] = cat
		}
		cat.TotalAmount = cat.TotalAmount.Add(bank.Amount)
		cat.TransactionCount++
		cat.Transactions = append(cat.Transactions, *bank)
	}

	out := make([]KostenCategorie, 0, len(byCategory))
	for _, cat := range byCategory {
		out = append(out, *cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}
