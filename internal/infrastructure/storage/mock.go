package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// MockRepository is an in-memory implementation of Repository for
// testing. It enforces the same guard semantics as the SQLite
// implementation (not-found, already-reconciled) so service tests
// exercise real error paths.
type MockRepository struct {
	mu sync.Mutex

	transactions     map[string]*ledger.Transaction
	bankTransactions map[string]*ledger.BankTransaction
	crediteuren      map[string]*ledger.Crediteur
	verzekeraars     map[string]*ledger.Verzekeraar
	correcties       map[string]*ledger.Correctie
	overigeOmzet     map[string]*ledger.OverigeOmzet
	bankSaldos       map[string]*ledger.BankSaldo
	classificaties   []*ledger.KostenClassificatie

	// Error injection for testing error paths.
	ConfirmMatchErr error
}

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty mock repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions:     make(map[string]*ledger.Transaction),
		bankTransactions: make(map[string]*ledger.BankTransaction),
		crediteuren:      make(map[string]*ledger.Crediteur),
		verzekeraars:     make(map[string]*ledger.Verzekeraar),
		correcties:       make(map[string]*ledger.Correctie),
		overigeOmzet:     make(map[string]*ledger.OverigeOmzet),
		bankSaldos:       make(map[string]*ledger.BankSaldo),
	}
}

// Close does nothing for the mock.
func (m *MockRepository) Close() error { return nil }

// --- Transactions ---

func (m *MockRepository) SaveTransaction(tx *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *tx
	m.transactions[tx.ID] = &cp
	return nil
}

func (m *MockRepository) GetTransaction(id string) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	cp := *tx
	return &cp, nil
}

func (m *MockRepository) ListTransactions(filters TransactionFilters) ([]ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.Transaction
	for _, tx := range m.transactions {
		if filters.StartDate != nil && tx.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && tx.Date.After(*filters.EndDate) {
			continue
		}
		if filters.Category != "" && tx.Category != filters.Category {
			continue
		}
		if filters.Type != "" && tx.Type != filters.Type {
			continue
		}
		if filters.Reconciled != nil && tx.Reconciled != *filters.Reconciled {
			continue
		}
		out = append(out, *tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockRepository) UpdateTransaction(tx *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[tx.ID]; !ok {
		return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
	}
	cp := *tx
	m.transactions[tx.ID] = &cp
	return nil
}

func (m *MockRepository) DeleteTransaction(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	delete(m.transactions, id)
	return nil
}

// --- Bank transactions ---

func (m *MockRepository) SaveBankTransaction(tx *ledger.BankTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *tx
	m.bankTransactions[tx.ID] = &cp
	return nil
}

func (m *MockRepository) GetBankTransaction(id string) (*ledger.BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.bankTransactions[id]
	if !ok {
		return nil, fmt.Errorf("bank transaction %s: %w", id, ErrNotFound)
	}
	cp := *tx
	return &cp, nil
}

func (m *MockRepository) ListBankTransactions(reconciled *bool) ([]ledger.BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.BankTransaction
	for _, tx := range m.bankTransactions {
		if reconciled != nil && tx.Reconciled != *reconciled {
			continue
		}
		out = append(out, *tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockRepository) ConfirmMatch(bankTransactionID, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConfirmMatchErr != nil {
		return m.ConfirmMatchErr
	}

	bank, ok := m.bankTransactions[bankTransactionID]
	if !ok {
		return fmt.Errorf("bank transaction %s: %w", bankTransactionID, ErrNotFound)
	}
	tx, ok := m.transactions[transactionID]
	if !ok {
		return fmt.Errorf("transaction %s: %w", transactionID, ErrNotFound)
	}
	if bank.Reconciled {
		return fmt.Errorf("bank transaction %s: %w", bankTransactionID, ErrAlreadyReconciled)
	}
	if tx.Reconciled {
		return fmt.Errorf("transaction %s: %w", transactionID, ErrAlreadyReconciled)
	}

	bank.Reconciled = true
	bank.MatchedTransactionID = transactionID
	tx.Reconciled = true
	return nil
}

func (m *MockRepository) ConfirmCrediteurMatch(bankTransactionID, crediteurID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bank, ok := m.bankTransactions[bankTransactionID]
	if !ok {
		return fmt.Errorf("bank transaction %s: %w", bankTransactionID, ErrNotFound)
	}
	if _, ok := m.crediteuren[crediteurID]; !ok {
		return fmt.Errorf("crediteur %s: %w", crediteurID, ErrNotFound)
	}
	if bank.Reconciled {
		return fmt.Errorf("bank transaction %s: %w", bankTransactionID, ErrAlreadyReconciled)
	}

	bank.Reconciled = true
	bank.MatchedCrediteurID = crediteurID
	return nil
}

// --- Crediteuren ---

func (m *MockRepository) SaveCrediteur(c *ledger.Crediteur) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.crediteuren[c.ID] = &cp
	return nil
}

func (m *MockRepository) GetCrediteur(id string) (*ledger.Crediteur, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.crediteuren[id]
	if !ok {
		return nil, fmt.Errorf("crediteur %s: %w", id, ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *MockRepository) ListCrediteuren(activeOnly bool) ([]ledger.Crediteur, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.Crediteur
	for _, c := range m.crediteuren {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockRepository) UpdateCrediteur(c *ledger.Crediteur) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.crediteuren[c.ID]; !ok {
		return fmt.Errorf("crediteur %s: %w", c.ID, ErrNotFound)
	}
	cp := *c
	m.crediteuren[c.ID] = &cp
	return nil
}

func (m *MockRepository) DeleteCrediteur(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.crediteuren[id]; !ok {
		return fmt.Errorf("crediteur %s: %w", id, ErrNotFound)
	}
	delete(m.crediteuren, id)
	return nil
}

// --- Verzekeraars ---

func (m *MockRepository) SaveVerzekeraar(v *ledger.Verzekeraar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.verzekeraars[v.ID] = &cp
	return nil
}

func (m *MockRepository) GetVerzekeraar(id string) (*ledger.Verzekeraar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.verzekeraars[id]
	if !ok {
		return nil, fmt.Errorf("verzekeraar %s: %w", id, ErrNotFound)
	}
	cp := *v
	return &cp, nil
}

func (m *MockRepository) ListVerzekeraars() ([]ledger.Verzekeraar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.Verzekeraar
	for _, v := range m.verzekeraars {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockRepository) DeleteVerzekeraar(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.verzekeraars[id]; !ok {
		return fmt.Errorf("verzekeraar %s: %w", id, ErrNotFound)
	}
	delete(m.verzekeraars, id)
	return nil
}

// --- Correcties ---

func (m *MockRepository) SaveCorrectie(c *ledger.Correctie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.correcties[c.ID] = &cp
	return nil
}

func (m *MockRepository) GetCorrectie(id string) (*ledger.Correctie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.correcties[id]
	if !ok {
		return nil, fmt.Errorf("correctie %s: %w", id, ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *MockRepository) ListCorrecties(unmatchedOnly bool) ([]ledger.Correctie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.Correctie
	for _, c := range m.correcties {
		if unmatchedOnly && c.Matched {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockRepository) UpdateCorrectie(c *ledger.Correctie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.correcties[c.ID]; !ok {
		return fmt.Errorf("correctie %s: %w", c.ID, ErrNotFound)
	}
	cp := *c
	m.correcties[c.ID] = &cp
	return nil
}

func (m *MockRepository) DeleteCorrectie(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.correcties[id]; !ok {
		return fmt.Errorf("correctie %s: %w", id, ErrNotFound)
	}
	delete(m.correcties, id)
	return nil
}

func (m *MockRepository) LinkCorrectie(correctieID, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.correcties[correctieID]
	if !ok {
		return fmt.Errorf("correctie %s: %w", correctieID, ErrNotFound)
	}
	if c.Matched {
		return fmt.Errorf("correctie %s: %w", correctieID, ErrAlreadyMatched)
	}
	if _, ok := m.transactions[transactionID]; !ok {
		return fmt.Errorf("transaction %s: %w", transactionID, ErrNotFound)
	}
	c.Matched = true
	c.OriginalTransactionID = transactionID
	return nil
}

// --- Overige omzet ---

func (m *MockRepository) SaveOverigeOmzet(o *ledger.OverigeOmzet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.overigeOmzet[o.ID] = &cp
	return nil
}

func (m *MockRepository) GetOverigeOmzet(id string) (*ledger.OverigeOmzet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.overigeOmzet[id]
	if !ok {
		return nil, fmt.Errorf("overige omzet %s: %w", id, ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (m *MockRepository) ListOverigeOmzet() ([]ledger.OverigeOmzet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.OverigeOmzet
	for _, o := range m.overigeOmzet {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockRepository) UpdateOverigeOmzet(o *ledger.OverigeOmzet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.overigeOmzet[o.ID]; !ok {
		return fmt.Errorf("overige omzet %s: %w", o.ID, ErrNotFound)
	}
	cp := *o
	m.overigeOmzet[o.ID] = &cp
	return nil
}

func (m *MockRepository) DeleteOverigeOmzet(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.overigeOmzet[id]; !ok {
		return fmt.Errorf("overige omzet %s: %w", id, ErrNotFound)
	}
	delete(m.overigeOmzet, id)
	return nil
}

// --- Bank saldo ---

func (m *MockRepository) SaveBankSaldo(b *ledger.BankSaldo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	cp := *b
	m.bankSaldos[b.ID] = &cp
	return nil
}

func (m *MockRepository) ListBankSaldos() ([]ledger.BankSaldo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.BankSaldo
	for _, b := range m.bankSaldos {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockRepository) LatestBankSaldo() (*ledger.BankSaldo, error) {
	saldos, _ := m.ListBankSaldos()
	if len(saldos) == 0 {
		return nil, fmt.Errorf("bank saldo: %w", ErrNotFound)
	}
	cp := saldos[0]
	return &cp, nil
}

func (m *MockRepository) DeleteBankSaldo(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bankSaldos[id]; !ok {
		return fmt.Errorf("bank saldo %s: %w", id, ErrNotFound)
	}
	delete(m.bankSaldos, id)
	return nil
}

// --- Kosten classificaties ---

func (m *MockRepository) SaveClassificatie(c *ledger.KostenClassificatie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.classificaties = append(m.classificaties, &cp)
	return nil
}

func (m *MockRepository) ListClassificaties(t ledger.ClassificationType) ([]ledger.KostenClassificatie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ledger.KostenClassificatie
	for _, c := range m.classificaties {
		if c.ClassificationType == t {
			out = append(out, *c)
		}
	}
	return out, nil
}
