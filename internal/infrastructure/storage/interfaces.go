package storage

import (
	"time"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// Repository defines the complete storage interface. Composing
// per-entity interfaces keeps service dependencies narrow and makes
// testing with the in-memory mock straightforward.
type Repository interface {
	TransactionRepository
	BankTransactionRepository
	CrediteurRepository
	VerzekeraarRepository
	CorrectieRepository
	OverigeOmzetRepository
	BankSaldoRepository
	ClassificatieRepository
	Close() error
}

// TransactionFilters narrows ListTransactions results. Zero values mean
// "no filter".
type TransactionFilters struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Category   string
	Type       ledger.TransactionType
	Reconciled *bool
}

// TransactionRepository handles ledger transactions.
type TransactionRepository interface {
	SaveTransaction(tx *ledger.Transaction) error
	GetTransaction(id string) (*ledger.Transaction, error)
	ListTransactions(filters TransactionFilters) ([]ledger.Transaction, error)
	UpdateTransaction(tx *ledger.Transaction) error
	DeleteTransaction(id string) error
}

// BankTransactionRepository handles imported bank transactions and the
// reconciliation mutations on them.
type BankTransactionRepository interface {
	SaveBankTransaction(tx *ledger.BankTransaction) error
	GetBankTransaction(id string) (*ledger.BankTransaction, error)
	// ListBankTransactions returns bank transactions, optionally
	// filtered by reconciliation state.
	ListBankTransactions(reconciled *bool) ([]ledger.BankTransaction, error)

	// ConfirmMatch marks the bank transaction reconciled and linked to
	// the ledger transaction, and the ledger transaction reconciled, in
	// one storage transaction. Either side already reconciled fails the
	// whole operation with ErrAlreadyReconciled.
	ConfirmMatch(bankTransactionID, transactionID string) error

	// ConfirmCrediteurMatch marks the bank transaction reconciled and
	// linked to the crediteur, atomically.
	ConfirmCrediteurMatch(bankTransactionID, crediteurID string) error
}

// CrediteurRepository handles recurring fixed-cost payees.
type CrediteurRepository interface {
	SaveCrediteur(c *ledger.Crediteur) error
	GetCrediteur(id string) (*ledger.Crediteur, error)
	ListCrediteuren(activeOnly bool) ([]ledger.Crediteur, error)
	UpdateCrediteur(c *ledger.Crediteur) error
	DeleteCrediteur(id string) error
}

// VerzekeraarRepository handles insurer payment-term profiles.
type VerzekeraarRepository interface {
	SaveVerzekeraar(v *ledger.Verzekeraar) error
	GetVerzekeraar(id string) (*ledger.Verzekeraar, error)
	ListVerzekeraars() ([]ledger.Verzekeraar, error)
	DeleteVerzekeraar(id string) error
}

// CorrectieRepository handles credit notes and their linkage to the
// transactions they correct.
type CorrectieRepository interface {
	SaveCorrectie(c *ledger.Correctie) error
	GetCorrectie(id string) (*ledger.Correctie, error)
	ListCorrecties(unmatchedOnly bool) ([]ledger.Correctie, error)
	UpdateCorrectie(c *ledger.Correctie) error
	DeleteCorrectie(id string) error

	// LinkCorrectie records which original transaction the correctie
	// corrects and marks it matched. Fails with ErrAlreadyMatched if
	// the correctie is already linked.
	LinkCorrectie(correctieID, transactionID string) error
}

// OverigeOmzetRepository handles revenue outside the declaration flow.
type OverigeOmzetRepository interface {
	SaveOverigeOmzet(o *ledger.OverigeOmzet) error
	GetOverigeOmzet(id string) (*ledger.OverigeOmzet, error)
	ListOverigeOmzet() ([]ledger.OverigeOmzet, error)
	UpdateOverigeOmzet(o *ledger.OverigeOmzet) error
	DeleteOverigeOmzet(id string) error
}

// BankSaldoRepository handles known balances.
type BankSaldoRepository interface {
	SaveBankSaldo(s *ledger.BankSaldo) error
	ListBankSaldos() ([]ledger.BankSaldo, error)
	// LatestBankSaldo returns the most recent balance by date, or
	// ErrNotFound when none is configured.
	LatestBankSaldo() (*ledger.BankSaldo, error)
	DeleteBankSaldo(id string) error
}

// ClassificatieRepository handles standing fixed/variable cost
// classifications of bank transactions.
type ClassificatieRepository interface {
	SaveClassificatie(c *ledger.KostenClassificatie) error
	ListClassificaties(t ledger.ClassificationType) ([]ledger.KostenClassificatie, error)
}
