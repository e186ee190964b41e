// Package ledger holds the domain entities shared by the matcher, the
// forecast aggregator and the storage layer: bank transactions, ledger
// transactions (receivables/payables), recurring crediteuren, insurer
// profiles, corrections and supporting records.
//
// All monetary values are decimal.Decimal. Signs follow the bank
// convention on BankTransaction (negative = outgoing) and are implied by
// Type on Transaction (amounts stored unsigned).
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger transaction.
type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeCredit     TransactionType = "credit"
	TypeCorrection TransactionType = "correction"
)

// CorrectionType identifies which kind of credit note a Correctie is.
type CorrectionType string

const (
	CorrectionCreditfactuurParticulier    CorrectionType = "creditfactuur_particulier"
	CorrectionCreditdeclaratieVerzekeraar CorrectionType = "creditdeclaratie_verzekeraar"
	CorrectionCorrectiefactuurVerzekeraar CorrectionType = "correctiefactuur_verzekeraar"
)

// ClassificationType tags a bank transaction as a fixed or variable cost.
type ClassificationType string

const (
	ClassificationFixed    ClassificationType = "fixed"
	ClassificationVariable ClassificationType = "variable"
)

// BankTransaction is a money movement imported from a bank export.
// It is immutable after import except for the reconciliation fields,
// which are set exactly once when a match is confirmed. At most one of
// MatchedTransactionID and MatchedCrediteurID may be set.
type BankTransaction struct {
	ID                   string
	Date                 time.Time
	Amount               decimal.Decimal // negative = outgoing
	Counterparty         string
	Description          string
	Reconciled           bool
	MatchedTransactionID string
	MatchedCrediteurID   string
	CreatedAt            time.Time
}

// Transaction is an income or expense entry in the practice ledger:
// a declared invoice, a particulier invoice, a manual entry or a
// correction. Amount is unsigned; Type carries the sign.
type Transaction struct {
	ID            string
	Type          TransactionType
	Category      string
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	PatientName   string
	InvoiceNumber string
	Notes         string
	Reconciled    bool
	CreatedAt     time.Time
}

// Crediteur is a recurring fixed-cost payee: a fixed monthly amount
// expected on a fixed day of the month (1-31).
type Crediteur struct {
	ID        string
	Name      string
	Amount    decimal.Decimal
	Day       int
	Active    bool
	CreatedAt time.Time
}

// Verzekeraar is an insurer profile. Declarations submitted to this
// insurer are expected to be paid PaymentTermDays after submission.
type Verzekeraar struct {
	ID              string
	Name            string
	PaymentTermDays int
	CreatedAt       time.Time
}

// Correctie is a credit note or adjustment that reduces a previously
// recorded receivable. Amount is unsigned and always subtracts.
type Correctie struct {
	ID                    string
	CorrectionType        CorrectionType
	Amount                decimal.Decimal
	Description           string
	Date                  time.Time
	PatientName           string
	InvoiceNumber         string
	Matched               bool
	OriginalTransactionID string
	CreatedAt             time.Time
}

// OverigeOmzet is revenue outside the declaration flow, either one-off
// on its date or recurring on the same day of every month.
type OverigeOmzet struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Recurring   bool
	CreatedAt   time.Time
}

// BankSaldo is a known bank balance on a date. The latest-dated entry
// is the baseline for forecasting.
type BankSaldo struct {
	ID          string
	Saldo       decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// KostenClassificatie is a standing classification of an otherwise
// unexplained outgoing bank transaction into a cost category.
type KostenClassificatie struct {
	ID                 string
	BankTransactionID  string
	ClassificationType ClassificationType
	CategoryName       string
	CreatedAt          time.Time
}
