package dto

// CreateTransactionRequest is the payload for creating or updating a
// ledger transaction. Amounts come in as JSON numbers and are converted
// to decimals at the handler boundary.
type CreateTransactionRequest struct {
	Type          string  `json:"type" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Description   string  `json:"description"`
	Date          string  `json:"date" binding:"required"`
	PatientName   string  `json:"patient_name"`
	InvoiceNumber string  `json:"invoice_number"`
	Notes         string  `json:"notes"`
}

// ConfirmMatchRequest links a bank transaction to a ledger transaction.
type ConfirmMatchRequest struct {
	BankTransactionID string `json:"bank_transaction_id" binding:"required"`
	TransactionID     string `json:"transaction_id" binding:"required"`
}

// ConfirmCrediteurMatchRequest links a bank transaction to a crediteur.
type ConfirmCrediteurMatchRequest struct {
	BankTransactionID string `json:"bank_transaction_id" binding:"required"`
	CrediteurID       string `json:"crediteur_id" binding:"required"`
}

// ClassifyRequest records a fixed/variable classification for an
// outgoing bank transaction.
type ClassifyRequest struct {
	BankTransactionID string `json:"bank_transaction_id" binding:"required"`
	Type              string `json:"type" binding:"required"`
	Category          string `json:"category" binding:"required"`
}

// CreateCrediteurRequest registers a recurring monthly payment obligation.
type CreateCrediteurRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Day    int     `json:"day" binding:"required"`
}

// CreateVerzekeraarRequest registers an insurer with its payment term.
type CreateVerzekeraarRequest struct {
	Name            string `json:"name" binding:"required"`
	PaymentTermDays int    `json:"payment_term_days" binding:"required"`
}

// CreateBankSaldoRequest records a bank balance snapshot.
type CreateBankSaldoRequest struct {
	Saldo       float64 `json:"saldo" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description"`
}

// CreateOverigeOmzetRequest records expected income outside the
// declaration flow, either one-off or recurring monthly.
type CreateOverigeOmzetRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Recurring   bool    `json:"recurring"`
}

// CreateCorrectieRequest registers a pending correction to be linked
// against an earlier income transaction.
type CreateCorrectieRequest struct {
	Type          string  `json:"type" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Description   string  `json:"description"`
	PatientName   string  `json:"patient_name"`
	InvoiceNumber string  `json:"invoice_number"`
}

// LinkCorrectieRequest links a correction to the transaction it corrects.
type LinkCorrectieRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// EditLineItemRequest edits a forecast line item. Only the fields
// present in the payload are applied.
type EditLineItemRequest struct {
	Kind        string   `json:"kind" binding:"required"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
}

// DeleteLineItemRequest identifies the kind of the line item to delete.
type DeleteLineItemRequest struct {
	Kind string `json:"kind" binding:"required"`
}
