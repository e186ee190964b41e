package storage

import "errors"

// Sentinel errors returned by repositories. Callers match with
// errors.Is and map them onto API error codes.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyReconciled means a match was attempted against a bank
	// transaction or ledger transaction that is already reconciled.
	// The mutation is blocked entirely; no side is updated.
	ErrAlreadyReconciled = errors.New("record already reconciled")

	// ErrAlreadyMatched means a correctie is already linked to an
	// original transaction.
	ErrAlreadyMatched = errors.New("correctie already matched")
)
