// Package storage provides SQLite persistence for the cashflow domain.
//
// Amounts round-trip through decimal strings, never floats, so
// reconciliation's exact-cent comparisons stay exact. Reconciliation
// mutations run inside guarded sql transactions: a half-applied match
// (bank side updated, ledger side not) cannot be committed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// Storage provides SQLite database access. It implements Repository.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository.
var _ Repository = (*Storage)(nil)

// NewStorage opens (creating if needed) the SQLite database at dbPath
// and runs pending migrations.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt amount %q in database: %w", raw, err)
	}
	return d, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := ledger.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt date %q in database: %w", raw, err)
	}
	return t, nil
}

// --- Transactions ---

// SaveTransaction inserts a ledger transaction.
func (s *Storage) SaveTransaction(tx *ledger.Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO transactions
	(id, type, category, amount, description, date, patient_name, invoice_number, notes, reconciled, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.Category, tx.Amount.String(), tx.Description,
		ledger.FormatDate(tx.Date), tx.PatientName, tx.InvoiceNumber, tx.Notes,
		tx.Reconciled, tx.CreatedAt,
	)
	return err
}

func scanTransaction(row interface{ Scan(...any) error }) (*ledger.Transaction, error) {
	var (
		tx             ledger.Transaction
		typ, amt, date string
	)
	err := row.Scan(&tx.ID, &typ, &tx.Category, &amt, &tx.Description, &date,
		&tx.PatientName, &tx.InvoiceNumber, &tx.Notes, &tx.Reconciled, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	tx.Type = ledger.TransactionType(typ)
	if tx.Amount, err = parseAmount(amt); err != nil {
		return nil, err
	}
	if tx.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &tx, nil
}

const transactionColumns = `id, type, category, amount, description, date, patient_name, invoice_number, notes, reconciled, created_at`

// GetTransaction retrieves a ledger transaction by id.
func (s *Storage) GetTransaction(id string) (*ledger.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return tx, err
}

// ListTransactions returns transactions matching the filters, newest
// date first.
func (s *Storage) ListTransactions(filters TransactionFilters) ([]ledger.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any

	if filters.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, ledger.FormatDate(*filters.StartDate))
	}
	if filters.EndDate != nil {
		query += ` AND date <= ?`
		args = append(args, ledger.FormatDate(*filters.EndDate))
	}
	if filters.Category != "" {
		query += ` AND category = ?`
		args = append(args, filters.Category)
	}
	if filters.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filters.Type))
	}
	if filters.Reconciled != nil {
		query += ` AND reconciled = ?`
		args = append(args, *filters.Reconciled)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

// UpdateTransaction rewrites all mutable fields of a transaction.
func (s *Storage) UpdateTransaction(tx *ledger.Transaction) error {
	res, err := s.db.Exec(`
	UPDATE transactions
	SET type = ?, category = ?, amount = ?, description = ?, date = ?,
	    patient_name = ?, invoice_number = ?, notes = ?, reconciled = ?
	WHERE id = ?`,
		string(tx.Type), tx.Category, tx.Amount.String(), tx.Description,
		ledger.FormatDate(tx.Date), tx.PatientName, tx.InvoiceNumber, tx.Notes,
		tx.Reconciled, tx.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "transaction", tx.ID)
}

// DeleteTransaction removes a transaction by id.
func (s *Storage) DeleteTransaction(id string) error {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "transaction", id)
}

// --- Bank transactions ---

// SaveBankTransaction inserts an imported bank transaction.
func (s *Storage) SaveBankTransaction(tx *ledger.BankTransaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO bank_transactions
	(id, date, amount, counterparty, description, reconciled, matched_transaction_id, matched_crediteur_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, ledger.FormatDate(tx.Date), tx.Amount.String(), tx.Counterparty,
		tx.Description, tx.Reconciled, tx.MatchedTransactionID, tx.MatchedCrediteurID,
		tx.CreatedAt,
	)
	return err
}

const bankColumns = `id, date, amount, counterparty, description, reconciled, matched_transaction_id, matched_crediteur_id, created_at`

func scanBankTransaction(row interface{ Scan(...any) error }) (*ledger.BankTransaction, error) {
	var (
		tx        ledger.BankTransaction
		date, amt string
	)
	err := row.Scan(&tx.ID, &date, &amt, &tx.Counterparty, &tx.Description,
		&tx.Reconciled, &tx.MatchedTransactionID, &tx.MatchedCrediteurID, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	if tx.Amount, err = parseAmount(amt); err != nil {
		return nil, err
	}
	if tx.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetBankTransaction retrieves a bank transaction by id.
func (s *Storage) GetBankTransaction(id string) (*ledger.BankTransaction, error) {
	row := s.db.QueryRow(`SELECT `+bankColumns+` FROM bank_transactions WHERE id = ?`, id)
	tx, err := scanBankTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bank transaction %s: %w", id, ErrNotFound)
	}
	return tx, err
}

// ListBankTransactions returns bank transactions, optionally filtered
// by reconciliation state, newest first.
func (s *Storage) ListBankTransactions(reconciled *bool) ([]ledger.BankTransaction, error) {
	query := `SELECT ` + bankColumns + ` FROM bank_transactions`
	var args []any
	if reconciled != nil {
		query += ` WHERE reconciled = ?`
		args = append(args, *reconciled)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.BankTransaction
	for rows.Next() {
		tx, err := scanBankTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

// ConfirmMatch links a bank transaction to a ledger transaction and
// marks both reconciled in one sql transaction. The guarded UPDATEs
// (WHERE reconciled = 0) make double-application impossible even under
// concurrent confirms.
func (s *Storage) ConfirmMatch(bankTransactionID, transactionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := guardUnreconciled(tx, "bank_transactions", "bank transaction", bankTransactionID); err != nil {
		return err
	}
	if err := guardUnreconciled(tx, "transactions", "transaction", transactionID); err != nil {
		return err
	}

	res, err := tx.Exec(`
	UPDATE bank_transactions SET reconciled = 1, matched_transaction_id = ?
	WHERE id = ? AND reconciled = 0`, transactionID, bankTransactionID)
	if err != nil {
		return err
	}
	if err := requireRowAffected(res, "bank transaction", bankTransactionID); err != nil {
		return err
	}

	res, err = tx.Exec(`UPDATE transactions SET reconciled = 1 WHERE id = ? AND reconciled = 0`, transactionID)
	if err != nil {
		return err
	}
	if err := requireRowAffected(res, "transaction", transactionID); err != nil {
		return err
	}

	return tx.Commit()
}

// ConfirmCrediteurMatch links a bank transaction to a crediteur and
// marks it reconciled, atomically.
func (s *Storage) ConfirmCrediteurMatch(bankTransactionID, crediteurID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := guardUnreconciled(tx, "bank_transactions", "bank transaction", bankTransactionID); err != nil {
		return err
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM crediteuren WHERE id = ?)`, crediteurID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("crediteur %s: %w", crediteurID, ErrNotFound)
	}

	res, err := tx.Exec(`
	UPDATE bank_transactions SET reconciled = 1, matched_crediteur_id = ?
	WHERE id = ? AND reconciled = 0`, crediteurID, bankTransactionID)
	if err != nil {
		return err
	}
	if err := requireRowAffected(res, "bank transaction", bankTransactionID); err != nil {
		return err
	}

	return tx.Commit()
}

// guardUnreconciled fails with ErrNotFound or ErrAlreadyReconciled
// before any mutation touches the row.
func guardUnreconciled(tx *sql.Tx, table, label, id string) error {
	var reconciled bool
	err := tx.QueryRow(`SELECT reconciled FROM `+table+` WHERE id = ?`, id).Scan(&reconciled)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", label, id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if reconciled {
		return fmt.Errorf("%s %s: %w", label, id, ErrAlreadyReconciled)
	}
	return nil
}

func requireRowAffected(res sql.Result, label, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", label, id, ErrNotFound)
	}
	return nil
}

// --- Crediteuren ---

// SaveCrediteur inserts a crediteur.
func (s *Storage) SaveCrediteur(c *ledger.Crediteur) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO crediteuren (id, name, amount, day, active, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Amount.String(), c.Day, c.Active, c.CreatedAt,
	)
	return err
}

func scanCrediteur(row interface{ Scan(...any) error }) (*ledger.Crediteur, error) {
	var (
		c   ledger.Crediteur
		amt string
	)
	err := row.Scan(&c.ID, &c.Name, &amt, &c.Day, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.Amount, err = parseAmount(amt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCrediteur retrieves a crediteur by id.
func (s *Storage) GetCrediteur(id string) (*ledger.Crediteur, error) {
	row := s.db.QueryRow(`SELECT id, name, amount, day, active, created_at FROM crediteuren WHERE id = ?`, id)
	c, err := scanCrediteur(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("crediteur %s: %w", id, ErrNotFound)
	}
	return c, err
}

// ListCrediteuren returns crediteuren, optionally only active ones.
func (s *Storage) ListCrediteuren(activeOnly bool) ([]ledger.Crediteur, error) {
	query := `SELECT id, name, amount, day, active, created_at FROM crediteuren`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Crediteur
	for rows.Next() {
		c, err := scanCrediteur(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// UpdateCrediteur rewrites a crediteur's business fields.
func (s *Storage) UpdateCrediteur(c *ledger.Crediteur) error {
	res, err := s.db.Exec(`
	UPDATE crediteuren SET name = ?, amount = ?, day = ?, active = ? WHERE id = ?`,
		c.Name, c.Amount.String(), c.Day, c.Active, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "crediteur", c.ID)
}

// DeleteCrediteur removes a crediteur by id.
func (s *Storage) DeleteCrediteur(id string) error {
	res, err := s.db.Exec(`DELETE FROM crediteuren WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "crediteur", id)
}

// --- Verzekeraars ---

// SaveVerzekeraar inserts an insurer profile.
func (s *Storage) SaveVerzekeraar(v *ledger.Verzekeraar) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO verzekeraars (id, name, payment_term_days, created_at)
	VALUES (?, ?, ?, ?)`,
		v.ID, v.Name, v.PaymentTermDays, v.CreatedAt,
	)
	return err
}

// GetVerzekeraar retrieves an insurer profile by id.
func (s *Storage) GetVerzekeraar(id string) (*ledger.Verzekeraar, error) {
	var v ledger.Verzekeraar
	err := s.db.QueryRow(
		`SELECT id, name, payment_term_days, created_at FROM verzekeraars WHERE id = ?`, id,
	).Scan(&v.ID, &v.Name, &v.PaymentTermDays, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verzekeraar %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVerzekeraars returns all insurer profiles ordered by name.
func (s *Storage) ListVerzekeraars() ([]ledger.Verzekeraar, error) {
	rows, err := s.db.Query(`SELECT id, name, payment_term_days, created_at FROM verzekeraars ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Verzekeraar
	for rows.Next() {
		var v ledger.Verzekeraar
		if err := rows.Scan(&v.ID, &v.Name, &v.PaymentTermDays, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// DeleteVerzekeraar removes an insurer profile by id.
func (s *Storage) DeleteVerzekeraar(id string) error {
	res, err := s.db.Exec(`DELETE FROM verzekeraars WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "verzekeraar", id)
}

// --- Correcties ---

const correctieColumns = `id, correction_type, amount, description, date, patient_name, invoice_number, matched, original_transaction_id, created_at`

// SaveCorrectie inserts a correctie.
func (s *Storage) SaveCorrectie(c *ledger.Correctie) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO correcties
	(id, correction_type, amount, description, date, patient_name, invoice_number, matched, original_transaction_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(c.CorrectionType), c.Amount.String(), c.Description,
		ledger.FormatDate(c.Date), c.PatientName, c.InvoiceNumber, c.Matched,
		c.OriginalTransactionID, c.CreatedAt,
	)
	return err
}

func scanCorrectie(row interface{ Scan(...any) error }) (*ledger.Correctie, error) {
	var (
		c              ledger.Correctie
		typ, amt, date string
	)
	err := row.Scan(&c.ID, &typ, &amt, &c.Description, &date, &c.PatientName,
		&c.InvoiceNumber, &c.Matched, &c.OriginalTransactionID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.CorrectionType = ledger.CorrectionType(typ)
	if c.Amount, err = parseAmount(amt); err != nil {
		return nil, err
	}
	if c.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCorrectie retrieves a correctie by id.
func (s *Storage) GetCorrectie(id string) (*ledger.Correctie, error) {
	row := s.db.QueryRow(`SELECT `+correctieColumns+` FROM correcties WHERE id = ?`, id)
	c, err := scanCorrectie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("correctie %s: %w", id, ErrNotFound)
	}
	return c, err
}

// ListCorrecties returns correcties, optionally only unmatched ones.
func (s *Storage) ListCorrecties(unmatchedOnly bool) ([]ledger.Correctie, error) {
	query := `SELECT ` + correctieColumns + ` FROM correcties`
	if unmatchedOnly {
		query += ` WHERE matched = 0`
	}
	query += ` ORDER BY date DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Correctie
	for rows.Next() {
		c, err := scanCorrectie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// UpdateCorrectie rewrites a correctie's business fields.
func (s *Storage) UpdateCorrectie(c *ledger.Correctie) error {
	res, err := s.db.Exec(`
	UPDATE correcties
	SET correction_type = ?, amount = ?, description = ?, date = ?,
	    patient_name = ?, invoice_number = ?
	WHERE id = ?`,
		string(c.CorrectionType), c.Amount.String(), c.Description,
		ledger.FormatDate(c.Date), c.PatientName, c.InvoiceNumber, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "correctie", c.ID)
}

// DeleteCorrectie removes a correctie by id.
func (s *Storage) DeleteCorrectie(id string) error {
	res, err := s.db.Exec(`DELETE FROM correcties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "correctie", id)
}

// LinkCorrectie marks the correctie matched against its original
// transaction. The guard clause blocks relinking.
func (s *Storage) LinkCorrectie(correctieID, transactionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var matched bool
	err = tx.QueryRow(`SELECT matched FROM correcties WHERE id = ?`, correctieID).Scan(&matched)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("correctie %s: %w", correctieID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if matched {
		return fmt.Errorf("correctie %s: %w", correctieID, ErrAlreadyMatched)
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM transactions WHERE id = ?)`, transactionID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("transaction %s: %w", transactionID, ErrNotFound)
	}

	if _, err := tx.Exec(`
	UPDATE correcties SET matched = 1, original_transaction_id = ? WHERE id = ?`,
		transactionID, correctieID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// --- Overige omzet ---

// SaveOverigeOmzet inserts an other-revenue entry.
func (s *Storage) SaveOverigeOmzet(o *ledger.OverigeOmzet) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO overige_omzet (id, description, amount, date, recurring, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.Description, o.Amount.String(), ledger.FormatDate(o.Date), o.Recurring, o.CreatedAt,
	)
	return err
}

func scanOverigeOmzet(row interface{ Scan(...any) error }) (*ledger.OverigeOmzet, error) {
	var (
		o         ledger.OverigeOmzet
		amt, date string
	)
	err := row.Scan(&o.ID, &o.Description, &amt, &date, &o.Recurring, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if o.Amount, err = parseAmount(amt); err != nil {
		return nil, err
	}
	if o.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOverigeOmzet retrieves an other-revenue entry by id.
func (s *Storage) GetOverigeOmzet(id string) (*ledger.OverigeOmzet, error) {
	row := s.db.QueryRow(`SELECT id, description, amount, date, recurring, created_at FROM overige_omzet WHERE id = ?`, id)
	o, err := scanOverigeOmzet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("overige omzet %s: %w", id, ErrNotFound)
	}
	return o, err
}

// ListOverigeOmzet returns all other-revenue entries, newest first.
func (s *Storage) ListOverigeOmzet() ([]ledger.OverigeOmzet, error) {
	rows, err := s.db.Query(`SELECT id, description, amount, date, recurring, created_at FROM overige_omzet ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.OverigeOmzet
	for rows.Next() {
		o, err := scanOverigeOmzet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateOverigeOmzet rewrites an other-revenue entry.
func (s *Storage) UpdateOverigeOmzet(o *ledger.OverigeOmzet) error {
	res, err := s.db.Exec(`
	UPDATE overige_omzet SET description = ?, amount = ?, date = ?, recurring = ? WHERE id = ?`,
		o.Description, o.Amount.String(), ledger.FormatDate(o.Date), o.Recurring, o.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "overige omzet", o.ID)
}

// DeleteOverigeOmzet removes an other-revenue entry by id.
func (s *Storage) DeleteOverigeOmzet(id string) error {
	res, err := s.db.Exec(`DELETE FROM overige_omzet WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "overige omzet", id)
}

// --- Bank saldo ---

// SaveBankSaldo inserts a known balance.
func (s *Storage) SaveBankSaldo(b *ledger.BankSaldo) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO bank_saldos (id, saldo, date, description, created_at)
	VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Saldo.String(), ledger.FormatDate(b.Date), b.Description, b.CreatedAt,
	)
	return err
}

func scanBankSaldo(row interface{ Scan(...any) error }) (*ledger.BankSaldo, error) {
	var (
		b           ledger.BankSaldo
		saldo, date string
	)
	err := row.Scan(&b.ID, &saldo, &date, &b.Description, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Saldo, err = parseAmount(saldo); err != nil {
		return nil, err
	}
	if b.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBankSaldos returns all known balances, newest first.
func (s *Storage) ListBankSaldos() ([]ledger.BankSaldo, error) {
	rows, err := s.db.Query(`SELECT id, saldo, date, description, created_at FROM bank_saldos ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.BankSaldo
	for rows.Next() {
		b, err := scanBankSaldo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// LatestBankSaldo returns the most recent balance by date.
func (s *Storage) LatestBankSaldo() (*ledger.BankSaldo, error) {
	row := s.db.QueryRow(`SELECT id, saldo, date, description, created_at FROM bank_saldos ORDER BY date DESC, created_at DESC LIMIT 1`)
	b, err := scanBankSaldo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bank saldo: %w", ErrNotFound)
	}
	return b, err
}

// DeleteBankSaldo removes a balance entry by id.
func (s *Storage) DeleteBankSaldo(id string) error {
	res, err := s.db.Exec(`DELETE FROM bank_saldos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "bank saldo", id)
}

// --- Kosten classificaties ---

// SaveClassificatie inserts a standing cost classification.
func (s *Storage) SaveClassificatie(c *ledger.KostenClassificatie) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
	INSERT INTO kosten_classificaties (id, bank_transaction_id, classification_type, category_name, created_at)
	VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.BankTransactionID, string(c.ClassificationType), c.CategoryName, c.CreatedAt,
	)
	return err
}

// ListClassificaties returns classifications of the given type.
func (s *Storage) ListClassificaties(t ledger.ClassificationType) ([]ledger.KostenClassificatie, error) {
	rows, err := s.db.Query(`
	SELECT id, bank_transaction_id, classification_type, category_name, created_at
	FROM kosten_classificaties WHERE classification_type = ? ORDER BY created_at`, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.KostenClassificatie
	for rows.Next() {
		var (
			c   ledger.KostenClassificatie
			typ string
		)
		if err := rows.Scan(&c.ID, &c.BankTransactionID, &typ, &c.CategoryName, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.ClassificationType = ledger.ClassificationType(typ)
		out = append(out, c)
	}
	return out, rows.Err()
}
