package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order.
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
	{
		Version: 2,
		Name:    "add_kosten_classificaties",
		Up:      migration002AddKostenClassificaties,
	},
}

// runMigrations executes all pending migrations, each in its own
// transaction.
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
			migration.Version, migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// Amounts are stored as decimal strings so cents survive round-trips
// exactly; dates as YYYY-MM-DD text.
func migration001InitialSchema(tx *sql.Tx) error {
	schema := `
	CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		patient_name TEXT NOT NULL DEFAULT '',
		invoice_number TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		reconciled INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX idx_transactions_date ON transactions(date);
	CREATE INDEX idx_transactions_reconciled ON transactions(reconciled);

	CREATE TABLE bank_transactions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		amount TEXT NOT NULL,
		counterparty TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		reconciled INTEGER NOT NULL DEFAULT 0,
		matched_transaction_id TEXT NOT NULL DEFAULT '',
		matched_crediteur_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX idx_bank_transactions_reconciled ON bank_transactions(reconciled);

	CREATE TABLE crediteuren (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		day INTEGER NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE verzekeraars (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		payment_term_days INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE correcties (
		id TEXT PRIMARY KEY,
		correction_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		patient_name TEXT NOT NULL DEFAULT '',
		invoice_number TEXT NOT NULL DEFAULT '',
		matched INTEGER NOT NULL DEFAULT 0,
		original_transaction_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE overige_omzet (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		date TEXT NOT NULL,
		recurring INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE bank_saldos (
		id TEXT PRIMARY KEY,
		saldo TEXT NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	_, err := tx.Exec(schema)
	return err
}

func migration002AddKostenClassificaties(tx *sql.Tx) error {
	schema := `
	CREATE TABLE kosten_classificaties (
		id TEXT PRIMARY KEY,
		bank_transaction_id TEXT NOT NULL,
		classification_type TEXT NOT NULL,
		category_name TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (bank_transaction_id) REFERENCES bank_transactions(id)
	);
	CREATE INDEX idx_classificaties_type ON kosten_classificaties(classification_type);
	`
	_, err := tx.Exec(schema)
	return err
}
