package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		employee_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_domain ON accounts(domain)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		email_confirmed INTEGER NOT NULL DEFAULT 0,
		profile_url TEXT NOT NULL DEFAULT '',
		guessed_email_confidence INTEGER NOT NULL DEFAULT 0,
		guessed_template TEXT NOT NULL DEFAULT '',
		profile_confidence INTEGER NOT NULL DEFAULT 0,
		profile_search_url TEXT NOT NULL DEFAULT '',
		guessed_at TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_account_id ON contacts(account_id)`,
}

// SQLiteStore is a SQLite implementation of the ContactRepository interface
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens the database at dbPath and creates the schema if needed
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{sqlStore{db: db, logger: logger, now: time.Now}}
	if err := store.createSchema(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Opened SQLite contact store", zap.String("path", dbPath))
	return store, nil
}
