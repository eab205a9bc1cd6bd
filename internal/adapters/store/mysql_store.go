package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		domain VARCHAR(255) NOT NULL DEFAULT '',
		employee_count INT NOT NULL DEFAULT 0,
		INDEX idx_accounts_domain (domain)
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id VARCHAR(64) PRIMARY KEY,
		account_id VARCHAR(64) NOT NULL,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(320) NOT NULL DEFAULT '',
		email_confirmed TINYINT(1) NOT NULL DEFAULT 0,
		profile_url VARCHAR(512) NOT NULL DEFAULT '',
		guessed_email_confidence INT NOT NULL DEFAULT 0,
		guessed_template VARCHAR(32) NOT NULL DEFAULT '',
		profile_confidence INT NOT NULL DEFAULT 0,
		profile_search_url VARCHAR(1024) NOT NULL DEFAULT '',
		guessed_at VARCHAR(32) NOT NULL DEFAULT '',
		updated_at VARCHAR(32) NOT NULL DEFAULT '',
		INDEX idx_contacts_account_id (account_id)
	)`,
}

// MySQLStore is a MySQL implementation of the ContactRepository interface
type MySQLStore struct {
	sqlStore
}

// NewMySQLStore connects to the database and creates the schema if needed
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	store := &MySQLStore{sqlStore{db: db, logger: logger, now: time.Now}}
	if err := store.createSchema(mysqlSchema); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Connected to MySQL contact store")
	return store, nil
}
