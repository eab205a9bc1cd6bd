package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"go.uber.org/zap"
)

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlStore holds the queries shared by the SQLite and MySQL stores.
// Both drivers use ? placeholders and timestamps are stored as RFC3339 text.
type sqlStore struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

func (s *sqlStore) timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (s *sqlStore) createSchema(statements []string) error {
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveAccount inserts or updates an account
func (s *sqlStore) SaveAccount(ctx context.Context, account *core.Account) error {
	found, err := s.exists(ctx, `SELECT COUNT(*) FROM accounts WHERE id = ?`, account.ID)
	if err != nil {
		return err
	}

	domain := pattern.NormalizeDomain(account.Domain)
	if found {
		_, err = s.db.ExecContext(ctx, `
			UPDATE accounts SET name = ?, domain = ?, employee_count = ?
			WHERE id = ?
		`, account.Name, domain, account.EmployeeCount, account.ID)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO accounts (id, name, domain, employee_count)
			VALUES (?, ?, ?, ?)
		`, account.ID, account.Name, domain, account.EmployeeCount)
	}
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// SaveContact inserts or updates a contact
func (s *sqlStore) SaveContact(ctx context.Context, contact *core.Contact) error {
	updated := contact.UpdatedAt
	if updated.IsZero() {
		updated = s.now()
	}

	found, err := s.exists(ctx, `SELECT COUNT(*) FROM contacts WHERE id = ?`, contact.ID)
	if err != nil {
		return err
	}

	if found {
		_, err = s.db.ExecContext(ctx, `
			UPDATE contacts
			SET account_id = ?, first_name = ?, last_name = ?, email = ?,
				email_confirmed = ?, profile_url = ?, updated_at = ?
			WHERE id = ?
		`, contact.AccountID, contact.FirstName, contact.LastName, contact.Email,
			contact.EmailConfirmed, contact.ProfileURL, s.timestamp(updated), contact.ID)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO contacts (id, account_id, first_name, last_name, email, email_confirmed, profile_url, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, contact.ID, contact.AccountID, contact.FirstName, contact.LastName, contact.Email,
			contact.EmailConfirmed, contact.ProfileURL, s.timestamp(updated))
	}
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (s *sqlStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return n > 0, nil
}

// GetContact returns a contact by ID
func (s *sqlStore) GetContact(ctx context.Context, id string) (*core.Contact, error) {
	return s.getContact(ctx, s.db, id)
}

func (s *sqlStore) getContact(ctx context.Context, q queryRower, id string) (*core.Contact, error) {
	var (
		c         core.Contact
		updatedAt string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, account_id, first_name, last_name, email, email_confirmed, profile_url, updated_at
		FROM contacts
		WHERE id = ?
	`, id).Scan(&c.ID, &c.AccountID, &c.FirstName, &c.LastName, &c.Email, &c.EmailConfirmed, &c.ProfileURL, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}

	if updatedAt != "" {
		if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
	}
	return &c, nil
}

// GetAccount returns an account by ID
func (s *sqlStore) GetAccount(ctx context.Context, id string) (*core.Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, name, domain, employee_count
		FROM accounts
		WHERE id = ?
	`, id))
}

// FindAccountByDomain returns the first account with the given domain
func (s *sqlStore) FindAccountByDomain(ctx context.Context, domain string) (*core.Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, name, domain, employee_count
		FROM accounts
		WHERE domain = ?
		ORDER BY id
		LIMIT 1
	`, pattern.NormalizeDomain(domain)))
}

func (s *sqlStore) scanAccount(row *sql.Row) (*core.Account, error) {
	var a core.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Domain, &a.EmployeeCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &a, nil
}

// ListConfirmedEmails returns confirmed addresses at the account ordered by contact ID
func (s *sqlStore) ListConfirmedEmails(ctx context.Context, accountID, excludeContactID string, limit int) ([]pattern.KnownEmail, error) {
	query := `
		SELECT first_name, last_name, email
		FROM contacts
		WHERE account_id = ? AND id <> ? AND email_confirmed = 1 AND email <> ''
		ORDER BY id`
	args := []any{accountID, excludeContactID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmed emails: %w", err)
	}
	defer rows.Close()

	var known []pattern.KnownEmail
	for rows.Next() {
		var c core.Contact
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan confirmed email: %w", err)
		}
		known = append(known, c.KnownEmail())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read confirmed emails: %w", err)
	}
	return known, nil
}

// SaveGuess writes the guessed address and metadata onto the contact.
// An empty profile URL leaves the stored one in place.
func (s *sqlStore) SaveGuess(ctx context.Context, record *core.GuessRecord) error {
	found, err := s.exists(ctx, `SELECT COUNT(*) FROM contacts WHERE id = ?`, record.ContactID)
	if err != nil {
		return err
	}
	if !found {
		return core.ErrNotFound
	}

	guessedAt := s.timestamp(record.GuessedAt)
	_, err = s.db.ExecContext(ctx, `
		UPDATE contacts
		SET email = ?,
			profile_url = COALESCE(NULLIF(?, ''), profile_url),
			guessed_email_confidence = ?,
			guessed_template = ?,
			profile_confidence = ?,
			profile_search_url = ?,
			guessed_at = ?,
			updated_at = ?
		WHERE id = ?
	`, record.Email, record.ProfileURL, record.EmailConfidence, record.Template.String(),
		record.ProfileConfidence, record.ProfileSearchURL, guessedAt, guessedAt, record.ContactID)
	if err != nil {
		return fmt.Errorf("failed to save guess: %w", err)
	}

	s.logger.Debug("Saved guess", zap.String("contact_id", record.ContactID), zap.String("email", record.Email))
	return nil
}

// UpsertConfirmedContact confirms the address on an existing contact or creates one
func (s *sqlStore) UpsertConfirmedContact(ctx context.Context, accountID, firstName, lastName, email string) (*core.Contact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := s.timestamp(s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE id = ?`, accountID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	if exists == 0 {
		return nil, core.ErrNotFound
	}

	var id, first, last string
	err = tx.QueryRowContext(ctx, `
		SELECT id, first_name, last_name FROM contacts
		WHERE account_id = ? AND LOWER(email) = ?
		ORDER BY id
		LIMIT 1
	`, accountID, email).Scan(&id, &first, &last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO contacts (id, account_id, first_name, last_name, email, email_confirmed, profile_url, updated_at)
			VALUES (?, ?, ?, ?, ?, 1, '', ?)
		`, id, accountID, firstName, lastName, email, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert contact: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to query contact: %w", err)
	default:
		if first == "" && last == "" {
			first, last = firstName, lastName
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE contacts
			SET email_confirmed = 1, first_name = ?, last_name = ?, updated_at = ?
			WHERE id = ?
		`, first, last, now, id)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm contact: %w", err)
		}
	}

	contact, err := s.getContact(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return contact, nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}
