package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the ContactRepository interface
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*core.Account
	contacts map[string]*core.Contact
	guesses  map[string]*core.GuessRecord
	logger   *zap.Logger
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory contact store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*core.Account),
		contacts: make(map[string]*core.Contact),
		guesses:  make(map[string]*core.GuessRecord),
		logger:   logger,
		now:      time.Now,
	}
}

// PutAccount inserts or replaces an account
func (s *MemoryStore) PutAccount(account *core.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *account
	a.Domain = pattern.NormalizeDomain(a.Domain)
	s.accounts[a.ID] = &a
}

// PutContact inserts or replaces a contact
func (s *MemoryStore) PutContact(contact *core.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *contact
	s.contacts[c.ID] = &c
}

// SaveAccount inserts or replaces an account
func (s *MemoryStore) SaveAccount(_ context.Context, account *core.Account) error {
	s.PutAccount(account)
	return nil
}

// SaveContact inserts or replaces a contact
func (s *MemoryStore) SaveContact(_ context.Context, contact *core.Contact) error {
	s.PutContact(contact)
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}

// GetContact returns a copy of the contact
func (s *MemoryStore) GetContact(_ context.Context, id string) (*core.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	out := *c
	return &out, nil
}

// GetAccount returns a copy of the account
func (s *MemoryStore) GetAccount(_ context.Context, id string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	out := *a
	return &out, nil
}

// FindAccountByDomain returns the account with the given domain
func (s *MemoryStore) FindAccountByDomain(_ context.Context, domain string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domain = pattern.NormalizeDomain(domain)
	for _, a := range s.sortedAccounts() {
		if a.Domain == domain {
			out := *a
			return &out, nil
		}
	}
	return nil, core.ErrNotFound
}

// ListConfirmedEmails returns confirmed addresses at the account ordered by contact ID
func (s *MemoryStore) ListConfirmedEmails(_ context.Context, accountID, excludeContactID string, limit int) ([]pattern.KnownEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var known []pattern.KnownEmail
	for _, c := range s.sortedContacts() {
		if limit > 0 && len(known) >= limit {
			break
		}
		if c.AccountID != accountID || c.ID == excludeContactID || !c.EmailConfirmed || c.Email == "" {
			continue
		}
		known = append(known, c.KnownEmail())
	}
	return known, nil
}

// SaveGuess writes the guessed address and profile URL onto the contact
func (s *MemoryStore) SaveGuess(_ context.Context, record *core.GuessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[record.ContactID]
	if !ok {
		return core.ErrNotFound
	}
	c.Email = record.Email
	if record.ProfileURL != "" {
		c.ProfileURL = record.ProfileURL
	}
	c.UpdatedAt = record.GuessedAt
	s.guesses[c.ID] = record

	s.logger.Debug("Saved guess", zap.String("contact_id", c.ID), zap.String("email", c.Email))
	return nil
}

// LastGuess returns the most recent guess saved for a contact
func (s *MemoryStore) LastGuess(contactID string) (*core.GuessRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guesses[contactID]
	return g, ok
}

// UpsertConfirmedContact confirms the address on an existing contact or creates one
func (s *MemoryStore) UpsertConfirmedContact(_ context.Context, accountID, firstName, lastName, email string) (*core.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return nil, core.ErrNotFound
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range s.sortedContacts() {
		if c.AccountID == accountID && strings.EqualFold(c.Email, email) {
			c.EmailConfirmed = true
			c.UpdatedAt = s.now().UTC()
			if c.FirstName == "" && c.LastName == "" {
				c.FirstName, c.LastName = firstName, lastName
			}
			out := *c
			return &out, nil
		}
	}

	c := &core.Contact{
		ID:             uuid.NewString(),
		AccountID:      accountID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		EmailConfirmed: true,
		UpdatedAt:      s.now().UTC(),
	}
	s.contacts[c.ID] = c
	out := *c
	return &out, nil
}

func (s *MemoryStore) sortedContacts() []*core.Contact {
	out := make([]*core.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) sortedAccounts() []*core.Account {
	out := make([]*core.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
