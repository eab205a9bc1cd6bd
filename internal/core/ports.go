package core

import (
	"context"

	"github.com/mikey/contact-email-guesser/internal/pattern"
)

// ContactRepository defines the interface for loading and updating contacts
type ContactRepository interface {
	// GetContact returns a contact by ID, or ErrNotFound
	GetContact(ctx context.Context, id string) (*Contact, error)

	// GetAccount returns an account by ID, or ErrNotFound
	GetAccount(ctx context.Context, id string) (*Account, error)

	// FindAccountByDomain returns the account owning a normalized domain, or ErrNotFound
	FindAccountByDomain(ctx context.Context, domain string) (*Account, error)

	// ListConfirmedEmails returns up to limit confirmed addresses of contacts
	// at the account, excluding one contact
	ListConfirmedEmails(ctx context.Context, accountID, excludeContactID string, limit int) ([]pattern.KnownEmail, error)

	// SaveGuess writes a guess back onto its contact
	SaveGuess(ctx context.Context, record *GuessRecord) error

	// UpsertConfirmedContact marks an address at the account as confirmed,
	// creating the contact if none has that address
	UpsertConfirmedContact(ctx context.Context, accountID, firstName, lastName, email string) (*Contact, error)
}

// GuessCache defines the interface for caching guess results
type GuessCache interface {
	// Get retrieves a cached entry by key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// DomainResolver derives a company's email domain from its name
type DomainResolver interface {
	ResolveDomain(ctx context.Context, companyName string) (*DomainResolution, error)
}
