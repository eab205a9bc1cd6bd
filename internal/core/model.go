package core

import (
	"time"

	"github.com/mikey/contact-email-guesser/internal/pattern"
)

// Account represents a company a contact works for
type Account struct {
	ID            string
	Name          string
	Domain        string
	EmployeeCount int
}

// SizeHint maps the employee count to a company size hint for scoring
func (a *Account) SizeHint() pattern.CompanySize {
	switch {
	case a.EmployeeCount <= 0:
		return pattern.SizeUnknown
	case a.EmployeeCount < 50:
		return pattern.Small
	case a.EmployeeCount < 1000:
		return pattern.Medium
	default:
		return pattern.Large
	}
}

// Contact represents a person at an account
type Contact struct {
	ID             string
	AccountID      string
	FirstName      string
	LastName       string
	Email          string
	EmailConfirmed bool
	ProfileURL     string
	UpdatedAt      time.Time
}

// DisplayName returns the contact's full name
func (c *Contact) DisplayName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// KnownEmail returns the contact's address as a detector sample, keeping the
// stored name split so multi-word first names stay intact
func (c *Contact) KnownEmail() pattern.KnownEmail {
	return pattern.KnownEmail{
		DisplayName: c.DisplayName(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
	}
}

// GuessRequest is a stateless guess request
type GuessRequest struct {
	FirstName   string
	LastName    string
	Domain      string
	CompanyName string
	CompanySize pattern.CompanySize
	KnownEmails []pattern.KnownEmail
}

// GuessRecord is the outcome of enriching a contact, as written back to the store
type GuessRecord struct {
	ContactID         string           `json:"contact_id"`
	Domain            string           `json:"domain"`
	DomainSource      string           `json:"domain_source"`
	Email             string           `json:"email"`
	EmailConfidence   int              `json:"email_confidence"`
	Template          pattern.Template `json:"template"`
	ProfileURL        string           `json:"profile_url,omitempty"`
	ProfileConfidence int              `json:"profile_confidence"`
	ProfileSearchURL  string           `json:"profile_search_url"`
	KnownEmailCount   int              `json:"known_email_count"`
	Result            *pattern.Result  `json:"result"`
	GuessedAt         time.Time        `json:"guessed_at"`
}

// DomainResolution is a company domain derived from the company name
type DomainResolution struct {
	Domain      string
	Confidence  float64
	Explanation string
	Source      string
}

// CacheEntry is a cached guess result
type CacheEntry struct {
	Key       string
	Result    *pattern.Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

const (
	// DomainSourceAccount means the domain came from the account record
	DomainSourceAccount = "account"
)
