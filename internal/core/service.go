package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mikey/contact-email-guesser/internal/domains"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"go.uber.org/zap"
)

// ServiceConfig holds the tunables of the enrichment service
type ServiceConfig struct {
	CacheEnabled   bool
	CacheTTL       time.Duration
	MaxKnownEmails int
}

// EnrichmentService prepares inputs for the pattern engine, runs it, and
// writes results back to the contact store
type EnrichmentService struct {
	repo          ContactRepository
	cache         GuessCache
	resolver      DomainResolver
	checker       *domains.Checker
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	cfg           ServiceConfig
	now           func() time.Time
}

// NewEnrichmentService creates a new enrichment service. cache and resolver may be nil.
func NewEnrichmentService(
	repo ContactRepository,
	cache GuessCache,
	resolver DomainResolver,
	checker *domains.Checker,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	cfg ServiceConfig,
) *EnrichmentService {
	if cfg.MaxKnownEmails <= 0 {
		cfg.MaxKnownEmails = 10
	}
	return &EnrichmentService{
		repo:          repo,
		cache:         cache,
		resolver:      resolver,
		checker:       checker,
		textProcessor: textProcessor,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Guess runs the pattern engine for a single person, consulting the cache first
func (s *EnrichmentService) Guess(ctx context.Context, req GuessRequest) (*pattern.Result, error) {
	if strings.TrimSpace(req.Domain) == "" {
		return nil, ErrNoDomain
	}

	preq := pattern.Request{
		First:       s.textProcessor.FoldName(req.FirstName),
		Last:        s.textProcessor.FoldName(req.LastName),
		Domain:      pattern.NormalizeDomain(req.Domain),
		CompanyName: strings.TrimSpace(req.CompanyName),
		CompanySize: req.CompanySize,
		KnownEmails: req.KnownEmails,
	}

	useCache := s.cfg.CacheEnabled && s.cache != nil
	key := fingerprint(preq)

	if useCache {
		entry, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.logger.Debug("Cache hit for guess", zap.String("key", key), zap.String("domain", preq.Domain))
			return entry.Result, nil
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		default:
			s.logger.Warn("Failed to read guess cache", zap.Error(err))
		}
	}

	result := pattern.Guess(preq)

	if useCache {
		now := s.now()
		entry := &CacheEntry{
			Key:       key,
			Result:    &result,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.CacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	s.logger.Debug("Guessed email",
		zap.String("domain", preq.Domain),
		zap.String("best", result.Best.Email),
		zap.Int("confidence", result.Best.Confidence),
		zap.Int("known_emails", len(preq.KnownEmails)))

	return &result, nil
}

// EnrichContact guesses the address and profile URL of a stored contact
// and writes them back
func (s *EnrichmentService) EnrichContact(ctx context.Context, contactID string) (*GuessRecord, error) {
	contact, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact %s: %w", contactID, err)
	}
	if contact.EmailConfirmed {
		return nil, ErrEmailConfirmed
	}

	account, err := s.repo.GetAccount(ctx, contact.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", contact.AccountID, err)
	}

	domain, source, err := s.resolveDomain(ctx, account)
	if err != nil {
		return nil, err
	}

	known, err := s.repo.ListConfirmedEmails(ctx, account.ID, contact.ID, s.cfg.MaxKnownEmails)
	if err != nil {
		return nil, fmt.Errorf("failed to list known emails: %w", err)
	}

	result, err := s.Guess(ctx, GuessRequest{
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Domain:      domain,
		CompanyName: account.Name,
		CompanySize: account.SizeHint(),
		KnownEmails: known,
	})
	if err != nil {
		return nil, err
	}

	record := &GuessRecord{
		ContactID:         contact.ID,
		Domain:            domain,
		DomainSource:      source,
		Email:             result.Best.Email,
		EmailConfidence:   result.Best.Confidence,
		Template:          result.Best.Template,
		ProfileURL:        result.Profile.URL,
		ProfileConfidence: result.Profile.Confidence,
		ProfileSearchURL:  result.ProfileSearchURL,
		KnownEmailCount:   len(known),
		Result:            result,
		GuessedAt:         s.now().UTC(),
	}

	if err := s.repo.SaveGuess(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save guess for contact %s: %w", contact.ID, err)
	}

	s.logger.Info("Enriched contact",
		zap.String("contact_id", contact.ID),
		zap.String("account_id", account.ID),
		zap.String("domain", domain),
		zap.String("domain_source", source),
		zap.String("email", record.Email),
		zap.Int("confidence", record.EmailConfidence),
		zap.Int("known_emails", len(known)))

	return record, nil
}

// ConfirmAddress records an address seen in real correspondence as a
// confirmed contact of the account that owns its domain
func (s *EnrichmentService) ConfirmAddress(ctx context.Context, displayName, email string) (*Contact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return nil, ErrInvalidAddress
	}
	if s.isPersonal(email) {
		return nil, ErrPersonalAddress
	}

	domain := pattern.NormalizeDomain(email[at+1:])
	account, err := s.repo.FindAccountByDomain(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to find account for %s: %w", domain, err)
	}

	first, last := pattern.SplitDisplayName(s.textProcessor.SanitizeUTF8(displayName))
	contact, err := s.repo.UpsertConfirmedContact(ctx, account.ID, first, last, email)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm %s: %w", email, err)
	}

	s.logger.Info("Confirmed contact address",
		zap.String("contact_id", contact.ID),
		zap.String("account_id", account.ID),
		zap.String("email", email))

	return contact, nil
}

// resolveDomain prefers the account's own domain and falls back to the resolver
func (s *EnrichmentService) resolveDomain(ctx context.Context, account *Account) (string, string, error) {
	domain := hostOf(account.Domain)
	if domain != "" && !s.isPersonal(domain) {
		return domain, DomainSourceAccount, nil
	}

	if s.resolver == nil || strings.TrimSpace(account.Name) == "" {
		return "", "", ErrNoDomain
	}

	res, err := s.resolver.ResolveDomain(ctx, account.Name)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve domain for %q: %w", account.Name, errors.Join(ErrNoDomain, err))
	}

	domain = hostOf(res.Domain)
	if domain == "" || s.isPersonal(domain) {
		return "", "", ErrNoDomain
	}

	s.logger.Info("Resolved account domain",
		zap.String("account_id", account.ID),
		zap.String("company", account.Name),
		zap.String("domain", domain),
		zap.String("source", res.Source),
		zap.Float64("confidence", res.Confidence))

	return domain, res.Source, nil
}

func (s *EnrichmentService) isPersonal(domain string) bool {
	return s.checker != nil && s.checker.IsPersonal(domain)
}

// hostOf accepts a bare domain or a website URL and returns the normalized host
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		if u, err := url.Parse(raw); err == nil {
			raw = u.Hostname()
		}
	} else if i := strings.IndexAny(raw, "/:"); i >= 0 {
		raw = raw[:i]
	}
	return pattern.NormalizeDomain(raw)
}

// fingerprint derives a stable cache key from a normalized request
func fingerprint(req pattern.Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%q|%q|%q|%q|%d", req.First, req.Last, req.Domain, req.CompanyName, req.CompanySize)
	for _, k := range req.KnownEmails {
		fmt.Fprintf(h, "|%q|%q|%q|%q", k.DisplayName, k.FirstName, k.LastName, k.Email)
	}
	return "guess:v2:" + hex.EncodeToString(h.Sum(nil))
}
