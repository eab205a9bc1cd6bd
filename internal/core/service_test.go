package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/domains"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	contacts map[string]*core.Contact
	accounts map[string]*core.Account
	saved    []*core.GuessRecord
	limit    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		contacts: map[string]*core.Contact{},
		accounts: map[string]*core.Account{},
	}
}

func (r *fakeRepo) GetContact(_ context.Context, id string) (*core.Contact, error) {
	if c, ok := r.contacts[id]; ok {
		return c, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) GetAccount(_ context.Context, id string) (*core.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return a, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) FindAccountByDomain(_ context.Context, domain string) (*core.Account, error) {
	for _, a := range r.accounts {
		if a.Domain == domain {
			return a, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) ListConfirmedEmails(_ context.Context, accountID, exclude string, limit int) ([]pattern.KnownEmail, error) {
	r.limit = limit
	var out []pattern.KnownEmail
	for _, c := range r.contacts {
		if c.AccountID == accountID && c.ID != exclude && c.EmailConfirmed {
			out = append(out, c.KnownEmail())
		}
	}
	return out, nil
}

func (r *fakeRepo) SaveGuess(_ context.Context, record *core.GuessRecord) error {
	r.saved = append(r.saved, record)
	return nil
}

func (r *fakeRepo) UpsertConfirmedContact(_ context.Context, accountID, first, last, email string) (*core.Contact, error) {
	for _, c := range r.contacts {
		if c.AccountID == accountID && c.Email == email {
			c.EmailConfirmed = true
			return c, nil
		}
	}
	c := &core.Contact{ID: "new-" + email, AccountID: accountID, FirstName: first, LastName: last, Email: email, EmailConfirmed: true}
	r.contacts[c.ID] = c
	return c, nil
}

type fakeCache struct {
	entries map[string]*core.CacheEntry
	gets    int
}

func (c *fakeCache) Get(_ context.Context, key string) (*core.CacheEntry, error) {
	c.gets++
	if e, ok := c.entries[key]; ok {
		return e, nil
	}
	return nil, core.ErrNotFound
}

func (c *fakeCache) Set(_ context.Context, e *core.CacheEntry) error {
	c.entries[e.Key] = e
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Cleanup(context.Context) error { return nil }

type fakeResolver struct {
	domain string
	err    error
	calls  int
}

func (r *fakeResolver) ResolveDomain(context.Context, string) (*core.DomainResolution, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &core.DomainResolution{Domain: r.domain, Confidence: 0.9, Source: "fake"}, nil
}

func newService(repo core.ContactRepository, cache core.GuessCache, resolver core.DomainResolver) *core.EnrichmentService {
	logger := zap.NewNop()
	return core.NewEnrichmentService(
		repo,
		cache,
		resolver,
		domains.NewChecker(domains.DefaultPersonalProviders, logger),
		utils.NewTextProcessor(logger),
		logger,
		core.ServiceConfig{CacheEnabled: cache != nil, CacheTTL: time.Hour, MaxKnownEmails: 5},
	)
}

func seed(repo *fakeRepo) {
	repo.accounts["acc-1"] = &core.Account{ID: "acc-1", Name: "Acme Corp", Domain: "acme.com", EmployeeCount: 5000}
	repo.contacts["c-1"] = &core.Contact{ID: "c-1", AccountID: "acc-1", FirstName: "John", LastName: "Smith"}
	repo.contacts["c-2"] = &core.Contact{ID: "c-2", AccountID: "acc-1", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@acme.com", EmailConfirmed: true}
}

func TestGuess_RequiresDomain(t *testing.T) {
	svc := newService(newFakeRepo(), nil, nil)
	_, err := svc.Guess(context.Background(), core.GuessRequest{FirstName: "John", LastName: "Smith", Domain: "  "})
	assert.ErrorIs(t, err, core.ErrNoDomain)
}

func TestGuess_FoldsNames(t *testing.T) {
	svc := newService(newFakeRepo(), nil, nil)
	result, err := svc.Guess(context.Background(), core.GuessRequest{
		FirstName: " José ",
		LastName:  "Núñez",
		Domain:    "www.Acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "jose.nunez@acme.com", result.Best.Email)
	assert.Equal(t, "https://www.linkedin.com/in/jose-nunez", result.Profile.URL)
}

func TestGuess_UsesCache(t *testing.T) {
	cache := &fakeCache{entries: map[string]*core.CacheEntry{}}
	svc := newService(newFakeRepo(), cache, nil)
	req := core.GuessRequest{FirstName: "John", LastName: "Smith", Domain: "acme.com", CompanySize: pattern.Large}

	first, err := svc.Guess(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, cache.entries, 1)
	assert.Equal(t, 60, first.Best.Confidence)

	// Tamper with the cached value so a hit is observable
	for _, e := range cache.entries {
		e.Result.Best.Confidence = 1
	}
	second, err := svc.Guess(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Best.Confidence)
	assert.Equal(t, 2, cache.gets)

	// A different size hint is a different key
	req.CompanySize = pattern.Small
	_, err = svc.Guess(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, cache.entries, 2)
}

func TestEnrichContact(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := newService(repo, nil, nil)

	record, err := svc.EnrichContact(context.Background(), "c-1")
	require.NoError(t, err)

	assert.Equal(t, "c-1", record.ContactID)
	assert.Equal(t, "acme.com", record.Domain)
	assert.Equal(t, core.DomainSourceAccount, record.DomainSource)
	assert.Equal(t, "john.smith@acme.com", record.Email)
	// Large company (+20) and detected first.last (+30)
	assert.Equal(t, 90, record.EmailConfidence)
	assert.Equal(t, pattern.FirstDotLast, record.Template)
	assert.Equal(t, "https://www.linkedin.com/in/john-smith", record.ProfileURL)
	assert.Equal(t, 1, record.KnownEmailCount)
	require.NotNil(t, record.Result.Detected)
	assert.Equal(t, 100, record.Result.Detected.Confidence)

	require.Len(t, repo.saved, 1)
	assert.Same(t, record, repo.saved[0])
	assert.Equal(t, 5, repo.limit)
}

func TestEnrichContact_Errors(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := newService(repo, nil, nil)

	_, err := svc.EnrichContact(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.EnrichContact(context.Background(), "c-2")
	assert.ErrorIs(t, err, core.ErrEmailConfirmed)

	repo.contacts["orphan"] = &core.Contact{ID: "orphan", AccountID: "gone", FirstName: "A", LastName: "B"}
	_, err = svc.EnrichContact(context.Background(), "orphan")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEnrichContact_DomainFallback(t *testing.T) {
	tests := []struct {
		name       string
		domain     string
		resolver   *fakeResolver
		wantDomain string
		wantSource string
		wantErr    error
	}{
		{"website url", "https://www.acme.com/about", nil, "acme.com", core.DomainSourceAccount, nil},
		{"empty without resolver", "", nil, "", "", core.ErrNoDomain},
		{"empty with resolver", "", &fakeResolver{domain: "acme.io"}, "acme.io", "fake", nil},
		{"personal provider", "gmail.com", &fakeResolver{domain: "acme.io"}, "acme.io", "fake", nil},
		{"resolver fails", "", &fakeResolver{err: errors.New("boom")}, "", "", core.ErrNoDomain},
		{"resolver returns personal", "", &fakeResolver{domain: "yahoo.com"}, "", "", core.ErrNoDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			seed(repo)
			repo.accounts["acc-1"].Domain = tt.domain

			var resolver core.DomainResolver
			if tt.resolver != nil {
				resolver = tt.resolver
			}
			svc := newService(repo, nil, resolver)

			record, err := svc.EnrichContact(context.Background(), "c-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDomain, record.Domain)
			assert.Equal(t, tt.wantSource, record.DomainSource)
		})
	}
}

func TestAccountSizeHint(t *testing.T) {
	tests := []struct {
		employees int
		want      pattern.CompanySize
	}{
		{0, pattern.SizeUnknown},
		{12, pattern.Small},
		{49, pattern.Small},
		{50, pattern.Medium},
		{999, pattern.Medium},
		{1000, pattern.Large},
	}
	for _, tt := range tests {
		a := &core.Account{EmployeeCount: tt.employees}
		assert.Equal(t, tt.want, a.SizeHint(), tt.employees)
	}
}

func TestConfirmAddress(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	seed(repo)
	svc := newService(repo, nil, nil)

	c, err := svc.ConfirmAddress(ctx, "Bob Lee", "Bob.Lee@ACME.com")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", c.AccountID)
	assert.Equal(t, "Bob", c.FirstName)
	assert.Equal(t, "Lee", c.LastName)
	assert.Equal(t, "bob.lee@acme.com", c.Email)
	assert.True(t, c.EmailConfirmed)

	_, err = svc.ConfirmAddress(ctx, "Someone", "someone@gmail.com")
	assert.ErrorIs(t, err, core.ErrPersonalAddress)

	_, err = svc.ConfirmAddress(ctx, "Someone", "someone@initech.com")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.ConfirmAddress(ctx, "", "not-an-address")
	assert.ErrorIs(t, err, core.ErrInvalidAddress)
}
