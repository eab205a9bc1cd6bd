package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type seededRepository interface {
	core.ContactRepository
	seedAccount(t *testing.T, a *core.Account)
	seedContact(t *testing.T, c *core.Contact)
}

type memorySeeder struct{ *MemoryStore }

func (m memorySeeder) seedAccount(_ *testing.T, a *core.Account) { m.PutAccount(a) }
func (m memorySeeder) seedContact(_ *testing.T, c *core.Contact) { m.PutContact(c) }

type sqliteSeeder struct{ *SQLiteStore }

func (s sqliteSeeder) seedAccount(t *testing.T, a *core.Account) {
	require.NoError(t, s.SaveAccount(context.Background(), a))
}

func (s sqliteSeeder) seedContact(t *testing.T, c *core.Contact) {
	require.NoError(t, s.SaveContact(context.Background(), c))
}

func seed(t *testing.T, repo seededRepository) {
	repo.seedAccount(t, &core.Account{ID: "acc-1", Name: "Acme Corp", Domain: "WWW.Acme.com", EmployeeCount: 2500})
	repo.seedAccount(t, &core.Account{ID: "acc-2", Name: "Globex", Domain: "globex.io"})

	repo.seedContact(t, &core.Contact{ID: "c-1", AccountID: "acc-1", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@acme.com", EmailConfirmed: true})
	repo.seedContact(t, &core.Contact{ID: "c-2", AccountID: "acc-1", FirstName: "Bob", LastName: "Lee", Email: "bob.lee@acme.com", EmailConfirmed: true})
	repo.seedContact(t, &core.Contact{ID: "c-3", AccountID: "acc-1", FirstName: "Ann", LastName: "Ray", Email: "ann@acme.com"})
	repo.seedContact(t, &core.Contact{ID: "c-4", AccountID: "acc-1", FirstName: "John", LastName: "Smith", ProfileURL: "https://www.linkedin.com/in/jsmith"})
	repo.seedContact(t, &core.Contact{ID: "c-5", AccountID: "acc-2", FirstName: "Hank", LastName: "Scorpio", Email: "hank@globex.io", EmailConfirmed: true})
}

func runRepositoryTests(t *testing.T, repo seededRepository) {
	ctx := context.Background()
	seed(t, repo)

	t.Run("GetContact", func(t *testing.T) {
		c, err := repo.GetContact(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, "Jane", c.FirstName)
		assert.True(t, c.EmailConfirmed)

		_, err = repo.GetContact(ctx, "nope")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("GetAccount", func(t *testing.T) {
		a, err := repo.GetAccount(ctx, "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "acme.com", a.Domain)
		assert.Equal(t, pattern.Large, a.SizeHint())

		_, err = repo.GetAccount(ctx, "nope")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("FindAccountByDomain", func(t *testing.T) {
		a, err := repo.FindAccountByDomain(ctx, "Globex.IO")
		require.NoError(t, err)
		assert.Equal(t, "acc-2", a.ID)

		_, err = repo.FindAccountByDomain(ctx, "initech.com")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("ListConfirmedEmails", func(t *testing.T) {
		known, err := repo.ListConfirmedEmails(ctx, "acc-1", "c-4", 10)
		require.NoError(t, err)
		assert.Equal(t, []pattern.KnownEmail{
			{DisplayName: "Jane Doe", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@acme.com"},
			{DisplayName: "Bob Lee", FirstName: "Bob", LastName: "Lee", Email: "bob.lee@acme.com"},
		}, known)

		detected := pattern.Detect(known, "acme.com")
		require.NotNil(t, detected)
		assert.Equal(t, pattern.FirstDotLast, detected.Template)

		known, err = repo.ListConfirmedEmails(ctx, "acc-1", "c-1", 10)
		require.NoError(t, err)
		assert.Len(t, known, 1)

		known, err = repo.ListConfirmedEmails(ctx, "acc-1", "", 1)
		require.NoError(t, err)
		assert.Len(t, known, 1)
	})

	t.Run("SaveGuess", func(t *testing.T) {
		record := &core.GuessRecord{
			ContactID:         "c-4",
			Email:             "john.smith@acme.com",
			EmailConfidence:   90,
			Template:          pattern.FirstDotLast,
			ProfileSearchURL:  "https://www.linkedin.com/search/results/people/?keywords=John%20Smith",
			ProfileConfidence: 85,
			GuessedAt:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.SaveGuess(ctx, record))

		c, err := repo.GetContact(ctx, "c-4")
		require.NoError(t, err)
		assert.Equal(t, "john.smith@acme.com", c.Email)
		assert.False(t, c.EmailConfirmed)
		// An empty profile URL keeps the stored one
		assert.Equal(t, "https://www.linkedin.com/in/jsmith", c.ProfileURL)

		record.ProfileURL = "https://www.linkedin.com/in/johnsmith"
		require.NoError(t, repo.SaveGuess(ctx, record))
		c, err = repo.GetContact(ctx, "c-4")
		require.NoError(t, err)
		assert.Equal(t, "https://www.linkedin.com/in/johnsmith", c.ProfileURL)

		assert.ErrorIs(t, repo.SaveGuess(ctx, &core.GuessRecord{ContactID: "nope"}), core.ErrNotFound)
	})

	t.Run("UpsertConfirmedContact", func(t *testing.T) {
		c, err := repo.UpsertConfirmedContact(ctx, "acc-1", "Ann", "Ray", "ANN@acme.com")
		require.NoError(t, err)
		assert.Equal(t, "c-3", c.ID)
		assert.True(t, c.EmailConfirmed)

		c, err = repo.UpsertConfirmedContact(ctx, "acc-2", "Frank", "Grimes", "frank.grimes@globex.io")
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "frank.grimes@globex.io", c.Email)

		known, err := repo.ListConfirmedEmails(ctx, "acc-2", "", 0)
		require.NoError(t, err)
		assert.Len(t, known, 2)

		_, err = repo.UpsertConfirmedContact(ctx, "nope", "A", "B", "a@b.com")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	runRepositoryTests(t, memorySeeder{NewMemoryStore(zap.NewNop())})
}

func TestMemoryStore_LastGuess(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	s.PutContact(&core.Contact{ID: "c-1", AccountID: "acc-1"})

	_, ok := s.LastGuess("c-1")
	assert.False(t, ok)

	require.NoError(t, s.SaveGuess(context.Background(), &core.GuessRecord{ContactID: "c-1", Email: "a@b.com"}))
	g, ok := s.LastGuess("c-1")
	require.True(t, ok)
	assert.Equal(t, "a@b.com", g.Email)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "contacts.db"), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	runRepositoryTests(t, sqliteSeeder{s})
}
