package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const seedYAML = `
accounts:
  - id: acc-1
    name: Acme Corp
    domain: www.acme.com
    employee_count: 2500
    contacts:
      - id: c-1
        first_name: Jane
        last_name: Doe
        email: jane.doe@acme.com
        confirmed: true
      - id: c-2
        first_name: John
        last_name: Smith
`

func TestLoadSeed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	s := NewMemoryStore(zap.NewNop())
	accounts, contacts, err := LoadSeed(ctx, s, path)
	require.NoError(t, err)
	assert.Equal(t, 1, accounts)
	assert.Equal(t, 2, contacts)

	a, err := s.FindAccountByDomain(ctx, "acme.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", a.Name)

	known, err := s.ListConfirmedEmails(ctx, "acc-1", "c-2", 10)
	require.NoError(t, err)
	require.Len(t, known, 1)
	assert.Equal(t, "Jane Doe", known[0].DisplayName)
}

func TestLoadSeed_Errors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(zap.NewNop())

	_, _, err := LoadSeed(ctx, s, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - name: No ID\n"), 0o600))
	_, _, err = LoadSeed(ctx, s, path)
	assert.ErrorContains(t, err, "has no id")
}
