package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type engineGuesser struct {
	err error
}

func (g engineGuesser) Guess(_ context.Context, req core.GuessRequest) (*pattern.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	r := pattern.GuessContactEmail(req.FirstName, req.LastName, req.Domain, req.CompanyName, req.CompanySize, req.KnownEmails)
	return &r, nil
}

func init() {
	color.NoColor = true
}

func TestPresenter_Text(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(engineGuesser{}, zap.NewNop(), &out, true, false)

	_, err := p.Run(context.Background(), core.GuessRequest{
		FirstName:   "John",
		LastName:    "Smith",
		Domain:      "acme.com",
		CompanyName: "Acme Corp",
		CompanySize: pattern.Large,
		KnownEmails: []pattern.KnownEmail{{DisplayName: "Jane Doe", Email: "jane.doe@acme.com"}},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Best: john.smith@acme.com [first.last, 90%]")
	assert.Contains(t, text, "Template: first.last (100%)")
	assert.Contains(t, text, "e.g. jane.doe@acme.com")
	assert.Contains(t, text, "Profile: https://www.linkedin.com/in/john-smith (70%)")
	assert.Contains(t, text, "Profile search: https://www.linkedin.com/search/results/people/?keywords=John%20Smith%20Acme%20Corp")
}

func TestPresenter_JSON(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(engineGuesser{}, zap.NewNop(), &out, false, true)

	_, err := p.Run(context.Background(), core.GuessRequest{FirstName: "Li", LastName: "Wu", Domain: "tiny.io"})
	require.NoError(t, err)

	var decoded pattern.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "li.wu@tiny.io", decoded.Best.Email)
	assert.Len(t, decoded.Alternatives, pattern.MaxAlternatives)
	assert.Equal(t, "https://www.linkedin.com/in/li-wu", decoded.Profile.URL)
	assert.Equal(t, 50, decoded.Profile.Confidence)
}

func TestPresenter_Error(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(engineGuesser{err: core.ErrNoDomain}, zap.NewNop(), &out, false, false)

	_, err := p.Run(context.Background(), core.GuessRequest{FirstName: "John"})
	assert.True(t, errors.Is(err, core.ErrNoDomain))
	assert.Empty(t, out.String())
}

func TestLoadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: Jane Doe
  email: jane.doe@acme.com
- name: " Bob Lee "
  email: bob.lee@acme.com
- name: No Address
`), 0o600))

	samples, err := LoadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, []pattern.KnownEmail{
		{DisplayName: "Jane Doe", Email: "jane.doe@acme.com"},
		{DisplayName: "Bob Lee", Email: "bob.lee@acme.com"},
	}, samples)

	_, err = LoadSamples(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseSamples([]byte("name: not-a-list"))
	assert.Error(t, err)
}
