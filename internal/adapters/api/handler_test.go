package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mikey/contact-email-guesser/internal/adapters/store"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/domains"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	logger := zap.NewNop()

	repo := store.NewMemoryStore(logger)
	repo.PutAccount(&core.Account{ID: "acc-1", Name: "Acme Corp", Domain: "acme.com", EmployeeCount: 20})
	repo.PutAccount(&core.Account{ID: "acc-2", Name: "Nowhere"})
	repo.PutContact(&core.Contact{ID: "c-1", AccountID: "acc-1", FirstName: "John", LastName: "Smith"})
	repo.PutContact(&core.Contact{ID: "c-2", AccountID: "acc-1", FirstName: "Jane", LastName: "Doe", Email: "janedoe@acme.com", EmailConfirmed: true})
	repo.PutContact(&core.Contact{ID: "c-3", AccountID: "acc-2", FirstName: "Ann", LastName: "Ray"})

	svc := core.NewEnrichmentService(
		repo,
		nil,
		nil,
		domains.NewChecker(domains.DefaultPersonalProviders, logger),
		utils.NewTextProcessor(logger),
		logger,
		core.ServiceConfig{MaxKnownEmails: 10},
	)

	ts := httptest.NewServer(NewServer(svc, logger, "").Router())
	t.Cleanup(ts.Close)
	return ts, repo
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandleGuess(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := post(t, ts.URL+"/api/guess", `{
		"first_name": "John",
		"last_name": "Smith",
		"domain": "acme.com",
		"company_name": "Acme Corp",
		"company_size": "large",
		"known_emails": [{"display_name": "Jane Doe", "email": "jane.doe@acme.com"}]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result pattern.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "john.smith@acme.com", result.Best.Email)
	assert.Equal(t, 90, result.Best.Confidence)
	require.NotNil(t, result.Detected)
	assert.Equal(t, pattern.FirstDotLast, result.Detected.Template)
	assert.Len(t, result.Alternatives, 3)
}

func TestHandleGuess_Validation(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"first_name": `},
		{"unknown field", `{"domain": "acme.com", "nickname": "JS"}`},
		{"missing domain", `{"first_name": "John"}`},
		{"bad domain", `{"domain": "not a domain"}`},
		{"bad size", `{"domain": "acme.com", "company_size": "huge"}`},
		{"bad known email", `{"domain": "acme.com", "known_emails": [{"email": "nope"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/guess", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
			assert.NotEmpty(t, errResp.RequestID)
		})
	}
}

func TestHandleEnrich(t *testing.T) {
	ts, repo := newTestServer(t)

	resp := post(t, ts.URL+"/api/contacts/c-1/enrich", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var record core.GuessRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	// One firstlast sample at a small company
	assert.Equal(t, "johnsmith@acme.com", record.Email)
	assert.Equal(t, pattern.FirstLast, record.Template)
	assert.Equal(t, core.DomainSourceAccount, record.DomainSource)
	assert.Equal(t, 1, record.KnownEmailCount)

	c, err := repo.GetContact(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "johnsmith@acme.com", c.Email)
	assert.WithinDuration(t, time.Now(), c.UpdatedAt, time.Minute)
}

func TestHandleEnrich_Errors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		id     string
		status int
	}{
		{"missing", http.StatusNotFound},
		{"c-2", http.StatusConflict},
		{"c-3", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/contacts/"+tt.id+"/enrich", "")
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
