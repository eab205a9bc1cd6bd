package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
)

// KnownEmailRequest is one confirmed address at the target domain
type KnownEmailRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"required,email"`
}

// GuessRequest represents the request body for a stateless guess
type GuessRequest struct {
	FirstName   string              `json:"first_name" validate:"max=200"`
	LastName    string              `json:"last_name" validate:"max=200"`
	Domain      string              `json:"domain" validate:"required,fqdn"`
	CompanyName string              `json:"company_name" validate:"max=200"`
	CompanySize string              `json:"company_size" validate:"omitempty,oneof=small medium large"`
	KnownEmails []KnownEmailRequest `json:"known_emails" validate:"max=100,dive"`
}

// handleGuess handles POST /api/guess requests
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req GuessRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	req.Domain = strings.TrimSpace(req.Domain)
	if err := s.validator.Struct(req); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	size, err := pattern.ParseCompanySize(req.CompanySize)
	if err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	known := make([]pattern.KnownEmail, len(req.KnownEmails))
	for i, k := range req.KnownEmails {
		known[i] = pattern.KnownEmail{DisplayName: k.DisplayName, Email: k.Email}
	}

	result, err := s.service.Guess(r.Context(), core.GuessRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Domain:      req.Domain,
		CompanyName: req.CompanyName,
		CompanySize: size,
		KnownEmails: known,
	})
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, result)
}

// handleEnrich handles POST /api/contacts/{id}/enrich requests
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		s.respondWithError(w, r, http.StatusBadRequest, "Missing contact ID")
		return
	}

	record, err := s.service.EnrichContact(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, record)
}

// handleHealth handles GET /health requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error("Failed to write health check response")
	}
}
