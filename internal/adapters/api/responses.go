package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// ErrorResponse defines the standard error response structure
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	reqID := middleware.GetReqID(r.Context())
	s.logger.Debug("Sending error response",
		zap.Int("status_code", status),
		zap.String("message", message),
		zap.String("request_id", reqID),
		zap.String("path", r.URL.Path))
	s.respondWithJSON(w, status, ErrorResponse{Error: message, RequestID: reqID})
}

// respondWithServiceError maps service errors to status codes. Only the
// safe message is returned to the client.
func (s *Server) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.respondWithError(w, r, http.StatusNotFound, "Contact not found")
	case errors.Is(err, core.ErrNoDomain):
		s.respondWithError(w, r, http.StatusUnprocessableEntity, "No email domain available for this contact")
	case errors.Is(err, core.ErrEmailConfirmed):
		s.respondWithError(w, r, http.StatusConflict, "Contact email is already confirmed")
	default:
		s.logger.Error("Request failed",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path))
		s.respondWithError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
