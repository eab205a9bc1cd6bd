package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"go.uber.org/zap"
)

// Service is the enrichment behaviour exposed over HTTP
type Service interface {
	Guess(ctx context.Context, req core.GuessRequest) (*pattern.Result, error)
	EnrichContact(ctx context.Context, contactID string) (*core.GuessRecord, error)
}

// Server serves the JSON API
type Server struct {
	service    Service
	logger     *zap.Logger
	validator  *validator.Validate
	listenAddr string
	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(service Service, logger *zap.Logger, listenAddr string) *Server {
	return &Server{
		service:    service,
		logger:     logger,
		validator:  validator.New(),
		listenAddr: listenAddr,
	}
}

// Name identifies the listener in logs
func (s *Server) Name() string {
	return "http-api"
}

// Router creates the router with all routes and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/guess", s.handleGuess)
		r.Post("/contacts/{id}/enrich", s.handleEnrich)
	})

	r.Get("/health", s.handleHealth)

	return r
}

// Start starts serving in the background
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	s.logger.Info("HTTP API starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with zap
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr))
		}()

		next.ServeHTTP(ww, r)
	})
}
