package intake

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/mail"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// AddressConfirmer records addresses seen in real correspondence
type AddressConfirmer interface {
	ConfirmAddress(ctx context.Context, displayName, email string) (*core.Contact, error)
}

// SMTPIntake accepts mail BCC'd by users and confirms the addresses in its headers
type SMTPIntake struct {
	confirmer  AddressConfirmer
	logger     *zap.Logger
	listenAddr string
	domain     string
	timeout    time.Duration
	server     *smtp.Server
}

// NewSMTPIntake creates a new SMTP intake listener
func NewSMTPIntake(confirmer AddressConfirmer, logger *zap.Logger, listenAddr, domain string) *SMTPIntake {
	if domain == "" {
		domain = "localhost"
	}
	return &SMTPIntake{
		confirmer:  confirmer,
		logger:     logger,
		listenAddr: listenAddr,
		domain:     domain,
		timeout:    10 * time.Second,
	}
}

// Name identifies the listener in logs
func (f *SMTPIntake) Name() string {
	return "smtp-intake"
}

// Start starts the SMTP server
func (f *SMTPIntake) Start() error {
	f.server = smtp.NewServer(&smtpBackend{intake: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = f.domain
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP intake starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			f.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (f *SMTPIntake) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessMessage confirms every business address in a raw message's headers
// and returns how many were recorded
func (f *SMTPIntake) ProcessMessage(ctx context.Context, raw []byte) (int, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}

	confirmed := 0
	for _, addr := range collectAddresses(msg.Header, f.logger) {
		contact, err := f.confirmer.ConfirmAddress(ctx, addr.Name, addr.Address)
		switch {
		case err == nil:
			confirmed++
			f.logger.Debug("Confirmed address from mail",
				zap.String("email", addr.Address),
				zap.String("contact_id", contact.ID))
		case errors.Is(err, core.ErrPersonalAddress), errors.Is(err, core.ErrInvalidAddress):
			f.logger.Debug("Skipping address", zap.String("email", addr.Address), zap.Error(err))
		case errors.Is(err, core.ErrNotFound):
			f.logger.Info("No account for address domain", zap.String("email", addr.Address))
		default:
			f.logger.Error("Failed to confirm address", zap.String("email", addr.Address), zap.Error(err))
		}
	}

	return confirmed, nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	intake *SMTPIntake
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{intake: b.intake}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	intake     *SMTPIntake
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data reads the message and confirms its addresses. Enrichment failures
// never cause the message to be rejected.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.intake.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.intake.timeout)
	defer cancel()

	confirmed, err := s.intake.ProcessMessage(ctx, rawData)
	if err != nil {
		s.intake.logger.Error("Failed to parse email message", zap.Error(err), zap.String("sender", s.sender))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 6, 0},
			Message:      "Malformed message",
		}
	}

	s.intake.logger.Info("Processed intake message",
		zap.String("from", s.sender),
		zap.Int("recipients", len(s.recipients)),
		zap.Int("confirmed", confirmed))

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
