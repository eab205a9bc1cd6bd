package factory

import (
	"github.com/mikey/contact-email-guesser/internal/adapters/api"
	"github.com/mikey/contact-email-guesser/internal/adapters/intake"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/ports"
	"go.uber.org/zap"
)

// ListenerFactory creates the daemon's listeners based on configuration
type ListenerFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.EnrichmentService
}

// NewListenerFactory creates a new listener factory
func NewListenerFactory(cfg *config.Config, logger *zap.Logger, service *core.EnrichmentService) *ListenerFactory {
	return &ListenerFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateListeners returns every enabled listener
func (f *ListenerFactory) CreateListeners() []ports.Listener {
	serverCfg := f.cfg.GetServer()

	var listeners []ports.Listener
	if serverCfg.HTTP.Enabled {
		listeners = append(listeners, api.NewServer(f.service, f.logger, serverCfg.HTTP.ListenAddress))
	}
	if serverCfg.Intake.Enabled {
		listeners = append(listeners, intake.NewSMTPIntake(
			f.service,
			f.logger,
			serverCfg.Intake.ListenAddress,
			serverCfg.Intake.Domain,
		))
	}

	if len(listeners) == 0 {
		f.logger.Warn("No listeners enabled")
	}
	return listeners
}
