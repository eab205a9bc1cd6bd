package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/domains"
	"github.com/mikey/contact-email-guesser/internal/factory"
	"github.com/mikey/contact-email-guesser/internal/logging"
	"github.com/mikey/contact-email-guesser/internal/ports"
	"github.com/mikey/contact-email-guesser/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	if err := provideDaemon(container); err != nil {
		return nil, err
	}

	return container, nil
}

// provideDaemon registers everything the daemon needs on top of a *config.Config
func provideDaemon(container *dig.Container) error {
	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewResolverFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewListenerFactory); err != nil {
		return err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}

	// Register personal provider checker
	if err := container.Provide(newChecker); err != nil {
		return err
	}

	// Register contact store
	if err := container.Provide(func(f *factory.StoreFactory) (factory.ContactStore, error) {
		return f.CreateContactStore()
	}); err != nil {
		return err
	}

	// Register guess cache
	if err := container.Provide(func(f *factory.CacheFactory) (factory.GuessCache, error) {
		return f.CreateGuessCache()
	}); err != nil {
		return err
	}

	// Register domain resolver
	if err := container.Provide(func(f *factory.ResolverFactory) (core.DomainResolver, error) {
		return f.CreateResolver()
	}); err != nil {
		return err
	}

	// Register service configuration
	if err := container.Provide(func(f *factory.CacheFactory) (core.ServiceConfig, error) {
		return f.GetServiceConfig()
	}); err != nil {
		return err
	}

	// Register enrichment service
	if err := container.Provide(func(
		store factory.ContactStore,
		cache factory.GuessCache,
		resolver core.DomainResolver,
		checker *domains.Checker,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
		serviceCfg core.ServiceConfig,
	) *core.EnrichmentService {
		return core.NewEnrichmentService(store, cache, resolver, checker, textProcessor, logger, serviceCfg)
	}); err != nil {
		return err
	}

	// Register listeners
	if err := container.Provide(func(f *factory.ListenerFactory) []ports.Listener {
		return f.CreateListeners()
	}); err != nil {
		return err
	}

	return nil
}

// newChecker builds the personal provider checker from configuration
func newChecker(cfg *config.Config, logger *zap.Logger) *domains.Checker {
	providers := cfg.GetStringSlice("domains.personal_providers")
	if len(providers) > 0 {
		logger.Debug("Loaded personal providers", zap.Strings("domains", providers))
	}
	return domains.NewChecker(providers, logger)
}
