package factory

import (
	"fmt"

	"github.com/mikey/contact-email-guesser/internal/adapters/resolver"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"go.uber.org/zap"
)

// ResolverFactory creates the company domain resolver
type ResolverFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewResolverFactory creates a new resolver factory
func NewResolverFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ResolverFactory {
	return &ResolverFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateResolver creates a domain resolver based on the configuration. A
// model-backed provider is retried on transient errors and followed by the
// heuristic when fallback is enabled.
func (f *ResolverFactory) CreateResolver() (core.DomainResolver, error) {
	resolverCfg, err := f.cfg.GetResolver()
	if err != nil {
		return nil, err
	}
	heuristic := resolver.NewHeuristicResolver(f.logger)

	var primary core.DomainResolver
	switch resolverCfg.Provider {
	case "heuristic", "":
		return heuristic, nil
	case "bedrock":
		primary, err = NewBedrockFactory(f.cfg, f.logger, f.textProcessor).CreateResolver()
	case "gemini":
		primary, err = NewGeminiFactory(f.cfg, f.logger, f.textProcessor).CreateResolver()
	case "openai":
		primary, err = NewOpenAIFactory(f.cfg, f.logger, f.textProcessor).CreateResolver()
	default:
		return nil, fmt.Errorf("unsupported resolver provider: %s", resolverCfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	f.logger.Info("Using model domain resolver",
		zap.String("provider", resolverCfg.Provider),
		zap.Bool("fallback", resolverCfg.Fallback),
		zap.Int("retry_attempts", resolverCfg.RetryAttempts))

	if resolverCfg.RetryAttempts > 1 {
		primary = resolver.NewRetryResolver(primary, resolverCfg.RetryAttempts, resolverCfg.RetryDelay, f.logger)
	}

	if !resolverCfg.Fallback {
		return primary, nil
	}
	return resolver.NewChainResolver(f.logger, primary, heuristic), nil
}
