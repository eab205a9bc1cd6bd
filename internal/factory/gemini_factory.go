package factory

import (
	"fmt"

	"github.com/mikey/contact-email-guesser/internal/adapters/resolver"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"go.uber.org/zap"
)

// GeminiFactory creates Gemini domain resolvers
type GeminiFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiFactory creates a new Gemini factory
func NewGeminiFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *GeminiFactory {
	return &GeminiFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateResolver creates a Gemini domain resolver
func (f *GeminiFactory) CreateResolver() (*resolver.GeminiResolver, error) {
	geminiCfg := f.cfg.GetGemini()

	if geminiCfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	return resolver.NewGeminiResolver(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		f.logger,
		f.textProcessor,
	)
}
