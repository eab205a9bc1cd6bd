package factory

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/contact-email-guesser/internal/adapters/resolver"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"go.uber.org/zap"
)

// BedrockFactory creates Bedrock domain resolvers
type BedrockFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewBedrockFactory creates a new Bedrock factory
func NewBedrockFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *BedrockFactory {
	return &BedrockFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateResolver creates a Bedrock domain resolver
func (f *BedrockFactory) CreateResolver() (*resolver.BedrockResolver, error) {
	bedrockCfg := f.cfg.GetBedrock()

	// Initialize AWS client
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(bedrockCfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return resolver.NewBedrockResolver(
		bedrockruntime.NewFromConfig(awsCfg),
		bedrockCfg.ModelID,
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		bedrockCfg.TopP,
		f.logger,
		f.textProcessor,
	), nil
}
