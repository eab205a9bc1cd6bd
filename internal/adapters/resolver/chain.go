package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// ChainResolver tries each resolver in order and returns the first success
type ChainResolver struct {
	resolvers []core.DomainResolver
	logger    *zap.Logger
}

// NewChainResolver creates a resolver chain
func NewChainResolver(logger *zap.Logger, resolvers ...core.DomainResolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers, logger: logger}
}

// ResolveDomain returns the first successful resolution, or all errors joined
func (c *ChainResolver) ResolveDomain(ctx context.Context, companyName string) (*core.DomainResolution, error) {
	var errs []error
	for i, r := range c.resolvers {
		res, err := r.ResolveDomain(ctx, companyName)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("Domain resolver failed, trying next",
			zap.Int("position", i),
			zap.String("company", companyName),
			zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no domain resolvers configured")
	}
	return nil, errors.Join(errs...)
}

// Close closes every resolver in the chain that holds resources
func (c *ChainResolver) Close() error {
	var errs []error
	for _, r := range c.resolvers {
		if closer, ok := r.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
