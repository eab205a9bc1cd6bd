package domains

import (
	"strings"

	"github.com/mikey/contact-email-guesser/internal/pattern"
	"go.uber.org/zap"
)

// DefaultPersonalProviders are consumer mailbox domains that never identify an employer
var DefaultPersonalProviders = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"live.com",
	"icloud.com",
	"me.com",
	"aol.com",
	"proton.me",
	"protonmail.com",
	"gmx.com",
}

// Checker classifies domains as personal mail providers
type Checker struct {
	domains map[string]struct{}
	logger  *zap.Logger
}

// NewChecker creates a new personal provider checker
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		if d := pattern.NormalizeDomain(domain); d != "" {
			normalized[d] = struct{}{}
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized personal provider checker", zap.Int("domains", len(normalized)))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsPersonal reports whether an address or bare domain belongs to a personal provider
func (c *Checker) IsPersonal(emailOrDomain string) bool {
	if len(c.domains) == 0 {
		return false
	}

	domain := emailOrDomain
	if i := strings.LastIndexByte(emailOrDomain, '@'); i >= 0 {
		domain = emailOrDomain[i+1:]
	}
	domain = pattern.NormalizeDomain(domain)

	if _, ok := c.domains[domain]; ok {
		if c.logger != nil {
			c.logger.Debug("Domain is a personal provider",
				zap.String("domain", domain),
				zap.String("input", emailOrDomain))
		}
		return true
	}

	return false
}
