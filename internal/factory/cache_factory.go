package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/contact-email-guesser/internal/adapters/cache"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// GuessCache is a guess cache with a background cleanup task
type GuessCache interface {
	core.GuessCache
	Stop()
}

// CacheFactory creates guess caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateGuessCache creates a guess cache based on the configuration
func (f *CacheFactory) CreateGuessCache() (GuessCache, error) {
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}

	switch cacheCfg.Type {
	case "memory":
		return cache.NewMemoryCache(f.logger, cacheCfg.CleanupFrequency), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cacheCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(cacheCfg.SQLitePath, f.logger, cacheCfg.CleanupFrequency)
	case "mysql":
		return cache.NewMySQLCache(cacheCfg.MySQLDSN, f.logger, cacheCfg.CleanupFrequency)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}

// GetServiceConfig returns the cache settings the enrichment service needs
func (f *CacheFactory) GetServiceConfig() (core.ServiceConfig, error) {
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return core.ServiceConfig{}, err
	}
	return core.ServiceConfig{
		CacheEnabled:   cacheCfg.Enabled,
		CacheTTL:       cacheCfg.TTL,
		MaxKnownEmails: f.cfg.GetStore().MaxKnownEmails,
	}, nil
}
