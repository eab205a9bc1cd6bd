package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/contact-email-guesser/internal/adapters/store"
	"github.com/mikey/contact-email-guesser/internal/config"
	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// ContactStore is a contact repository that holds resources
type ContactStore interface {
	core.ContactRepository
	store.Seeder
	Close() error
}

// StoreFactory creates contact stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateContactStore creates a contact store based on the configuration and
// loads the seed file if one is configured
func (f *StoreFactory) CreateContactStore() (ContactStore, error) {
	storeCfg := f.cfg.GetStore()

	var (
		s   ContactStore
		err error
	)
	switch storeCfg.Type {
	case "memory":
		s = store.NewMemoryStore(f.logger)
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		s, err = store.NewSQLiteStore(storeCfg.SQLitePath, f.logger)
	case "mysql":
		s, err = store.NewMySQLStore(storeCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if storeCfg.SeedFile != "" {
		accounts, contacts, err := store.LoadSeed(context.Background(), s, storeCfg.SeedFile)
		if err != nil {
			s.Close()
			return nil, err
		}
		f.logger.Info("Loaded seed data",
			zap.String("file", storeCfg.SeedFile),
			zap.Int("accounts", accounts),
			zap.Int("contacts", contacts))
	}

	return s, nil
}

// GetMaxKnownEmails returns how many confirmed siblings feed each guess
func (f *StoreFactory) GetMaxKnownEmails() int {
	return f.cfg.GetStore().MaxKnownEmails
}
