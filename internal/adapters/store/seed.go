package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mikey/contact-email-guesser/internal/core"
	"gopkg.in/yaml.v3"
)

// Seeder is implemented by stores that accept accounts and contacts directly
type Seeder interface {
	SaveAccount(ctx context.Context, account *core.Account) error
	SaveContact(ctx context.Context, contact *core.Contact) error
}

type seedFile struct {
	Accounts []seedAccount `yaml:"accounts"`
}

type seedAccount struct {
	ID            string        `yaml:"id"`
	Name          string        `yaml:"name"`
	Domain        string        `yaml:"domain"`
	EmployeeCount int           `yaml:"employee_count"`
	Contacts      []seedContact `yaml:"contacts"`
}

type seedContact struct {
	ID         string `yaml:"id"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Email      string `yaml:"email"`
	Confirmed  bool   `yaml:"confirmed"`
	ProfileURL string `yaml:"profile_url"`
}

// LoadSeed reads accounts and their contacts from a YAML file into the store
// and returns the number of accounts and contacts written
func LoadSeed(ctx context.Context, s Seeder, path string) (int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	now := time.Now().UTC()
	contacts := 0
	for _, a := range file.Accounts {
		if a.ID == "" {
			return 0, 0, fmt.Errorf("seed account %q has no id", a.Name)
		}
		err := s.SaveAccount(ctx, &core.Account{
			ID:            a.ID,
			Name:          a.Name,
			Domain:        a.Domain,
			EmployeeCount: a.EmployeeCount,
		})
		if err != nil {
			return 0, 0, err
		}

		for _, c := range a.Contacts {
			if c.ID == "" {
				return 0, 0, fmt.Errorf("seed contact %s %s of account %s has no id", c.FirstName, c.LastName, a.ID)
			}
			err := s.SaveContact(ctx, &core.Contact{
				ID:             c.ID,
				AccountID:      a.ID,
				FirstName:      c.FirstName,
				LastName:       c.LastName,
				Email:          c.Email,
				EmailConfirmed: c.Confirmed && c.Email != "",
				ProfileURL:     c.ProfileURL,
				UpdatedAt:      now,
			})
			if err != nil {
				return 0, 0, err
			}
			contacts++
		}
	}

	return len(file.Accounts), contacts, nil
}
