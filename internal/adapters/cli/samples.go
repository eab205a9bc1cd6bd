package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mikey/contact-email-guesser/internal/pattern"
	"gopkg.in/yaml.v3"
)

// LoadSamples reads known addresses from a YAML file containing a list of
// {name, email} entries
func LoadSamples(path string) ([]pattern.KnownEmail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples file: %w", err)
	}
	return ParseSamples(data)
}

// ParseSamples decodes a YAML list of {name, email} entries, dropping
// entries without an address
func ParseSamples(data []byte) ([]pattern.KnownEmail, error) {
	var raw []pattern.KnownEmail
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse samples file: %w", err)
	}

	samples := make([]pattern.KnownEmail, 0, len(raw))
	for _, s := range raw {
		s.Email = strings.TrimSpace(s.Email)
		if s.Email == "" {
			continue
		}
		s.DisplayName = strings.TrimSpace(s.DisplayName)
		samples = append(samples, s)
	}
	return samples, nil
}
