package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/pattern"
	"github.com/mikey/contact-email-guesser/internal/utils"
)

const promptFormat = `You are a company research assistant. Given a company name, determine the
internet domain the company uses for employee email addresses.
Respond with a JSON object containing:
- domain: string (bare domain such as "example.com", no scheme, no path, no "www.")
- confidence: number between 0 and 1 (how confident you are in your answer)
- explanation: string (brief explanation of how you determined the domain)

Company: %s

Respond only with the JSON object and nothing else.`

const systemPrompt = "You are a company research assistant. Respond only with JSON."

// errInvalidResponse marks model replies that carry no usable domain
var errInvalidResponse = errors.New("invalid model response")

// domainResponse represents the structured response from the model
type domainResponse struct {
	Domain      string  `json:"domain"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

func buildPrompt(tp *utils.TextProcessor, companyName string) string {
	return fmt.Sprintf(promptFormat, tp.SanitizeUTF8(strings.TrimSpace(companyName)))
}

// parseResponse extracts and validates the JSON answer in a model reply
func parseResponse(tp *utils.TextProcessor, text, source string) (*core.DomainResolution, error) {
	var resp domainResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		jsonStr := tp.ExtractJSON(text)
		if jsonStr == "" {
			return nil, fmt.Errorf("%w: failed to extract JSON: %w", errInvalidResponse, err)
		}
		if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON: %w", errInvalidResponse, err)
		}
	}

	domain := pattern.NormalizeDomain(resp.Domain)
	if !validDomain(domain) {
		return nil, fmt.Errorf("%w: domain %q", errInvalidResponse, resp.Domain)
	}

	return &core.DomainResolution{
		Domain:      domain,
		Confidence:  min(max(resp.Confidence, 0), 1),
		Explanation: resp.Explanation,
		Source:      source,
	}, nil
}

// validDomain accepts dotted hostnames made of letters, digits and hyphens
func validDomain(domain string) bool {
	if len(domain) < 3 || len(domain) > 253 {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') && c != '-' {
				return false
			}
		}
	}
	return true
}
