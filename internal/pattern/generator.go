package pattern

import (
	"strings"
	"unicode/utf8"
)

// NameParts holds a person's first and last name as supplied by the caller
type NameParts struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// EmailCandidate is one concrete address produced from a template
type EmailCandidate struct {
	Email      string   `json:"email"`
	Template   Template `json:"template"`
	Confidence int      `json:"confidence"`
}

// Generate expands every library template into a concrete address for the
// given name and domain. Confidence is the template's raw prior weight.
// Empty name parts are not rejected; they yield degenerate addresses.
func Generate(first, last, domain string) []EmailCandidate {
	first = strings.ToLower(first)
	last = strings.ToLower(last)
	domain = NormalizeDomain(domain)

	r := strings.NewReplacer(
		"{first.char}", firstChar(first),
		"{last.char}", firstChar(last),
		"{first}", first,
		"{last}", last,
		"{domain}", domain,
	)

	candidates := make([]EmailCandidate, 0, len(library))
	for _, tmpl := range library {
		candidates = append(candidates, EmailCandidate{
			Email:      stripAddress(r.Replace(tmpl.Shape)),
			Template:   tmpl.ID,
			Confidence: tmpl.PriorWeight,
		})
	}
	return candidates
}

func firstChar(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// stripAddress drops everything outside [a-z0-9@._-]
func stripAddress(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '@', c == '.', c == '_', c == '-':
			b.WriteByte(c)
		}
	}
	return b.String()
}
