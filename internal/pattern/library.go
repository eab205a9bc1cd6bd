// Package pattern infers a person's probable corporate email address and
// professional profile URL from their name and employer domain.
//
// Everything in this package is pure: no I/O, no shared mutable state, and
// identical inputs always produce identical outputs.
package pattern

import (
	"fmt"
	"strings"
)

// Template identifies one of the fixed email naming conventions.
type Template int

const (
	// FirstDotLast is first.last@domain
	FirstDotLast Template = iota
	// FirstLast is firstlast@domain
	FirstLast
	// FirstOnly is first@domain
	FirstOnly
	// FirstInitialLast is flast@domain
	FirstInitialLast
	// FirstUnderscoreLast is first_last@domain
	FirstUnderscoreLast
	// LastDotFirst is last.first@domain
	LastDotFirst
	// Initials is fl@domain
	Initials
)

var templateNames = [...]string{
	FirstDotLast:        "first.last",
	FirstLast:           "firstlast",
	FirstOnly:           "first",
	FirstInitialLast:    "flast",
	FirstUnderscoreLast: "first_last",
	LastDotFirst:        "last.first",
	Initials:            "initials",
}

// String returns the short name of the template
func (t Template) String() string {
	if t < 0 || int(t) >= len(templateNames) {
		return fmt.Sprintf("Template(%d)", int(t))
	}
	return templateNames[t]
}

// MarshalText implements encoding.TextMarshaler
func (t Template) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(templateNames) {
		return nil, fmt.Errorf("unknown template: %d", int(t))
	}
	return []byte(templateNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Template) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range templateNames {
		if n == name {
			*t = Template(i)
			return nil
		}
	}
	return fmt.Errorf("unknown template: %q", string(text))
}

// PatternTemplate is a naming rule together with its prior weight.
// Shape uses the placeholders {first}, {last}, {first.char}, {last.char}
// and {domain}.
type PatternTemplate struct {
	ID          Template `json:"id"`
	Shape       string   `json:"shape"`
	PriorWeight int      `json:"prior_weight"`
}

// library is ordered; the order is the tie-break for every ranking in
// this package.
var library = [...]PatternTemplate{
	{ID: FirstDotLast, Shape: "{first}.{last}@{domain}", PriorWeight: 40},
	{ID: FirstLast, Shape: "{first}{last}@{domain}", PriorWeight: 25},
	{ID: FirstOnly, Shape: "{first}@{domain}", PriorWeight: 15},
	{ID: FirstInitialLast, Shape: "{first.char}{last}@{domain}", PriorWeight: 10},
	{ID: FirstUnderscoreLast, Shape: "{first}_{last}@{domain}", PriorWeight: 5},
	{ID: LastDotFirst, Shape: "{last}.{first}@{domain}", PriorWeight: 3},
	{ID: Initials, Shape: "{first.char}{last.char}@{domain}", PriorWeight: 2},
}

// Library returns a copy of the fixed, ordered template list
func Library() []PatternTemplate {
	out := make([]PatternTemplate, len(library))
	copy(out, library[:])
	return out
}

// CompanySize is an optional hint about the employer's headcount.
// The zero value means no hint.
type CompanySize int

const (
	SizeUnknown CompanySize = iota
	Small
	Medium
	Large
)

// String returns the lower-case name of the size
func (s CompanySize) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return ""
	}
}

// ParseCompanySize parses "small", "medium" or "large" (case-insensitive).
// An empty string yields SizeUnknown.
func ParseCompanySize(s string) (CompanySize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SizeUnknown, nil
	case "small":
		return Small, nil
	case "medium":
		return Medium, nil
	case "large":
		return Large, nil
	default:
		return SizeUnknown, fmt.Errorf("unknown company size: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s CompanySize) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *CompanySize) UnmarshalText(text []byte) error {
	size, err := ParseCompanySize(string(text))
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// NormalizeDomain lower-cases a domain, trims surrounding whitespace and
// strips a leading "www."
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, "www.")
}

func clamp(v int) int {
	return max(0, min(100, v))
}
