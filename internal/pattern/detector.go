package pattern

import (
	"math"
	"strings"
)

// MaxExamples is the number of literal matching addresses kept on a DetectedPattern
const MaxExamples = 3

// KnownEmail is an already-confirmed address of someone whose name is known.
// FirstName and LastName, when set, take precedence over DisplayName.
type KnownEmail struct {
	DisplayName string `json:"display_name" yaml:"name"`
	FirstName   string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Email       string `json:"email" yaml:"email"`
}

// Name returns the sample's first and last name
func (k KnownEmail) Name() (first, last string) {
	if k.FirstName != "" || k.LastName != "" {
		return strings.TrimSpace(k.FirstName), strings.TrimSpace(k.LastName)
	}
	return SplitDisplayName(k.DisplayName)
}

// DetectedPattern is the dominant naming convention observed at a domain
type DetectedPattern struct {
	Template   Template `json:"template"`
	Confidence int      `json:"confidence"`
	Examples   []string `json:"examples"`
}

// detectable lists the shapes the detector recognises, in tie-break order
var detectable = [...]Template{
	FirstDotLast,
	FirstLast,
	FirstOnly,
	FirstInitialLast,
	FirstUnderscoreLast,
}

// Detect infers the naming convention used at domain from known addresses.
// Only samples whose address ends in "@"+domain count; samples from other
// domains are ignored entirely, including in the confidence denominator.
// It returns nil when no sample qualifies or no qualifying sample matches a
// recognised shape.
func Detect(samples []KnownEmail, domain string) *DetectedPattern {
	suffix := "@" + NormalizeDomain(domain)

	var qualifying []KnownEmail
	var locals []string
	for _, s := range samples {
		addr := strings.ToLower(s.Email)
		if strings.HasSuffix(addr, suffix) {
			qualifying = append(qualifying, s)
			locals = append(locals, addr[:len(addr)-len(suffix)])
		}
	}
	if len(qualifying) == 0 {
		return nil
	}

	var tally [len(detectable)]int
	var matched [len(detectable)][]string
	for n, s := range qualifying {
		local := locals[n]
		first, last := s.Name()
		first, last = alnum(first), alnum(last)
		if first == "" {
			continue
		}
		for i, tmpl := range detectable {
			if matchesShape(tmpl, local, first, last) {
				tally[i]++
				matched[i] = append(matched[i], s.Email)
			}
		}
	}

	winner := 0
	for i := 1; i < len(tally); i++ {
		if tally[i] > tally[winner] {
			winner = i
		}
	}
	if tally[winner] == 0 {
		return nil
	}

	confidence := int(math.Round(float64(tally[winner]) / float64(len(qualifying)) * 100))
	examples := matched[winner]
	if len(examples) > MaxExamples {
		examples = examples[:MaxExamples]
	}

	return &DetectedPattern{
		Template:   detectable[winner],
		Confidence: max(1, clamp(confidence)),
		Examples:   examples,
	}
}

// SplitDisplayName splits a display name into its first whitespace-separated
// token and the remaining tokens joined by a single space.
func SplitDisplayName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func matchesShape(tmpl Template, local, first, last string) bool {
	if tmpl == FirstOnly {
		return local == first
	}
	if last == "" {
		return false
	}
	switch tmpl {
	case FirstDotLast:
		return local == first+"."+last
	case FirstLast:
		return local == first+last
	case FirstInitialLast:
		return local == first[:1]+last
	case FirstUnderscoreLast:
		return local == first+"_"+last
	default:
		return false
	}
}

// alnum lower-cases s and keeps only [a-z0-9]
func alnum(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
